// Seed command: stage remote client fixtures for the next sync.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabvault/internal/sqlite"
	"github.com/mesh-intelligence/tabvault/pkg/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.json>",
	Short: "Stage remote client records for the next sync",
	Long: `Seed stages remote client records from a JSON file. Staged records
stay invisible to "tabs list" until the next successful sync applies them,
mirroring how records delivered by the remote service become visible. The
file holds an array of client records:

  [
    {
      "client_id": "remote-1",
      "client_name": "Phone",
      "device_type": "mobile",
      "tabs": [{"title": "Example", "url_history": ["https://example.com/"]}]
    }
  ]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}

		var clients []types.ClientRecord
		if err := json.Unmarshal(data, &clients); err != nil {
			return fmt.Errorf("parse seed file: %w", err)
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "seed:", err)
			os.Exit(exitSysError)
		}

		// Seeding talks to the engine directly, before any store exists;
		// the handle is closed again before the command returns.
		db, err := sqlite.Open(types.Config{Backend: types.BackendSQLite, DataDir: dataDir})
		if err != nil {
			fmt.Fprintln(os.Stderr, "seed:", err)
			os.Exit(exitSysError)
		}
		defer db.Close()

		if err := db.StageRemote(clients); err != nil {
			return fmt.Errorf("stage remote clients: %w", err)
		}

		fmt.Printf("Staged %d client record(s)\n", len(clients))
		return nil
	},
}
