// Tabs commands: write the local client's tabs and list all clients' tabs.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabvault/pkg/types"
)

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "Manage stored tabs",
}

var tabsSetCmd = &cobra.Command{
	Use:   "set <file.json>",
	Short: "Replace the local client's tabs from a JSON file",
	Long: `Set replaces the local client's stored tabs with the records read
from the given JSON file. The file holds an array of tab records:

  [
    {
      "title": "Example",
      "url_history": ["https://example.com/"],
      "last_used": 1700000000000
    }
  ]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read tabs file: %w", err)
		}

		var recs []types.TabRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return fmt.Errorf("parse tabs file: %w", err)
		}

		store, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "tabs set:", err)
			os.Exit(exitSysError)
		}
		defer store.Shutdown()

		count, err := store.SetLocalTabs(recs).Wait()
		if err != nil {
			return fmt.Errorf("set local tabs: %w", err)
		}

		fmt.Printf("Wrote %d tab record(s)\n", count)
		return nil
	},
}

var tabsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients and their tabs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "tabs list:", err)
			os.Exit(exitSysError)
		}
		defer store.Shutdown()

		bundles, err := store.GetAll().Wait()
		if err != nil {
			return fmt.Errorf("read tabs: %w", err)
		}

		if flagJSON {
			out, err := json.MarshalIndent(bundles, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal JSON: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		for _, bundle := range bundles {
			fmt.Printf("%s (%s, %s)\n", bundle.ClientName, bundle.ClientID, bundle.DeviceType)
			for _, tab := range bundle.Tabs {
				fmt.Printf("  %s\t%s\n", tab.Title, tab.URL)
			}
		}
		return nil
	},
}

func init() {
	tabsCmd.AddCommand(tabsSetCmd)
	tabsCmd.AddCommand(tabsListCmd)
}
