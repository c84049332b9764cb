// Sync and reset commands for the tabvault CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabvault/pkg/types"
)

// Sync credential flags; each overrides its config.yaml counterpart.
var (
	flagKeyID          string
	flagAccessToken    string
	flagSyncKey        string
	flagTokenServerURL string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync tabs with the remote service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "sync:", err)
			os.Exit(exitSysError)
		}
		defer store.Shutdown()

		// An engine failure arrives already tagged with the operation.
		if _, err := store.Sync(unlockInfo()).Wait(); err != nil {
			return err
		}

		fmt.Println("Sync completed")
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard synced remote state, keeping local tabs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "reset:", err)
			os.Exit(exitSysError)
		}
		defer store.Shutdown()

		if _, err := store.ResetSync().Wait(); err != nil {
			return err
		}

		fmt.Println("Sync state reset")
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&flagKeyID, "key-id", "", "sync key id (overrides config)")
	syncCmd.Flags().StringVar(&flagAccessToken, "access-token", "", "sync access token (overrides config)")
	syncCmd.Flags().StringVar(&flagSyncKey, "sync-key", "", "sync encryption key (overrides config)")
	syncCmd.Flags().StringVar(&flagTokenServerURL, "tokenserver-url", "", "token server URL (overrides config)")
}

// unlockInfo merges config.yaml credentials with flag overrides.
func unlockInfo() types.UnlockInfo {
	unlock := configUnlock
	if flagKeyID != "" {
		unlock.KeyID = flagKeyID
	}
	if flagAccessToken != "" {
		unlock.AccessToken = flagAccessToken
	}
	if flagSyncKey != "" {
		unlock.SyncKey = flagSyncKey
	}
	if flagTokenServerURL != "" {
		unlock.TokenServerURL = flagTokenServerURL
	}
	return unlock
}
