// Package main provides the tabvault CLI, a tool for inspecting and
// exercising a serialized tab-sync store.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
