// Package main provides the entry point for the job board HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Job board HTTP API server",
	Long:  "Job board serves the filtered, role-scoped job and application REST API backed by PostgreSQL.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
