package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "Maintenance tasks for the diagram backend",
	Long: `Offline maintenance for the diagram backend.

Available subcommands:
  migrate  - Apply the database schema
  schema   - Print the database schema
  catalog  - Validate a catalog YAML file`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd, schemaCmd, catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
