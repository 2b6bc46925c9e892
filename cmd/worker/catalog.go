package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/catalog"
)

// catalogCmd checks an edited catalog file before it is embedded in a build.
var catalogCmd = &cobra.Command{
	Use:   "catalog <file>",
	Short: "Validate a catalog YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read catalog: %w", err)
		}
		cat, err := catalog.Parse(data)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "templates:  %d\n", len(cat.Templates()))
		fmt.Fprintf(out, "categories: %d\n", len(cat.Categories()))
		fmt.Fprintf(out, "prompts:    %d\n", len(cat.Prompts()))
		fmt.Fprintf(out, "tiers:      %d\n", len(cat.Pricing().Tiers))
		return nil
	},
}
