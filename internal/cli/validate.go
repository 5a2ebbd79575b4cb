package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a causal graph document",
	RunE: func(cmd *cobra.Command, args []string) error {
		graphPath, _ := cmd.Flags().GetString("graph")

		causalGraph, err := loadGraphSource(graphPath)
		if err != nil {
			return err
		}

		fmt.Printf("Validating graph (%d nodes, %d edges)...\n",
			causalGraph.NodeCount(), causalGraph.EdgeCount())

		validation := causalGraph.Validate()
		for _, msg := range validation.ErrorMessages() {
			fmt.Printf("ERROR %s\n", msg)
		}
		for _, finding := range validation.Warnings {
			fmt.Printf("WARN  [%s] %s\n", finding.Kind, finding.Message)
		}

		if !validation.OK {
			return fmt.Errorf("graph validation failed with %d error(s)", len(validation.Errors))
		}

		fmt.Printf("Graph OK, %d advisory finding(s)\n", len(validation.Warnings))
		return nil
	},
}

func init() {
	validateCmd.Flags().String("graph", "", "Causal graph file (YAML or JSON)")
}
