package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nishasharma303/NitiVimarsh/adapters/report"
	"github.com/nishasharma303/NitiVimarsh/app"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/internal/config"
	"github.com/nishasharma303/NitiVimarsh/internal/testkit"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a policy impact simulation and render the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		graphPath, _ := cmd.Flags().GetString("graph")
		baselinePath, _ := cmd.Flags().GetString("baseline")
		settingsPath, _ := cmd.Flags().GetString("settings")
		policyPath, _ := cmd.Flags().GetString("policy")
		seed, _ := cmd.Flags().GetInt64("seed")
		iterations, _ := cmd.Flags().GetInt("iterations")
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")

		renderer, err := report.ForFormat(ports.ReportFormat(format))
		if err != nil {
			return err
		}
		if renderer.Format() == ports.FormatXLSX && outPath == "" {
			return fmt.Errorf("xlsx output requires --out")
		}

		var vars policy.Variables
		if policyPath != "" {
			vars, err = config.LoadPolicy(policyPath)
			if err != nil {
				return err
			}
		} else {
			vars = testkit.SubsidyCutPolicy()
			fmt.Fprintln(os.Stderr, "No --policy given, simulating the built-in demo subsidy cut")
		}

		causalGraph, err := loadGraphSource(graphPath)
		if err != nil {
			return err
		}
		settings, err := loadSettingsSource(settingsPath)
		if err != nil {
			return err
		}

		scenarioParams := settings.Scenario
		if iterations > 0 {
			scenarioParams.Iterations = iterations
		}
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}

		ctx := context.Background()
		store, closeLedger, err := openLedger(ctx)
		if err != nil {
			return err
		}
		defer closeLedger()

		service := buildService(baselineSource(baselinePath), store)

		result, err := service.RunAnalysis(ctx, app.AnalysisRequest{
			Graph:     causalGraph,
			Policy:    vars,
			Scenario:  scenarioParams,
			Config:    settings.Simulation,
			Rules:     settings.ShockRules,
			Matrix:    settings.Effects,
			Freshness: settings.Freshness,
			Seed:      seed,
		})
		if err != nil {
			return err
		}

		rendered, err := renderer.Render(ctx, result.Report())
		if err != nil {
			return err
		}

		for _, finding := range result.Findings {
			fmt.Fprintf(os.Stderr, "WARN  [%s] %s\n", finding.Kind, finding.Message)
		}

		if outPath != "" {
			if err := os.WriteFile(outPath, rendered, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("Run %s complete in %dms (fingerprint %s)\n",
				result.RunID, result.RuntimeMs, result.Fingerprint)
			fmt.Printf("Report written to %s\n", outPath)
			return nil
		}

		fmt.Println(string(rendered))
		return nil
	},
}

func init() {
	simulateCmd.Flags().String("graph", "", "Causal graph file (YAML or JSON)")
	simulateCmd.Flags().String("baseline", "", "Baseline indicators file (YAML)")
	simulateCmd.Flags().String("settings", "", "Engine settings file (YAML)")
	simulateCmd.Flags().String("policy", "", "Policy variables file (YAML or JSON, demo subsidy cut when omitted)")
	simulateCmd.Flags().Int64("seed", 0, "Seed for reproducible sampling (random when omitted)")
	simulateCmd.Flags().Int("iterations", 0, "Override the configured iteration count")
	simulateCmd.Flags().String("format", "json", "Report format: json, html, or xlsx")
	simulateCmd.Flags().String("out", "", "Write the report to a file instead of stdout")
}
