package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nishasharma303/NitiVimarsh/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the policy analysis HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		causalGraph, err := loadGraphSource("")
		if err != nil {
			return err
		}
		settings, err := loadSettingsSource("")
		if err != nil {
			return err
		}

		store, closeLedger, err := openLedger(ctx)
		if err != nil {
			return err
		}
		defer closeLedger()

		service := buildService(baselineSource(""), store)

		server := api.NewServer(api.Config{
			Port:              cfg.Server.Port,
			MaxConcurrent:     cfg.Server.MaxConcurrent,
			SimulationTimeout: cfg.Server.SimulationTimeout,
		}, service, causalGraph, settings)

		return server.Start()
	},
}
