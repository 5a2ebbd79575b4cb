// Package cli implements the nitivimarsh command tree.
package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/nishasharma303/NitiVimarsh/adapters/engine"
	"github.com/nishasharma303/NitiVimarsh/adapters/indicators"
	"github.com/nishasharma303/NitiVimarsh/adapters/ledger"
	"github.com/nishasharma303/NitiVimarsh/adapters/rng"
	"github.com/nishasharma303/NitiVimarsh/app"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/internal/config"
	"github.com/nishasharma303/NitiVimarsh/internal/errors"
	"github.com/nishasharma303/NitiVimarsh/internal/testkit"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

var (
	cfg     *config.Config
	rootCmd = &cobra.Command{
		Use:   "nitivimarsh",
		Short: "Causal policy impact simulation over stakeholder graphs",
		Long: `NitiVimarsh estimates the downstream impact of government policy
changes (subsidy cuts, tax changes, credit incentives) by propagating
shocks through a causal stakeholder graph under Monte Carlo sampling,
and reports per-stakeholder shock indices with uncertainty bounds.

Typical session:
  nitivimarsh validate --graph graph.yaml
  nitivimarsh simulate --policy policy.yaml --seed 42 --format json
  nitivimarsh serve`,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}

// loadGraphSource resolves the graph in flag, config, demo order. The
// built-in demo graph keeps the CLI usable before any files exist.
func loadGraphSource(flagPath string) (*graph.CausalGraph, error) {
	path := flagPath
	if path == "" {
		path = cfg.Paths.GraphFile
	}
	if path == "" {
		return testkit.DemoGraph(), nil
	}
	return config.LoadGraph(path)
}

func loadSettingsSource(flagPath string) (config.Settings, error) {
	path := flagPath
	if path == "" {
		path = cfg.Paths.SettingsFile
	}
	return config.LoadSettings(path)
}

func baselineSource(flagPath string) ports.BaselineProviderPort {
	path := flagPath
	if path == "" {
		path = cfg.Paths.BaselineFile
	}
	if path == "" {
		return indicators.NewStaticProvider(testkit.DemoBaseline())
	}
	return indicators.NewFileProvider(path)
}

// openLedger picks PostgreSQL when DATABASE_URL is set, otherwise an
// in-memory ledger that lives for the process.
func openLedger(ctx context.Context) (ports.LedgerPort, func(), error) {
	if !cfg.UsePostgres() {
		return ledger.NewMemoryLedger(), func() {}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to ping database")
	}
	if err := ledger.NewMigrationRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "database migration failed")
	}

	return ledger.NewPostgresLedger(db), func() { db.Close() }, nil
}

func buildService(provider ports.BaselineProviderPort, store ports.LedgerPort) *app.SimulationService {
	return app.NewSimulationService(engine.NewEngine(rng.New()), provider, store)
}
