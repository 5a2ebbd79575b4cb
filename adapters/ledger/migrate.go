package ledger

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/nishasharma303/NitiVimarsh/internal/errors"
)

// MigrationRunner bootstraps the ledger schema
type MigrationRunner struct {
	version string
}

// NewMigrationRunner creates a new migration runner
func NewMigrationRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all ledger migrations in order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createRunsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create simulation_runs table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createRunsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS simulation_runs (
			id UUID PRIMARY KEY,
			policy_type VARCHAR(50) NOT NULL,
			graph_hash VARCHAR(64) NOT NULL,
			fingerprint VARCHAR(64) NOT NULL,
			result JSONB NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_runs_policy_type ON simulation_runs(policy_type)",
		"CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON simulation_runs(fingerprint)",
		"CREATE INDEX IF NOT EXISTS idx_runs_created_at ON simulation_runs(created_at DESC)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Log but don't fail on index creation errors
			log.Printf("Warning: failed to create index: %v", err)
		}
	}

	return nil
}
