package ports

import (
	"context"

	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/domain/simulation"
)

// RunRecord is the persisted envelope around one simulation result.
// Wall-clock and identity data live here, not inside the result, so
// replays of the same inputs stay byte-comparable.
type RunRecord struct {
	ID          core.RunID        `json:"id" db:"id"`
	PolicyType  policy.Type       `json:"policy_type" db:"policy_type"`
	GraphHash   core.GraphHash    `json:"graph_hash" db:"graph_hash"`
	Fingerprint core.Hash         `json:"fingerprint" db:"fingerprint"`
	Result      simulation.Result `json:"result" db:"result"`
	CreatedAt   core.Timestamp    `json:"created_at" db:"created_at"`
}

// LedgerWriterPort provides append-only write access to run records.
// This is the only way results are persisted.
type LedgerWriterPort interface {
	StoreRun(ctx context.Context, record RunRecord) error
}

// LedgerReaderPort provides read-only access for queries and replay
type LedgerReaderPort interface {
	GetRun(ctx context.Context, id core.RunID) (*RunRecord, error)
	ListRuns(ctx context.Context, filters RunFilters) ([]RunRecord, error)
}

// RunFilters narrows ledger queries
type RunFilters struct {
	PolicyType *policy.Type
	Since      *core.Timestamp
	Limit      int
	Offset     int
}

// LedgerPort combines read and write access
type LedgerPort interface {
	LedgerWriterPort
	LedgerReaderPort
}
