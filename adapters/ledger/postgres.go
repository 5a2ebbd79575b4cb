package ledger

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/domain/simulation"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

// resultJSONB stores a simulation result in a PostgreSQL JSONB column
type resultJSONB simulation.Result

// Value implements driver.Valuer interface
func (r resultJSONB) Value() (driver.Value, error) {
	return json.Marshal(simulation.Result(r))
}

// Scan implements sql.Scanner interface
func (r *resultJSONB) Scan(value interface{}) error {
	if value == nil {
		*r = resultJSONB{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into result column", value)
	}

	if len(bytes) == 0 {
		*r = resultJSONB{}
		return nil
	}

	return json.Unmarshal(bytes, (*simulation.Result)(r))
}

// runRow mirrors the simulation_runs table with driver-friendly column
// types. Conversion to and from the port record happens at the adapter
// boundary so domain types stay free of database concerns.
type runRow struct {
	ID          string      `db:"id"`
	PolicyType  string      `db:"policy_type"`
	GraphHash   string      `db:"graph_hash"`
	Fingerprint string      `db:"fingerprint"`
	Result      resultJSONB `db:"result"`
	CreatedAt   time.Time   `db:"created_at"`
}

func newRunRow(record ports.RunRecord) runRow {
	return runRow{
		ID:          record.ID.String(),
		PolicyType:  string(record.PolicyType),
		GraphHash:   record.GraphHash.String(),
		Fingerprint: record.Fingerprint.String(),
		Result:      resultJSONB(record.Result),
		CreatedAt:   record.CreatedAt.Time(),
	}
}

func (row runRow) toRecord() ports.RunRecord {
	return ports.RunRecord{
		ID:          core.RunID(row.ID),
		PolicyType:  policy.Type(row.PolicyType),
		GraphHash:   core.GraphHash(row.GraphHash),
		Fingerprint: core.Hash(row.Fingerprint),
		Result:      simulation.Result(row.Result),
		CreatedAt:   core.NewTimestamp(row.CreatedAt),
	}
}

// PostgresLedger implements LedgerPort for PostgreSQL
type PostgresLedger struct {
	db *sqlx.DB
}

// NewPostgresLedger creates a new PostgreSQL run ledger
func NewPostgresLedger(db *sqlx.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

var _ ports.LedgerPort = (*PostgresLedger)(nil)

// StoreRun appends a run record
func (r *PostgresLedger) StoreRun(ctx context.Context, record ports.RunRecord) error {
	if record.ID == "" {
		return fmt.Errorf("run record has no id")
	}

	row := newRunRow(record)

	// resultJSONB implements driver.Valuer, so it will be automatically converted
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO simulation_runs (id, policy_type, graph_hash, fingerprint, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, row.ID, row.PolicyType, row.GraphHash, row.Fingerprint, row.Result, row.CreatedAt)

	return err
}

// GetRun retrieves a run record by id
func (r *PostgresLedger) GetRun(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, policy_type, graph_hash, fingerprint, result, created_at
		FROM simulation_runs
		WHERE id = $1
	`, id.String())

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w %s", core.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	record := row.toRecord()
	return &record, nil
}

// ListRuns returns matching records newest first. Run ids are
// time-ordered, so the id tie-break keeps records created in the same
// millisecond in insertion order.
func (r *PostgresLedger) ListRuns(ctx context.Context, filters ports.RunFilters) ([]ports.RunRecord, error) {
	query := `
		SELECT id, policy_type, graph_hash, fingerprint, result, created_at
		FROM simulation_runs
	`

	var clauses []string
	var args []interface{}
	if filters.PolicyType != nil {
		args = append(args, string(*filters.PolicyType))
		clauses = append(clauses, fmt.Sprintf("policy_type = $%d", len(args)))
	}
	if filters.Since != nil {
		args = append(args, filters.Since.Time())
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ports.RunRecord
	for rows.Next() {
		var row runRow
		err := rows.Scan(
			&row.ID,
			&row.PolicyType,
			&row.GraphHash,
			&row.Fingerprint,
			&row.Result,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, row.toRecord())
	}

	return records, rows.Err()
}
