// Package ledger persists simulation run records behind the ledger
// ports. The in-memory implementation backs tests and single-shot CLI
// runs; the PostgreSQL implementation is used when a database is
// configured.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

// MemoryLedger implements LedgerPort with in-memory storage
type MemoryLedger struct {
	runs  map[core.RunID]ports.RunRecord
	order []core.RunID
	mu    sync.RWMutex
}

// NewMemoryLedger creates an empty in-memory run ledger
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		runs: make(map[core.RunID]ports.RunRecord),
	}
}

var _ ports.LedgerPort = (*MemoryLedger)(nil)

// StoreRun appends a run record. Records are immutable once stored, so
// a duplicate run id is rejected rather than overwritten.
func (s *MemoryLedger) StoreRun(ctx context.Context, record ports.RunRecord) error {
	if record.ID == "" {
		return fmt.Errorf("run record has no id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[record.ID]; exists {
		return fmt.Errorf("run %s already stored", record.ID)
	}
	s.runs[record.ID] = record
	s.order = append(s.order, record.ID)
	return nil
}

// GetRun retrieves a run record by id
func (s *MemoryLedger) GetRun(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.runs[id]
	if !exists {
		return nil, fmt.Errorf("%w %s", core.ErrRunNotFound, id)
	}
	return &record, nil
}

// ListRuns returns matching records newest first. Insertion order
// stands in for creation order, which holds because StoreRun is the
// only writer.
func (s *MemoryLedger) ListRuns(ctx context.Context, filters ports.RunFilters) ([]ports.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []ports.RunRecord
	skipped := 0

	for i := len(s.order) - 1; i >= 0; i-- {
		record := s.runs[s.order[i]]

		// Apply filters
		if filters.PolicyType != nil && record.PolicyType != *filters.PolicyType {
			continue
		}
		if filters.Since != nil && record.CreatedAt.Before(*filters.Since) {
			continue
		}

		if skipped < filters.Offset {
			skipped++
			continue
		}

		results = append(results, record)
		if filters.Limit > 0 && len(results) >= filters.Limit {
			break
		}
	}

	return results, nil
}

// Len reports the number of stored runs
func (s *MemoryLedger) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
