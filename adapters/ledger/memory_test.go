package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
	"github.com/nishasharma303/NitiVimarsh/domain/simulation"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

func sampleResult(seed int64) simulation.Result {
	return simulation.Result{
		Indices: map[graph.Stakeholder]simulation.ShockIndex{
			graph.StakeholderCitizen: {Value: -0.0269, Direction: simulation.DirectionNegative, Confidence: 0.93},
		},
		BeforeState: map[graph.Stakeholder]baseline.StateMetrics{
			graph.StakeholderCitizen: {IncomeLevel: 100, CostBurden: 40, BenefitReceived: 10},
		},
		AfterState: map[graph.Stakeholder]baseline.StateMetrics{
			graph.StakeholderCitizen: {IncomeLevel: 99.46, CostBurden: 40.54, BenefitReceived: 9.89},
		},
		Uncertainty: map[graph.Stakeholder]simulation.UncertaintyMetrics{
			graph.StakeholderCitizen: {
				StdDeviation:       0.31,
				ConfidenceInterval: simulation.Interval{Lower: -2.71, Upper: -2.67},
				Sensitivity:        map[string]float64{"elasticity": 0.76, "adoption_rate": 0.21},
				DominantDriver:     "elasticity",
			},
		},
		Samples: map[graph.Stakeholder]simulation.Distribution{
			graph.StakeholderCitizen: {Mean: -2.69, Median: -2.68, P5: -3.21, P95: -2.18, Min: -3.5, Max: -2.04},
		},
		Scenario: scenario.Defaults(),
		Metadata: simulation.Metadata{
			Seed:        seed,
			Requested:   1000,
			Aggregated:  1000,
			HopLimit:    3,
			Fingerprint: core.HashStrings("fixture-run"),
		},
	}
}

func sampleRecord(policyType policy.Type, createdAt core.Timestamp) ports.RunRecord {
	return ports.RunRecord{
		ID:          core.RunID(core.NewID()),
		PolicyType:  policyType,
		GraphHash:   core.NewGraphHash([]byte("fixture-graph")),
		Fingerprint: core.HashStrings("fixture-inputs"),
		Result:      sampleResult(42),
		CreatedAt:   createdAt,
	}
}

func TestMemoryLedgerStoreAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and retrieves a record", func(t *testing.T) {
		store := NewMemoryLedger()
		record := sampleRecord(policy.TypeSubsidyChange, core.Now())

		require.NoError(t, store.StoreRun(ctx, record))

		got, err := store.GetRun(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, *got)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("missing run reports not found", func(t *testing.T) {
		store := NewMemoryLedger()

		got, err := store.GetRun(ctx, core.RunID("no-such-run"))
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, core.ErrRunNotFound)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("duplicate run id is rejected", func(t *testing.T) {
		store := NewMemoryLedger()
		record := sampleRecord(policy.TypeTaxChange, core.Now())

		require.NoError(t, store.StoreRun(ctx, record))
		err := store.StoreRun(ctx, record)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already stored")
		assert.Equal(t, 1, store.Len())
	})

	t.Run("record without id is rejected", func(t *testing.T) {
		store := NewMemoryLedger()
		record := sampleRecord(policy.TypeTaxChange, core.Now())
		record.ID = ""

		require.Error(t, store.StoreRun(ctx, record))
		assert.Equal(t, 0, store.Len())
	})
}

func TestMemoryLedgerListRuns(t *testing.T) {
	ctx := context.Background()

	day := func(d int) core.Timestamp {
		return core.NewTimestamp(time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC))
	}

	seedLedger := func(t *testing.T) (*MemoryLedger, []ports.RunRecord) {
		t.Helper()
		store := NewMemoryLedger()
		records := []ports.RunRecord{
			sampleRecord(policy.TypeSubsidyChange, day(1)),
			sampleRecord(policy.TypeTaxChange, day(2)),
			sampleRecord(policy.TypeSubsidyChange, day(3)),
			sampleRecord(policy.TypeCreditIncentive, day(4)),
		}
		for _, record := range records {
			require.NoError(t, store.StoreRun(ctx, record))
		}
		return store, records
	}

	t.Run("lists newest first", func(t *testing.T) {
		store, records := seedLedger(t)

		got, err := store.ListRuns(ctx, ports.RunFilters{})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, records[3].ID, got[0].ID)
		assert.Equal(t, records[2].ID, got[1].ID)
		assert.Equal(t, records[1].ID, got[2].ID)
		assert.Equal(t, records[0].ID, got[3].ID)
	})

	t.Run("filters by policy type", func(t *testing.T) {
		store, records := seedLedger(t)

		subsidy := policy.TypeSubsidyChange
		got, err := store.ListRuns(ctx, ports.RunFilters{PolicyType: &subsidy})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, records[2].ID, got[0].ID)
		assert.Equal(t, records[0].ID, got[1].ID)
	})

	t.Run("filters by creation time", func(t *testing.T) {
		store, records := seedLedger(t)

		since := day(3)
		got, err := store.ListRuns(ctx, ports.RunFilters{Since: &since})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, records[3].ID, got[0].ID)
		assert.Equal(t, records[2].ID, got[1].ID)
	})

	t.Run("paginates with limit and offset", func(t *testing.T) {
		store, records := seedLedger(t)

		page, err := store.ListRuns(ctx, ports.RunFilters{Limit: 2})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, records[3].ID, page[0].ID)
		assert.Equal(t, records[2].ID, page[1].ID)

		page, err = store.ListRuns(ctx, ports.RunFilters{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, records[1].ID, page[0].ID)
		assert.Equal(t, records[0].ID, page[1].ID)
	})

	t.Run("combines filters with pagination", func(t *testing.T) {
		store, records := seedLedger(t)

		subsidy := policy.TypeSubsidyChange
		got, err := store.ListRuns(ctx, ports.RunFilters{PolicyType: &subsidy, Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, records[0].ID, got[0].ID)
	})

	t.Run("empty ledger lists nothing", func(t *testing.T) {
		store := NewMemoryLedger()

		got, err := store.ListRuns(ctx, ports.RunFilters{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
