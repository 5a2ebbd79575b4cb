package ports

import (
	"context"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
	"github.com/nishasharma303/NitiVimarsh/domain/simulation"
)

// SimulationRequest bundles the inputs of one Monte Carlo run. The
// graph must already be validated; the engine revalidates scenario and
// baseline eagerly before any sampling work starts.
type SimulationRequest struct {
	Graph    *graph.CausalGraph
	Shock    policy.Shock
	Baseline baseline.Data
	Scenario scenario.Parameters
	Config   scenario.SimulationConfig

	// Effects are the metric weights for the shock's policy type,
	// resolved from the configured effect matrix.
	Effects map[baseline.Metric]float64

	// Seed drives every random draw of the run. Callers wanting a
	// fresh run generate one and record it from the result metadata.
	Seed int64

	// Freshness is the acceptance policy for baseline indicators.
	Freshness baseline.FreshnessPolicy
}

// SimulatorPort runs the propagation engine under Monte Carlo sampling
type SimulatorPort interface {
	Simulate(ctx context.Context, req SimulationRequest) (*simulation.Result, error)
}
