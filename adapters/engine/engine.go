// Package engine implements the simulation core: deterministic
// hop-bounded shock propagation over the causal graph, parallel
// perturbed Monte Carlo sampling, and the statistical reductions that
// turn raw outcome samples into shock indices, uncertainty metrics,
// and before/after state snapshots.
package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
	"github.com/nishasharma303/NitiVimarsh/domain/simulation"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

// Engine implements ports.SimulatorPort
type Engine struct {
	rng ports.RNGPort
}

// NewEngine creates a simulation engine drawing randomness from the
// given port.
func NewEngine(rng ports.RNGPort) *Engine {
	return &Engine{rng: rng}
}

// iterationOutcome is one worker slot. Workers write disjoint slots
// addressed by iteration ordinal and the merge reads them in ordinal
// order after the join, so the sampling path needs no locking and the
// aggregate is invariant to scheduling order.
type iterationOutcome struct {
	impacts   map[graph.Stakeholder]float64
	params    scenario.Parameters
	completed bool
	discarded bool
}

// Simulate runs the full Monte Carlo pipeline: eager input validation,
// parallel perturbed propagation, discard accounting, and statistical
// aggregation. Two calls with the same inputs and seed produce
// identical results regardless of worker count.
func (e *Engine) Simulate(ctx context.Context, req ports.SimulationRequest) (*simulation.Result, error) {
	if err := e.validate(req); err != nil {
		return nil, err
	}

	cg := compile(req.Graph)
	iterations := req.Scenario.Iterations
	outcomes := make([]iterationOutcome, iterations)

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workerCount(req.Config))
	for i := range outcomes {
		i := i
		grp.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			stream := e.rng.IterationStream(req.Seed, i)
			params := perturb(req.Scenario, req.Config, stream)
			impacts, err := cg.propagate(req.Shock, params, req.Config)
			if err != nil {
				if !core.IsInstabilityError(err) {
					return err
				}
				outcomes[i] = iterationOutcome{params: params, completed: true, discarded: true}
				return nil
			}
			outcomes[i] = iterationOutcome{impacts: impacts, params: params, completed: true}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		completed := 0
		for i := range outcomes {
			if outcomes[i].completed {
				completed++
			}
		}
		return nil, &core.TimeoutError{Completed: completed, Requested: iterations, CauseError: err}
	}

	return e.aggregate(cg, req, outcomes)
}

// validate rejects bad inputs before any sampling work starts
func (e *Engine) validate(req ports.SimulationRequest) error {
	if req.Graph == nil {
		return fmt.Errorf("%w: no graph provided", core.ErrInvalidGraph)
	}
	if report := req.Graph.Validate(); !report.OK {
		return report.Err()
	}
	if err := req.Scenario.Validate(); err != nil {
		return err
	}
	if err := req.Config.Validate(); err != nil {
		return err
	}
	return req.Baseline.Validate(req.Graph.Stakeholders(), req.Freshness, core.Now())
}

// aggregate merges worker slots in iteration order and reduces them to
// the final result. All reductions are order-independent, so the
// outcome does not depend on how iterations were scheduled.
func (e *Engine) aggregate(cg *compiledGraph, req ports.SimulationRequest, outcomes []iterationOutcome) (*simulation.Result, error) {
	iterations := len(outcomes)
	samples := make(map[graph.Stakeholder][]float64, len(cg.stakeholders))
	draws := make(parameterDraws, 4)
	discarded := 0

	for i := range outcomes {
		if outcomes[i].discarded {
			discarded++
			continue
		}
		for _, st := range cg.stakeholders {
			samples[st] = append(samples[st], outcomes[i].impacts[st])
		}
		for name, value := range outcomes[i].params.AsMap() {
			draws[name] = append(draws[name], value)
		}
	}

	aggregated := iterations - discarded
	rate := float64(discarded) / float64(iterations)
	if rate > req.Config.DiscardThreshold || aggregated == 0 {
		return nil, &core.ConvergenceError{
			Discarded:  discarded,
			Iterations: iterations,
			Rate:       rate,
			Threshold:  req.Config.DiscardThreshold,
		}
	}

	result := &simulation.Result{
		Indices:     make(map[graph.Stakeholder]simulation.ShockIndex, len(cg.stakeholders)),
		Uncertainty: make(map[graph.Stakeholder]simulation.UncertaintyMetrics, len(cg.stakeholders)),
		Samples:     make(map[graph.Stakeholder]simulation.Distribution, len(cg.stakeholders)),
		Scenario:    req.Scenario,
	}

	meanImpact := make(map[graph.Stakeholder]float64, len(cg.stakeholders))
	for _, st := range cg.stakeholders {
		anchor, err := req.Baseline.ScaleAnchor(st)
		if err != nil {
			return nil, err
		}
		outcome := samples[st]
		meanImpact[st] = meanOf(outcome)
		result.Indices[st] = computeIndex(outcome, anchor, req.Config)
		result.Uncertainty[st] = computeUncertainty(outcome, draws, req.Config)
		result.Samples[st] = summarize(outcome)
	}

	before, after, err := deriveStates(req.Baseline, cg.stakeholders, meanImpact, req.Effects)
	if err != nil {
		return nil, err
	}
	result.BeforeState = before
	result.AfterState = after

	result.Metadata = simulation.Metadata{
		Seed:        req.Seed,
		Requested:   iterations,
		Aggregated:  aggregated,
		Discarded:   discarded,
		HopLimit:    req.Config.HopLimit,
		Fingerprint: fingerprint(req),
	}
	return result, nil
}

// fingerprint binds the run identity to every input that shapes the
// outcome, so the ledger can detect replays and divergence. Workers is
// an execution knob that cannot change the outcome, so it is zeroed
// out of the hashed configuration.
func fingerprint(req ports.SimulationRequest) core.Hash {
	cfg := req.Config
	cfg.Workers = 0
	inputs := core.MustHashValue(struct {
		Shock    policy.Shock                  `json:"shock"`
		Scenario scenario.Parameters           `json:"scenario"`
		Config   scenario.SimulationConfig     `json:"config"`
		Effects  map[baseline.Metric]float64   `json:"effects"`
		Baseline map[string]baseline.Indicator `json:"baseline"`
	}{req.Shock, req.Scenario, cfg, req.Effects, req.Baseline.Indicators})
	return simulation.Fingerprint(req.Graph.Hash(), inputs, req.Seed, req.Scenario.Iterations)
}

// workerCount resolves the parallelism cap, defaulting to GOMAXPROCS
func workerCount(cfg scenario.SimulationConfig) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}
