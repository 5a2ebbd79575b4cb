// Package app wires the simulation engine to its collaborators. The
// services here orchestrate complete operations from validated inputs
// to persisted run records; all heavy lifting stays behind ports.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

// SimulationService orchestrates policy impact analyses
type SimulationService struct {
	simulatorPort ports.SimulatorPort
	baselinePort  ports.BaselineProviderPort
	ledgerPort    ports.LedgerPort
}

// NewSimulationService creates a simulation service
func NewSimulationService(simulatorPort ports.SimulatorPort, baselinePort ports.BaselineProviderPort, ledgerPort ports.LedgerPort) *SimulationService {
	return &SimulationService{
		simulatorPort: simulatorPort,
		baselinePort:  baselinePort,
		ledgerPort:    ledgerPort,
	}
}

// Ledger returns the run ledger reader (for query handler access)
func (s *SimulationService) Ledger() ports.LedgerReaderPort {
	return s.ledgerPort
}

// AnalysisRequest defines the inputs for one policy analysis. The
// engine knobs ride along explicitly; nothing is read from ambient
// state.
type AnalysisRequest struct {
	Graph     *graph.CausalGraph
	Policy    policy.Variables
	Scenario  scenario.Parameters
	Config    scenario.SimulationConfig
	Rules     policy.ShockRules
	Matrix    policy.EffectMatrix
	Freshness baseline.FreshnessPolicy
	Seed      int64
	RunID     core.RunID // optional, will be generated if empty
}

// AnalysisResult contains the persisted run plus everything a caller
// needs to render it.
type AnalysisResult struct {
	RunID       core.RunID       `json:"run_id"`
	Record      ports.RunRecord  `json:"record"`
	Policy      policy.Variables `json:"policy"`
	Findings    []graph.Finding  `json:"findings,omitempty"`
	Fingerprint core.Hash        `json:"fingerprint"`
	RuntimeMs   int64            `json:"runtime_ms"`
	Success     bool             `json:"success"`
}

// Report assembles the renderable view of this analysis
func (r *AnalysisResult) Report() ports.Report {
	return ports.Report{
		Record:   r.Record,
		Policy:   r.Policy,
		Findings: r.Findings,
	}
}

// RunAnalysis executes one complete policy analysis: input validation,
// shock construction, the Monte Carlo run, and ledger persistence.
// Advisory graph findings ride along in the result; hard validation
// failures abort before any sampling work starts.
func (s *SimulationService) RunAnalysis(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	startTime := time.Now()

	// Generate run ID if not provided
	runID := req.RunID
	if runID == "" {
		runID = core.RunID(core.NewID())
	}

	if req.Graph == nil {
		return nil, fmt.Errorf("%w: no graph provided", core.ErrInvalidGraph)
	}

	// Validate scenario and policy inputs
	if err := req.Scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	if err := req.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("policy validation failed: %w", err)
	}

	// Validate graph structure. Cycles and disconnected components are
	// advisory and never block the run.
	report := req.Graph.Validate()
	if err := report.Err(); err != nil {
		return nil, fmt.Errorf("graph validation failed: %w", err)
	}

	// Load the baseline snapshot. The engine revalidates it eagerly
	// against the freshness policy before any sampling.
	base, err := s.baselinePort.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("baseline snapshot failed: %w", err)
	}

	// Build the shock from policy variables
	shock, err := policy.BuildShock(req.Policy, req.Rules)
	if err != nil {
		return nil, fmt.Errorf("shock construction failed: %w", err)
	}

	// Resolve the metric effects for this policy type
	effects, err := req.Matrix.Effects(req.Policy.Type)
	if err != nil {
		return nil, fmt.Errorf("effect resolution failed: %w", err)
	}

	// Run the Monte Carlo simulation
	result, err := s.simulatorPort.Simulate(ctx, ports.SimulationRequest{
		Graph:     req.Graph,
		Shock:     shock,
		Baseline:  base,
		Scenario:  req.Scenario,
		Config:    req.Config,
		Effects:   effects,
		Seed:      req.Seed,
		Freshness: req.Freshness,
	})
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}

	// Persist the run record
	record := ports.RunRecord{
		ID:          runID,
		PolicyType:  req.Policy.Type,
		GraphHash:   req.Graph.Hash(),
		Fingerprint: result.Metadata.Fingerprint,
		Result:      *result,
		CreatedAt:   core.Now(),
	}
	if err := s.ledgerPort.StoreRun(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store run record: %w", err)
	}

	runtimeMs := time.Since(startTime).Milliseconds()

	return &AnalysisResult{
		RunID:       runID,
		Record:      record,
		Policy:      req.Policy,
		Findings:    report.Warnings,
		Fingerprint: record.Fingerprint,
		RuntimeMs:   runtimeMs,
		Success:     true,
	}, nil
}

// ValidateGraph runs structural validation without simulating. Hard
// failures come back in the report, not as an error; callers decide
// how to surface them.
func (s *SimulationService) ValidateGraph(g *graph.CausalGraph) (graph.ValidationReport, error) {
	if g == nil {
		return graph.ValidationReport{}, fmt.Errorf("%w: no graph provided", core.ErrInvalidGraph)
	}
	return g.Validate(), nil
}
