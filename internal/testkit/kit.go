// Package testkit provides deterministic fixtures and pre-wired
// collaborators: the demo causal graph and baseline, the example
// policies, and an in-memory stack for tests, the CLI demo fallback
// and API defaults.
package testkit

import (
	"fmt"
	"time"

	"github.com/nishasharma303/NitiVimarsh/adapters/engine"
	"github.com/nishasharma303/NitiVimarsh/adapters/indicators"
	"github.com/nishasharma303/NitiVimarsh/adapters/ledger"
	"github.com/nishasharma303/NitiVimarsh/adapters/rng"
	"github.com/nishasharma303/NitiVimarsh/app"
	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

// Kit bundles a shared in-memory stack for one test or demo session
type Kit struct {
	ledger *ledger.MemoryLedger
}

// New creates a kit with a fresh in-memory ledger
func New() *Kit {
	return &Kit{ledger: ledger.NewMemoryLedger()}
}

// Ledger returns the shared in-memory run ledger
func (k *Kit) Ledger() ports.LedgerPort {
	return k.ledger
}

// BaselineProvider returns a static provider over the demo baseline
func (k *Kit) BaselineProvider() ports.BaselineProviderPort {
	return indicators.NewStaticProvider(DemoBaseline())
}

// Simulator returns a live engine drawing from the production RNG
func (k *Kit) Simulator() ports.SimulatorPort {
	return engine.NewEngine(rng.New())
}

// Service returns a simulation service wired over the kit's in-memory
// collaborators.
func (k *Kit) Service() *app.SimulationService {
	return app.NewSimulationService(k.Simulator(), k.BaselineProvider(), k.Ledger())
}

// DemoGraph is the worked subsidy example: a government hub feeding
// citizens (weight 0.8) and the MSME sector (weight 0.6). Farmers are
// deliberately out of scope, so the required stakeholder set is
// narrowed to the three covered types.
func DemoGraph() *graph.CausalGraph {
	g := graph.New(graph.WithRequiredStakeholders(
		graph.StakeholderCitizen, graph.StakeholderMSME, graph.StakeholderGovernment,
	))
	nodes := []graph.Node{
		{ID: "government", Type: graph.StakeholderGovernment},
		{ID: "citizens", Type: graph.StakeholderCitizen},
		{ID: "msme-sector", Type: graph.StakeholderMSME},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			panic(fmt.Sprintf("demo graph node %s: %v", n.ID, err))
		}
	}
	edges := []graph.Edge{
		{Source: "government", Target: "citizens", Weight: 0.8, Relation: "subsidy"},
		{Source: "government", Target: "msme-sector", Weight: 0.6, Relation: "subsidy"},
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			panic(fmt.Sprintf("demo graph edge %s->%s: %v", e.Source, e.Target, err))
		}
	}
	return g
}

// DemoBaseline returns index-scale indicators for the demo graph's
// three stakeholders. Timestamps are runtime-relative so the fixture
// always passes the default freshness policy.
func DemoBaseline() baseline.Data {
	observed := core.NewTimestamp(time.Now().Add(-72 * time.Hour))
	states := map[graph.Stakeholder]baseline.StateMetrics{
		graph.StakeholderCitizen:    {IncomeLevel: 100, CostBurden: 40, BenefitReceived: 10},
		graph.StakeholderMSME:       {IncomeLevel: 100, CostBurden: 55, BenefitReceived: 8},
		graph.StakeholderGovernment: {IncomeLevel: 1000, CostBurden: 200, BenefitReceived: 0},
	}
	data := baseline.Data{
		Indicators: make(map[string]baseline.Indicator),
		Metadata:   map[string]string{"region": "national"},
	}
	for st, state := range states {
		for _, metric := range baseline.AllMetrics() {
			data.Indicators[baseline.IndicatorKey(st, metric)] = baseline.Indicator{
				Value:      state.Metric(metric),
				Unit:       "index",
				Source:     "demo-survey",
				Timestamp:  observed,
				Confidence: 0.9,
			}
		}
	}
	return data
}

// SubsidyCutPolicy is the worked example: government cuts subsidy
// transfers by 20%.
func SubsidyCutPolicy() policy.Variables {
	return policy.Variables{
		Type:         policy.TypeSubsidyChange,
		TargetGroups: []graph.Stakeholder{graph.StakeholderGovernment},
		Parameters:   map[string]float64{"subsidy_reduction_percent": 20},
		Timeline:     "FY2026",
	}
}

// TaxIncreasePolicy raises the MSME tax burden by 12.5%
func TaxIncreasePolicy() policy.Variables {
	return policy.Variables{
		Type:         policy.TypeTaxChange,
		TargetGroups: []graph.Stakeholder{graph.StakeholderMSME},
		Parameters:   map[string]float64{"tax_change_percent": 12.5},
		Timeline:     "FY2026-Q2",
	}
}

// CreditBoostPolicy extends priority-sector credit to MSMEs at 10%
func CreditBoostPolicy() policy.Variables {
	return policy.Variables{
		Type:         policy.TypeCreditIncentive,
		TargetGroups: []graph.Stakeholder{graph.StakeholderMSME},
		Parameters:   map[string]float64{"credit_incentive_percent": 10},
		Timeline:     "FY2027",
	}
}

// DemoPolicies returns the three example policies in stable order
func DemoPolicies() []policy.Variables {
	return []policy.Variables{SubsidyCutPolicy(), TaxIncreasePolicy(), CreditBoostPolicy()}
}

// DemoRequest assembles a complete analysis request over the demo
// fixtures with default engine settings.
func DemoRequest(vars policy.Variables, seed int64) app.AnalysisRequest {
	return app.AnalysisRequest{
		Graph:     DemoGraph(),
		Policy:    vars,
		Scenario:  scenario.Defaults(),
		Config:    scenario.DefaultSimulationConfig(),
		Rules:     policy.DefaultShockRules(),
		Matrix:    policy.DefaultEffectMatrix(),
		Freshness: baseline.DefaultFreshnessPolicy(),
		Seed:      seed,
	}
}
