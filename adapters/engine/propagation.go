package engine

import (
	"math"

	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
)

// compiledEdge is one outgoing edge flattened to index addressing
type compiledEdge struct {
	target int
	weight float64
}

// compiledGraph is the engine's flattened view of a causal graph,
// built once per run and shared read-only across all sampling workers.
// Impacts live in slices indexed by node ordinal, and every loop walks
// node ordinals in ascending order, so floating-point accumulation
// order is fixed and identical inputs reproduce identical bits.
type compiledGraph struct {
	nodes        []graph.Node
	out          [][]compiledEdge
	byType       map[graph.Stakeholder][]int
	stakeholders []graph.Stakeholder
}

// compile flattens the graph for propagation
func compile(g *graph.CausalGraph) *compiledGraph {
	nodes := g.Nodes()
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	cg := &compiledGraph{
		nodes:        nodes,
		out:          make([][]compiledEdge, len(nodes)),
		byType:       make(map[graph.Stakeholder][]int),
		stakeholders: g.Stakeholders(),
	}
	for i, n := range nodes {
		cg.byType[n.Type] = append(cg.byType[n.Type], i)
		for _, e := range g.OutgoingEdges(n.ID) {
			if ti, ok := index[e.Target]; ok {
				cg.out[i] = append(cg.out[i], compiledEdge{target: ti, weight: e.Weight})
			}
		}
	}
	return cg
}

// aggregate sums accumulated node impacts for one stakeholder type
func (cg *compiledGraph) aggregate(impacts []float64, st graph.Stakeholder) float64 {
	var sum float64
	for _, i := range cg.byType[st] {
		sum += impacts[i]
	}
	return sum
}

// hottest returns the node of the given type carrying the largest
// accumulated magnitude, for naming in instability reports.
func (cg *compiledGraph) hottest(impacts []float64, st graph.Stakeholder) string {
	best, bestMag := "", -1.0
	for _, i := range cg.byType[st] {
		if mag := math.Abs(impacts[i]); mag > bestMag {
			best, bestMag = cg.nodes[i].ID, mag
		}
	}
	return best
}

// checkStability fails the sample when any stakeholder's accumulated
// magnitude exceeds the bound, naming the hottest node and the hop.
func (cg *compiledGraph) checkStability(impacts []float64, bound float64, hop int) error {
	for _, st := range cg.stakeholders {
		agg := cg.aggregate(impacts, st)
		if math.Abs(agg) > bound {
			return &core.InstabilityError{
				Node:        cg.hottest(impacts, st),
				Stakeholder: st.String(),
				Hop:         hop,
				Value:       agg,
				Bound:       bound,
			}
		}
	}
	return nil
}

// propagate runs one deterministic hop-bounded propagation pass.
//
// Directly targeted stakeholders are seeded with
// shock × elasticity × adoption_rate, then impact spreads along
// outgoing edges in waves: each wave's contribution to a target is
// source_impact × weight × pass_through_rate × compliance_rate, summed
// over incoming edges. Only the impact produced by the previous wave
// feeds the next one, while accumulated totals persist additively.
// Cycles are legal; the hop limit bounds feedback amplification
// instead of running to a fixed point.
func (cg *compiledGraph) propagate(shock policy.Shock, params scenario.Parameters, cfg scenario.SimulationConfig) (map[graph.Stakeholder]float64, error) {
	n := len(cg.nodes)
	total := make([]float64, n)
	frontier := make([]float64, n)

	for st, magnitude := range shock.Magnitudes {
		seed := magnitude * params.Elasticity * params.AdoptionRate
		for _, i := range cg.byType[st] {
			frontier[i] = seed
		}
	}
	copy(total, frontier)

	// The stability bound scales off the largest direct shock, so it
	// tracks the run's own magnitude regime.
	var directMax float64
	for _, st := range cg.stakeholders {
		if mag := math.Abs(cg.aggregate(frontier, st)); mag > directMax {
			directMax = mag
		}
	}
	bound := cfg.InstabilityFactor * directMax

	if err := cg.checkStability(total, bound, 0); err != nil {
		return nil, err
	}

	for hop := 1; hop <= cfg.HopLimit; hop++ {
		next := make([]float64, n)
		moved := false
		for i, impact := range frontier {
			if impact == 0 {
				continue
			}
			for _, e := range cg.out[i] {
				next[e.target] += impact * e.weight * params.PassThroughRate * params.ComplianceRate
				moved = true
			}
		}
		if !moved {
			break
		}
		for i := range next {
			total[i] += next[i]
		}
		if err := cg.checkStability(total, bound, hop); err != nil {
			return nil, err
		}
		frontier = next
	}

	impacts := make(map[graph.Stakeholder]float64, len(cg.stakeholders))
	for _, st := range cg.stakeholders {
		impacts[st] = cg.aggregate(total, st)
	}
	return impacts, nil
}

// Propagate runs a single propagation pass over the graph for one
// scenario sample. Deterministic given its inputs; the Monte Carlo
// layer calls the compiled form of this once per iteration.
func Propagate(g *graph.CausalGraph, shock policy.Shock, params scenario.Parameters, cfg scenario.SimulationConfig) (map[graph.Stakeholder]float64, error) {
	return compile(g).propagate(shock, params, cfg)
}
