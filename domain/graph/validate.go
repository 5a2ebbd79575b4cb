package graph

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nishasharma303/NitiVimarsh/domain/core"
)

// FindingKind classifies a non-fatal validation finding
type FindingKind string

const (
	FindingCycle        FindingKind = "cycle"
	FindingDisconnected FindingKind = "disconnected_component"
)

// Finding is an advisory structural observation. Findings never block
// simulation; they surface graph shapes worth a second look.
type Finding struct {
	Kind    FindingKind `json:"kind"`
	Nodes   []string    `json:"nodes"`
	Message string      `json:"message"`
}

// ValidationReport carries hard failures and advisory findings from a
// structural validation pass.
type ValidationReport struct {
	OK       bool
	Errors   []error
	Warnings []Finding
}

// Err collapses the hard failures into a single error, or nil when valid
func (r ValidationReport) Err() error {
	if r.OK {
		return nil
	}
	return errors.Join(r.Errors...)
}

// ErrorMessages returns the hard failure texts for report surfaces
func (r ValidationReport) ErrorMessages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

// Validate runs the structural checks in a fixed order. Dangling edge
// endpoints, missing stakeholder coverage, and out-of-range weights are
// hard failures. Cycles and disconnected components are advisory:
// feedback loops are legitimate domain structure, not corruption.
func (g *CausalGraph) Validate() ValidationReport {
	report := ValidationReport{OK: true}

	// (a) every edge endpoint must reference a declared node
	for _, e := range g.edges {
		if _, ok := g.index[e.Source]; !ok {
			report.Errors = append(report.Errors, &core.DanglingEdgeError{
				Source: e.Source, Target: e.Target, Endpoint: e.Source,
			})
		}
		if _, ok := g.index[e.Target]; !ok {
			report.Errors = append(report.Errors, &core.DanglingEdgeError{
				Source: e.Source, Target: e.Target, Endpoint: e.Target,
			})
		}
	}

	// (b) every required stakeholder type needs at least one node
	present := make(map[Stakeholder]bool, len(g.nodes))
	for _, n := range g.nodes {
		present[n.Type] = true
	}
	for _, req := range g.required {
		if !present[req] {
			report.Errors = append(report.Errors, &core.MissingStakeholderError{
				Stakeholder: req.String(),
			})
		}
	}

	// (c) edge weights stay in [0, 1]
	for _, e := range g.edges {
		if math.IsNaN(e.Weight) || e.Weight < 0 || e.Weight > 1 {
			report.Errors = append(report.Errors, &core.WeightRangeError{
				Source: e.Source, Target: e.Target, Weight: e.Weight,
			})
		}
	}

	if len(report.Errors) > 0 {
		report.OK = false
	}

	// (d) directed cycles, reported as warnings
	for _, cycle := range g.findCycles() {
		report.Warnings = append(report.Warnings, Finding{
			Kind:    FindingCycle,
			Nodes:   cycle,
			Message: fmt.Sprintf("cycle detected: %s", strings.Join(cycle, " -> ")),
		})
	}

	// (e) disconnected components on the undirected view
	for _, component := range g.disconnectedComponents() {
		report.Warnings = append(report.Warnings, Finding{
			Kind:    FindingDisconnected,
			Nodes:   component,
			Message: fmt.Sprintf("disconnected component: %s", strings.Join(component, ", ")),
		})
	}

	return report
}

// findCycles runs a depth-first search over the directed edge set and
// reconstructs each cycle from the visitation stack. Each distinct cycle
// is reported once, rotated so its smallest node id comes first.
func (g *CausalGraph) findCycles() [][]string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(g.nodes))
	onStack := make([]bool, len(g.nodes))
	stack := make([]int, 0, len(g.nodes))
	seen := make(map[string]bool)
	var cycles [][]string

	var visit func(int)
	visit = func(u int) {
		color[u] = gray
		onStack[u] = true
		stack = append(stack, u)

		for _, edgePos := range g.outgoing[u] {
			target, ok := g.index[g.edges[edgePos].Target]
			if !ok {
				continue
			}
			if color[target] == white {
				visit(target)
			} else if onStack[target] {
				start := 0
				for i, idx := range stack {
					if idx == target {
						start = i
						break
					}
				}
				cycle := make([]string, 0, len(stack)-start)
				for _, idx := range stack[start:] {
					cycle = append(cycle, g.nodes[idx].ID)
				}
				cycle = rotateToSmallest(cycle)
				key := strings.Join(cycle, "\x1f")
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}

		stack = stack[:len(stack)-1]
		onStack[u] = false
		color[u] = black
	}

	for i := range g.nodes {
		if color[i] == white {
			visit(i)
		}
	}
	return cycles
}

// rotateToSmallest rotates a cycle so the lexicographically smallest
// node id leads, giving every cycle a canonical form.
func rotateToSmallest(cycle []string) []string {
	if len(cycle) == 0 {
		return cycle
	}
	smallest := 0
	for i, id := range cycle {
		if id < cycle[smallest] {
			smallest = i
		}
	}
	rotated := make([]string, 0, len(cycle))
	rotated = append(rotated, cycle[smallest:]...)
	rotated = append(rotated, cycle[:smallest]...)
	return rotated
}

// disconnectedComponents finds connected components treating edges as
// undirected and returns every component except the largest. A graph
// with a single component returns nothing.
func (g *CausalGraph) disconnectedComponents() [][]string {
	if len(g.nodes) == 0 {
		return nil
	}

	neighbors := make(map[int][]int, len(g.nodes))
	for _, e := range g.edges {
		src, okSrc := g.index[e.Source]
		dst, okDst := g.index[e.Target]
		if !okSrc || !okDst {
			continue
		}
		neighbors[src] = append(neighbors[src], dst)
		neighbors[dst] = append(neighbors[dst], src)
	}

	visited := make([]bool, len(g.nodes))
	var components [][]string
	for start := range g.nodes {
		if visited[start] {
			continue
		}
		queue := []int{start}
		visited[start] = true
		var component []string
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			component = append(component, g.nodes[u].ID)
			for _, v := range neighbors[u] {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}

	if len(components) <= 1 {
		return nil
	}

	largest := 0
	for i, c := range components {
		if len(c) > len(components[largest]) {
			largest = i
		}
	}
	var isolated [][]string
	for i, c := range components {
		if i != largest {
			isolated = append(isolated, c)
		}
	}
	return isolated
}
