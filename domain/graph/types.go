// Package graph models stakeholder groups and the weighted directed causal
// relationships between them. The graph is built once from configuration,
// validated, and treated as read-only by the simulation engine.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nishasharma303/NitiVimarsh/domain/core"
)

// Stakeholder identifies one of the closed set of modeled stakeholder groups
type Stakeholder string

const (
	StakeholderCitizen    Stakeholder = "citizen"
	StakeholderMSME       Stakeholder = "msme"
	StakeholderFarmer     Stakeholder = "farmer"
	StakeholderGovernment Stakeholder = "government"
)

// AllStakeholders returns the full closed set in stable order
func AllStakeholders() []Stakeholder {
	return []Stakeholder{
		StakeholderCitizen,
		StakeholderMSME,
		StakeholderFarmer,
		StakeholderGovernment,
	}
}

// ParseStakeholder converts a string into a Stakeholder, case-insensitively
func ParseStakeholder(s string) (Stakeholder, error) {
	candidate := Stakeholder(strings.ToLower(strings.TrimSpace(s)))
	if !candidate.Valid() {
		return "", fmt.Errorf("unknown stakeholder type %q", s)
	}
	return candidate, nil
}

// Valid reports whether the stakeholder belongs to the closed set
func (s Stakeholder) Valid() bool {
	switch s {
	case StakeholderCitizen, StakeholderMSME, StakeholderFarmer, StakeholderGovernment:
		return true
	}
	return false
}

// String returns the string representation
func (s Stakeholder) String() string {
	return string(s)
}

// Attributes is the closed set of optional node attributes used by
// propagation scaling and report annotation. Unrecognized keys are
// rejected at decode time rather than carried as opaque payload.
type Attributes struct {
	Population float64 `json:"population,omitempty" yaml:"population,omitempty"`
	Region     string  `json:"region,omitempty" yaml:"region,omitempty"`
	Sector     string  `json:"sector,omitempty" yaml:"sector,omitempty"`
}

// Node is a stakeholder vertex in the causal graph
type Node struct {
	ID         string      `json:"id" yaml:"id"`
	Type       Stakeholder `json:"type" yaml:"type"`
	Attributes Attributes  `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Edge is a weighted directed causal link between two nodes.
// Weight carries the strength of the causal influence in [0, 1];
// Relation is a free-form label such as "subsidy" or "employment".
type Edge struct {
	Source   string  `json:"source" yaml:"source"`
	Target   string  `json:"target" yaml:"target"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Relation string  `json:"relation" yaml:"relation"`
}

// CausalGraph holds the node arena and directed edge set. Nodes are
// addressed by stable string ids; adjacency is indexed once at build
// time so traversal never scans the full edge list. Cycles are allowed.
type CausalGraph struct {
	nodes    []Node
	edges    []Edge
	index    map[string]int // node id -> arena position
	outgoing map[int][]int  // arena position -> edge positions
	required []Stakeholder
}

// Option configures graph construction
type Option func(*CausalGraph)

// WithRequiredStakeholders narrows the stakeholder types the validator
// requires to be present. Default is the full closed set.
func WithRequiredStakeholders(types ...Stakeholder) Option {
	return func(g *CausalGraph) {
		g.required = append([]Stakeholder(nil), types...)
	}
}

// New creates an empty causal graph
func New(opts ...Option) *CausalGraph {
	g := &CausalGraph{
		index:    make(map[string]int),
		outgoing: make(map[int][]int),
		required: AllStakeholders(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddNode adds a stakeholder node. Node ids must be unique and the
// stakeholder type must belong to the closed set.
func (g *CausalGraph) AddNode(n Node) error {
	if strings.TrimSpace(n.ID) == "" {
		return fmt.Errorf("%w: node id cannot be empty", core.ErrInvalidGraph)
	}
	if !n.Type.Valid() {
		return fmt.Errorf("%w: node %q has unknown stakeholder type %q", core.ErrInvalidGraph, n.ID, n.Type)
	}
	if _, exists := g.index[n.ID]; exists {
		return fmt.Errorf("%w: duplicate node id %q", core.ErrInvalidGraph, n.ID)
	}
	pos := len(g.nodes)
	g.index[n.ID] = pos
	g.nodes = append(g.nodes, n)
	// Pick up edges added before their source node existed
	for edgePos, e := range g.edges {
		if e.Source == n.ID {
			g.outgoing[pos] = append(g.outgoing[pos], edgePos)
		}
	}
	return nil
}

// AddEdge adds a directed causal edge. Self-loops and duplicate ordered
// pairs are rejected here; dangling endpoints and weight range are left
// to Validate so partially built graphs can still be inspected.
func (g *CausalGraph) AddEdge(e Edge) error {
	if e.Source == e.Target {
		return fmt.Errorf("%w: self-loop on node %q", core.ErrInvalidGraph, e.Source)
	}
	for _, existing := range g.edges {
		if existing.Source == e.Source && existing.Target == e.Target {
			return fmt.Errorf("%w: duplicate edge %s->%s", core.ErrInvalidGraph, e.Source, e.Target)
		}
	}
	pos := len(g.edges)
	g.edges = append(g.edges, e)
	if src, ok := g.index[e.Source]; ok {
		g.outgoing[src] = append(g.outgoing[src], pos)
	}
	return nil
}

// NodeCount returns the number of nodes
func (g *CausalGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *CausalGraph) EdgeCount() int {
	return len(g.edges)
}

// Node looks up a node by id
func (g *CausalGraph) Node(id string) (Node, bool) {
	pos, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[pos], true
}

// Nodes returns a copy of the node arena in insertion order
func (g *CausalGraph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// Edges returns a copy of the edge set in insertion order
func (g *CausalGraph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// OutgoingEdges returns the edges leaving the given node
func (g *CausalGraph) OutgoingEdges(nodeID string) []Edge {
	pos, ok := g.index[nodeID]
	if !ok {
		return nil
	}
	edges := make([]Edge, 0, len(g.outgoing[pos]))
	for _, edgePos := range g.outgoing[pos] {
		edges = append(edges, g.edges[edgePos])
	}
	return edges
}

// NodesOfType returns every node carrying the given stakeholder type
func (g *CausalGraph) NodesOfType(t Stakeholder) []Node {
	var matched []Node
	for _, n := range g.nodes {
		if n.Type == t {
			matched = append(matched, n)
		}
	}
	return matched
}

// Stakeholders returns the distinct stakeholder types present in the
// graph, ordered by the canonical closed-set order.
func (g *CausalGraph) Stakeholders() []Stakeholder {
	present := make(map[Stakeholder]bool, len(g.nodes))
	for _, n := range g.nodes {
		present[n.Type] = true
	}
	var ordered []Stakeholder
	for _, s := range AllStakeholders() {
		if present[s] {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

// RequiredStakeholders returns the configured coverage set
func (g *CausalGraph) RequiredStakeholders() []Stakeholder {
	return append([]Stakeholder(nil), g.required...)
}

// Hash computes a deterministic topology hash. Nodes and edges are
// canonically ordered first so two graphs built in different insertion
// orders still hash identically.
func (g *CausalGraph) Hash() core.GraphHash {
	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	payload := struct {
		Nodes    []Node        `json:"nodes"`
		Edges    []Edge        `json:"edges"`
		Required []Stakeholder `json:"required"`
	}{nodes, edges, g.required}
	return core.GraphHash(core.MustHashValue(payload))
}
