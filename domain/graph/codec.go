package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nishasharma303/NitiVimarsh/domain/core"
)

// Document is the serialized form of a causal graph: ordered node and
// edge lists plus the required stakeholder coverage set. Ordering is
// not significant; element identity is carried by node id and by the
// (source, target) pair.
type Document struct {
	Nodes                []Node   `json:"nodes" yaml:"nodes"`
	Edges                []Edge   `json:"edges" yaml:"edges"`
	RequiredStakeholders []string `json:"required_stakeholders,omitempty" yaml:"required_stakeholders,omitempty"`
}

// ToDocument converts the graph into its serialized form
func (g *CausalGraph) ToDocument() Document {
	doc := Document{
		Nodes: g.Nodes(),
		Edges: g.Edges(),
	}
	for _, s := range g.required {
		doc.RequiredStakeholders = append(doc.RequiredStakeholders, s.String())
	}
	return doc
}

// FromDocument rebuilds a graph from its serialized form. Construction
// invariants are enforced here: unique node ids, closed stakeholder
// set, no self-loops, no duplicate ordered pairs. Structural soundness
// beyond that is left to Validate.
func FromDocument(doc Document) (*CausalGraph, error) {
	var opts []Option
	if len(doc.RequiredStakeholders) > 0 {
		required := make([]Stakeholder, 0, len(doc.RequiredStakeholders))
		for _, raw := range doc.RequiredStakeholders {
			s, err := ParseStakeholder(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: required stakeholder: %v", core.ErrInvalidGraph, err)
			}
			required = append(required, s)
		}
		opts = append(opts, WithRequiredStakeholders(required...))
	}

	g := New(opts...)
	for _, n := range doc.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// EncodeJSON serializes the graph as indented JSON
func EncodeJSON(g *CausalGraph) ([]byte, error) {
	data, err := json.MarshalIndent(g.ToDocument(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}
	return data, nil
}

// DecodeJSON deserializes a graph from JSON. Unknown fields are
// rejected rather than silently dropped.
func DecodeJSON(data []byte) (*CausalGraph, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode graph: %v", core.ErrInvalidGraph, err)
	}
	return FromDocument(doc)
}

// EncodeYAML serializes the graph as YAML
func EncodeYAML(g *CausalGraph) ([]byte, error) {
	data, err := yaml.Marshal(g.ToDocument())
	if err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}
	return data, nil
}

// DecodeYAML deserializes a graph from YAML. Unknown fields are
// rejected rather than silently dropped.
func DecodeYAML(data []byte) (*CausalGraph, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: decode graph: empty document", core.ErrInvalidGraph)
		}
		return nil, fmt.Errorf("%w: decode graph: %v", core.ErrInvalidGraph, err)
	}
	return FromDocument(doc)
}
