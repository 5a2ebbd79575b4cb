// Package simulation defines the immutable result values a simulation
// run produces: per-stakeholder shock indices, before/after economic
// state, uncertainty metrics, and the deterministic run metadata that
// makes replays verifiable.
package simulation

import (
	"fmt"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
)

// Direction classifies the sign of a shock index
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNeutral  Direction = "neutral"
)

// DirectionFor classifies a normalized index value against the
// dead-zone epsilon. Values within [-epsilon, epsilon] are Neutral.
func DirectionFor(value, epsilon float64) Direction {
	switch {
	case value > epsilon:
		return DirectionPositive
	case value < -epsilon:
		return DirectionNegative
	default:
		return DirectionNeutral
	}
}

// ShockIndex is the normalized, signed, confidence-scored summary of a
// stakeholder's simulated impact.
type ShockIndex struct {
	Value      float64   `json:"value"`
	Direction  Direction `json:"direction"`
	Confidence float64   `json:"confidence"`
}

// Interval is a two-sided confidence interval
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns the interval span
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// Contains reports whether v lies inside the interval
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

// UncertaintyMetrics carries the dispersion profile of one
// stakeholder's outcome distribution and the per-parameter sensitivity
// attribution.
type UncertaintyMetrics struct {
	StdDeviation       float64            `json:"std_deviation"`
	ConfidenceInterval Interval           `json:"confidence_interval"`
	Sensitivity        map[string]float64 `json:"sensitivity"`
	DominantDriver     string             `json:"dominant_driver"`
}

// Distribution summarizes one stakeholder's raw outcome samples for
// report rendering.
type Distribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P5     float64 `json:"p5"`
	P95    float64 `json:"p95"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Metadata records the deterministic facts of a run: everything needed
// to reproduce and verify it. Wall-clock data deliberately lives
// outside, on the ledger envelope, so two replays of the same inputs
// compare equal.
type Metadata struct {
	Seed        int64     `json:"seed"`
	Requested   int       `json:"requested_iterations"`
	Aggregated  int       `json:"aggregated_iterations"`
	Discarded   int       `json:"discarded_iterations"`
	HopLimit    int       `json:"hop_limit"`
	Fingerprint core.Hash `json:"fingerprint"`
}

// DiscardRate returns the fraction of iterations dropped for
// numerical instability.
func (m Metadata) DiscardRate() float64 {
	if m.Requested == 0 {
		return 0
	}
	return float64(m.Discarded) / float64(m.Requested)
}

// Result is the complete output of one simulation call. It is a fresh
// value per call and shares no state with the engine.
type Result struct {
	Indices     map[graph.Stakeholder]ShockIndex            `json:"shock_indices"`
	BeforeState map[graph.Stakeholder]baseline.StateMetrics `json:"before_state"`
	AfterState  map[graph.Stakeholder]baseline.StateMetrics `json:"after_state"`
	Uncertainty map[graph.Stakeholder]UncertaintyMetrics    `json:"uncertainty"`
	Samples     map[graph.Stakeholder]Distribution          `json:"sample_distributions"`
	Scenario    scenario.Parameters                         `json:"scenario"`
	Metadata    Metadata                                    `json:"metadata"`
}

// Stakeholders returns the covered stakeholders in canonical order
func (r *Result) Stakeholders() []graph.Stakeholder {
	var ordered []graph.Stakeholder
	for _, s := range graph.AllStakeholders() {
		if _, ok := r.Indices[s]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

// Fingerprint composes the deterministic run identity from the graph
// topology hash, the combined inputs hash, and the seed.
func Fingerprint(graphHash core.GraphHash, inputs core.Hash, seed int64, iterations int) core.Hash {
	data := fmt.Sprintf("graph:%s|inputs:%s|seed:%d|iterations:%d",
		graphHash, inputs, seed, iterations)
	return core.NewHash([]byte(data))
}
