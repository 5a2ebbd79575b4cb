// Package scenario defines the behavioral parameter set a simulation run
// samples around, plus the engine tuning knobs. Values arrive from
// configuration or the API and are validated against their declared
// ranges before any simulation work starts. Out-of-range values are
// rejected, never clamped.
package scenario

import (
	"fmt"
	"math"

	"github.com/nishasharma303/NitiVimarsh/domain/core"
)

// Canonical parameter names, used for sensitivity attribution and
// range-error reporting.
const (
	ParamElasticity  = "elasticity"
	ParamAdoption    = "adoption_rate"
	ParamCompliance  = "compliance_rate"
	ParamPassThrough = "pass_through_rate"
)

// ParameterNames returns the perturbed parameter names in stable order
func ParameterNames() []string {
	return []string{ParamElasticity, ParamAdoption, ParamCompliance, ParamPassThrough}
}

// Parameters is one complete set of behavioral scenario values.
// Elasticity is an unbounded responsiveness multiplier; the three rate
// fields are fractions of affected populations and stay in [0, 1].
type Parameters struct {
	Elasticity      float64 `json:"elasticity" yaml:"elasticity"`
	AdoptionRate    float64 `json:"adoption_rate" yaml:"adoption_rate"`
	ComplianceRate  float64 `json:"compliance_rate" yaml:"compliance_rate"`
	PassThroughRate float64 `json:"pass_through_rate" yaml:"pass_through_rate"`
	Iterations      int     `json:"iterations" yaml:"iterations"`
}

// Defaults returns the standard scenario values
func Defaults() Parameters {
	return Parameters{
		Elasticity:      0.5,
		AdoptionRate:    0.7,
		ComplianceRate:  0.8,
		PassThroughRate: 0.6,
		Iterations:      1000,
	}
}

// Validate checks every field against its declared range
func (p Parameters) Validate() error {
	if math.IsNaN(p.Elasticity) || p.Elasticity < 0 {
		return &core.ScenarioRangeError{
			Parameter: ParamElasticity, Value: p.Elasticity, Min: 0, Max: math.Inf(1),
		}
	}
	rates := []struct {
		name  string
		value float64
	}{
		{ParamAdoption, p.AdoptionRate},
		{ParamCompliance, p.ComplianceRate},
		{ParamPassThrough, p.PassThroughRate},
	}
	for _, r := range rates {
		if math.IsNaN(r.value) || r.value < 0 || r.value > 1 {
			return &core.ScenarioRangeError{
				Parameter: r.name, Value: r.value, Min: 0, Max: 1,
			}
		}
	}
	if p.Iterations < 1 {
		return &core.ScenarioRangeError{
			Parameter: "iterations", Value: float64(p.Iterations), Min: 1, Max: math.Inf(1),
		}
	}
	return nil
}

// Value returns the named parameter, used when recording per-sample
// parameter draws for sensitivity analysis.
func (p Parameters) Value(name string) (float64, error) {
	switch name {
	case ParamElasticity:
		return p.Elasticity, nil
	case ParamAdoption:
		return p.AdoptionRate, nil
	case ParamCompliance:
		return p.ComplianceRate, nil
	case ParamPassThrough:
		return p.PassThroughRate, nil
	}
	return 0, fmt.Errorf("unknown scenario parameter %q", name)
}

// AsMap returns the four perturbed parameters keyed by canonical name
func (p Parameters) AsMap() map[string]float64 {
	return map[string]float64{
		ParamElasticity:  p.Elasticity,
		ParamAdoption:    p.AdoptionRate,
		ParamCompliance:  p.ComplianceRate,
		ParamPassThrough: p.PassThroughRate,
	}
}

// SimulationConfig carries the engine tuning knobs. These are
// process-level configuration threaded explicitly into every call so
// concurrent simulations with different configurations cannot
// interfere through shared state.
type SimulationConfig struct {
	// HopLimit bounds propagation depth instead of running cyclic
	// graphs to a fixed point.
	HopLimit int `json:"hop_limit" yaml:"hop_limit"`

	// InstabilityFactor scales the largest direct shock magnitude into
	// the per-sample stability bound.
	InstabilityFactor float64 `json:"instability_factor" yaml:"instability_factor"`

	// DiscardThreshold is the discarded-sample fraction above which a
	// run fails with a convergence error.
	DiscardThreshold float64 `json:"discard_threshold" yaml:"discard_threshold"`

	// PerturbationScale is the relative standard deviation of the
	// truncated-normal draws around each scenario parameter.
	PerturbationScale float64 `json:"perturbation_scale" yaml:"perturbation_scale"`

	// ElasticitySpread widens the perturbation scale for elasticity
	// relative to the rate parameters. Behavioral responsiveness is the
	// least empirically pinned scenario input, so its draws spread wider
	// than the implementation rates.
	ElasticitySpread float64 `json:"elasticity_spread" yaml:"elasticity_spread"`

	// MinSamplesNormalCI is the sample count below which confidence
	// intervals switch from the normal approximation to a Student's t
	// correction.
	MinSamplesNormalCI int `json:"min_samples_normal_ci" yaml:"min_samples_normal_ci"`

	// IndexEpsilon is the dead-zone around zero, as a fraction of the
	// scale anchor, inside which a shock index direction is Neutral.
	IndexEpsilon float64 `json:"index_epsilon" yaml:"index_epsilon"`

	// ConfidenceDelta guards the confidence ratio against division by
	// zero when the mean impact is near zero.
	ConfidenceDelta float64 `json:"confidence_delta" yaml:"confidence_delta"`

	// Workers caps parallel iteration workers. Zero selects GOMAXPROCS.
	Workers int `json:"workers" yaml:"workers"`
}

// DefaultSimulationConfig returns the standard engine tuning
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		HopLimit:           3,
		InstabilityFactor:  10,
		DiscardThreshold:   0.05,
		PerturbationScale:  0.1,
		ElasticitySpread:   2,
		MinSamplesNormalCI: 30,
		IndexEpsilon:       0.01,
		ConfidenceDelta:    1e-9,
		Workers:            0,
	}
}

// Validate checks the tuning knobs against their declared ranges
func (c SimulationConfig) Validate() error {
	if c.HopLimit < 1 {
		return &core.ScenarioRangeError{
			Parameter: "hop_limit", Value: float64(c.HopLimit), Min: 1, Max: math.Inf(1),
		}
	}
	if math.IsNaN(c.InstabilityFactor) || c.InstabilityFactor <= 0 {
		return &core.ScenarioRangeError{
			Parameter: "instability_factor", Value: c.InstabilityFactor, Min: math.SmallestNonzeroFloat64, Max: math.Inf(1),
		}
	}
	if math.IsNaN(c.DiscardThreshold) || c.DiscardThreshold < 0 || c.DiscardThreshold > 1 {
		return &core.ScenarioRangeError{
			Parameter: "discard_threshold", Value: c.DiscardThreshold, Min: 0, Max: 1,
		}
	}
	if math.IsNaN(c.PerturbationScale) || c.PerturbationScale < 0 || c.PerturbationScale > 1 {
		return &core.ScenarioRangeError{
			Parameter: "perturbation_scale", Value: c.PerturbationScale, Min: 0, Max: 1,
		}
	}
	if math.IsNaN(c.ElasticitySpread) || c.ElasticitySpread < 1 {
		return &core.ScenarioRangeError{
			Parameter: "elasticity_spread", Value: c.ElasticitySpread, Min: 1, Max: math.Inf(1),
		}
	}
	if c.MinSamplesNormalCI < 2 {
		return &core.ScenarioRangeError{
			Parameter: "min_samples_normal_ci", Value: float64(c.MinSamplesNormalCI), Min: 2, Max: math.Inf(1),
		}
	}
	if math.IsNaN(c.IndexEpsilon) || c.IndexEpsilon < 0 {
		return &core.ScenarioRangeError{
			Parameter: "index_epsilon", Value: c.IndexEpsilon, Min: 0, Max: math.Inf(1),
		}
	}
	if math.IsNaN(c.ConfidenceDelta) || c.ConfidenceDelta <= 0 {
		return &core.ScenarioRangeError{
			Parameter: "confidence_delta", Value: c.ConfidenceDelta, Min: math.SmallestNonzeroFloat64, Max: math.Inf(1),
		}
	}
	if c.Workers < 0 {
		return &core.ScenarioRangeError{
			Parameter: "workers", Value: float64(c.Workers), Min: 0, Max: math.Inf(1),
		}
	}
	return nil
}
