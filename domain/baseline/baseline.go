// Package baseline models the economic indicator snapshot a simulation
// starts from. Indicators arrive from an external retrieval layer and
// are validated for presence, confidence, and recency before the engine
// accepts them.
package baseline

import (
	"fmt"
	"time"

	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
)

// Metric identifies one tracked economic dimension per stakeholder
type Metric string

const (
	MetricIncomeLevel     Metric = "income_level"
	MetricCostBurden      Metric = "cost_burden"
	MetricBenefitReceived Metric = "benefit_received"
)

// AllMetrics returns the tracked metrics in stable order
func AllMetrics() []Metric {
	return []Metric{MetricIncomeLevel, MetricCostBurden, MetricBenefitReceived}
}

// Valid reports whether the metric belongs to the closed set
func (m Metric) Valid() bool {
	switch m {
	case MetricIncomeLevel, MetricCostBurden, MetricBenefitReceived:
		return true
	}
	return false
}

// String returns the string representation
func (m Metric) String() string {
	return string(m)
}

// IndicatorKey builds the canonical indicator lookup key for a
// stakeholder and metric, e.g. "citizen.income_level".
func IndicatorKey(s graph.Stakeholder, m Metric) string {
	return fmt.Sprintf("%s.%s", s, m)
}

// Indicator is one retrieved economic data point with its provenance
type Indicator struct {
	Value      float64        `json:"value" yaml:"value"`
	Unit       string         `json:"unit" yaml:"unit"`
	Source     string         `json:"source" yaml:"source"`
	Timestamp  core.Timestamp `json:"timestamp" yaml:"timestamp"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
}

// Data is the full baseline snapshot keyed by indicator key
type Data struct {
	Indicators map[string]Indicator `json:"indicators" yaml:"indicators"`
	Metadata   map[string]string    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// FreshnessPolicy declares how recent and how trusted an indicator must
// be for simulation to proceed.
type FreshnessPolicy struct {
	MaxAgeDays    int     `json:"max_age_days" yaml:"max_age_days"`
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`
}

// DefaultFreshnessPolicy returns the standard acceptance thresholds
func DefaultFreshnessPolicy() FreshnessPolicy {
	return FreshnessPolicy{
		MaxAgeDays:    365,
		MinConfidence: 0.5,
	}
}

// StateMetrics is the per-stakeholder economic snapshot carried through
// before/after comparison.
type StateMetrics struct {
	IncomeLevel     float64 `json:"income_level" yaml:"income_level"`
	CostBurden      float64 `json:"cost_burden" yaml:"cost_burden"`
	BenefitReceived float64 `json:"benefit_received" yaml:"benefit_received"`
}

// Metric returns the named field value
func (s StateMetrics) Metric(m Metric) float64 {
	switch m {
	case MetricIncomeLevel:
		return s.IncomeLevel
	case MetricCostBurden:
		return s.CostBurden
	case MetricBenefitReceived:
		return s.BenefitReceived
	}
	return 0
}

// WithMetric returns a copy with the named field replaced
func (s StateMetrics) WithMetric(m Metric, value float64) StateMetrics {
	switch m {
	case MetricIncomeLevel:
		s.IncomeLevel = value
	case MetricCostBurden:
		s.CostBurden = value
	case MetricBenefitReceived:
		s.BenefitReceived = value
	}
	return s
}

// Validate checks that every required stakeholder has a complete, fresh,
// trusted indicator set. The reference time is passed in so validation
// stays deterministic under test.
func (d Data) Validate(required []graph.Stakeholder, policy FreshnessPolicy, now core.Timestamp) error {
	for _, stakeholder := range required {
		for _, metric := range AllMetrics() {
			key := IndicatorKey(stakeholder, metric)
			ind, ok := d.Indicators[key]
			if !ok {
				return &core.MissingIndicatorError{Indicator: key}
			}
			if ind.Confidence < policy.MinConfidence {
				return &core.LowConfidenceError{
					Indicator:  key,
					Confidence: ind.Confidence,
					Floor:      policy.MinConfidence,
				}
			}
			ageDays := int(now.Sub(ind.Timestamp) / (24 * time.Hour))
			if ageDays > policy.MaxAgeDays {
				return &core.StaleIndicatorError{
					Indicator: key,
					AgeDays:   ageDays,
					MaxDays:   policy.MaxAgeDays,
				}
			}
			if metric == MetricIncomeLevel && ind.Value <= 0 {
				return fmt.Errorf("%w: indicator %q must be positive to anchor index normalization, got %g",
					core.ErrStaleBaseline, key, ind.Value)
			}
		}
	}
	return nil
}

// StateFor extracts the before-state snapshot for one stakeholder
func (d Data) StateFor(s graph.Stakeholder) (StateMetrics, error) {
	var state StateMetrics
	for _, metric := range AllMetrics() {
		key := IndicatorKey(s, metric)
		ind, ok := d.Indicators[key]
		if !ok {
			return StateMetrics{}, &core.MissingIndicatorError{Indicator: key}
		}
		state = state.WithMetric(metric, ind.Value)
	}
	return state, nil
}

// ScaleAnchor returns the normalization anchor for shock indices: the
// stakeholder's baseline income level.
func (d Data) ScaleAnchor(s graph.Stakeholder) (float64, error) {
	key := IndicatorKey(s, MetricIncomeLevel)
	ind, ok := d.Indicators[key]
	if !ok {
		return 0, &core.MissingIndicatorError{Indicator: key}
	}
	if ind.Value <= 0 {
		return 0, fmt.Errorf("%w: indicator %q must be positive to anchor index normalization, got %g",
			core.ErrStaleBaseline, key, ind.Value)
	}
	return ind.Value, nil
}
