// Package policy models the structured policy change under analysis:
// its type, targeted stakeholder groups, declared parameters, and the
// rules that turn those parameters into an initial shock. The rule
// tables are configuration data so new policy shapes can be added
// without touching engine code.
package policy

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
)

// Type identifies the policy instrument under analysis
type Type string

const (
	TypeSubsidyChange   Type = "subsidy_change"
	TypeTaxChange       Type = "tax_change"
	TypeCreditIncentive Type = "credit_incentive"
)

// AllTypes returns the supported policy types in stable order
func AllTypes() []Type {
	return []Type{TypeSubsidyChange, TypeTaxChange, TypeCreditIncentive}
}

// ParseType converts a string into a policy Type, case-insensitively
func ParseType(s string) (Type, error) {
	candidate := Type(strings.ToLower(strings.TrimSpace(s)))
	if !candidate.Valid() {
		return "", fmt.Errorf("%w: unknown policy type %q", core.ErrInvalidPolicy, s)
	}
	return candidate, nil
}

// Valid reports whether the type belongs to the supported set
func (t Type) Valid() bool {
	switch t {
	case TypeSubsidyChange, TypeTaxChange, TypeCreditIncentive:
		return true
	}
	return false
}

// String returns the string representation
func (t Type) String() string {
	return string(t)
}

// Variables is the structured policy description supplied by the
// extraction layer. Timeline is carried opaquely for reporting.
type Variables struct {
	Type         Type                `json:"policy_type" yaml:"policy_type"`
	TargetGroups []graph.Stakeholder `json:"target_groups" yaml:"target_groups"`
	Parameters   map[string]float64  `json:"parameters" yaml:"parameters"`
	Timeline     string              `json:"timeline,omitempty" yaml:"timeline,omitempty"`
}

// Validate checks the policy description before shock derivation
func (v Variables) Validate() error {
	if !v.Type.Valid() {
		return fmt.Errorf("%w: unknown policy type %q", core.ErrInvalidPolicy, v.Type)
	}
	if len(v.TargetGroups) == 0 {
		return fmt.Errorf("%w: no target groups declared", core.ErrInvalidPolicy)
	}
	seen := make(map[graph.Stakeholder]bool, len(v.TargetGroups))
	for _, target := range v.TargetGroups {
		if !target.Valid() {
			return fmt.Errorf("%w: unknown target group %q", core.ErrInvalidPolicy, target)
		}
		if seen[target] {
			return fmt.Errorf("%w: duplicate target group %q", core.ErrInvalidPolicy, target)
		}
		seen[target] = true
	}
	for name, value := range v.Parameters {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%w: parameter %q is not a finite number", core.ErrInvalidPolicy, name)
		}
	}
	return nil
}

// ShockRule maps one declared policy parameter onto a signed
// contribution to the initial shock magnitude. A subsidy reduction of
// 20 with multiplier -1 yields a -20 shock on each targeted group.
type ShockRule struct {
	Parameter  string  `json:"parameter" yaml:"parameter"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// ShockRules is the per-type rule table, configuration data
type ShockRules map[Type][]ShockRule

// DefaultShockRules returns the rule table for the supported policies
func DefaultShockRules() ShockRules {
	return ShockRules{
		TypeSubsidyChange: {
			{Parameter: "subsidy_reduction_percent", Multiplier: -1},
		},
		TypeTaxChange: {
			{Parameter: "tax_change_percent", Multiplier: -1},
		},
		TypeCreditIncentive: {
			{Parameter: "credit_incentive_percent", Multiplier: 1},
		},
	}
}

// Validate checks the rule table shape
func (r ShockRules) Validate() error {
	for policyType, rules := range r {
		if !policyType.Valid() {
			return fmt.Errorf("%w: shock rules declared for unknown policy type %q", core.ErrInvalidPolicy, policyType)
		}
		if len(rules) == 0 {
			return fmt.Errorf("%w: empty shock rule set for policy type %q", core.ErrInvalidPolicy, policyType)
		}
		for _, rule := range rules {
			if strings.TrimSpace(rule.Parameter) == "" {
				return fmt.Errorf("%w: shock rule for %q has empty parameter name", core.ErrInvalidPolicy, policyType)
			}
			if rule.Multiplier == 0 || math.IsNaN(rule.Multiplier) || math.IsInf(rule.Multiplier, 0) {
				return fmt.Errorf("%w: shock rule %q for %q has invalid multiplier %g",
					core.ErrInvalidPolicy, rule.Parameter, policyType, rule.Multiplier)
			}
		}
	}
	return nil
}

// Shock is the initial signed impact applied to directly targeted
// stakeholders before propagation.
type Shock struct {
	PolicyType Type                          `json:"policy_type"`
	Magnitudes map[graph.Stakeholder]float64 `json:"magnitudes"`
	Parameters map[string]float64            `json:"parameters"`
}

// BuildShock derives the initial shock from the policy description and
// the configured rule table. Every declared parameter with a matching
// rule contributes; parameters without rules are carried but inert.
func BuildShock(vars Variables, rules ShockRules) (Shock, error) {
	if err := vars.Validate(); err != nil {
		return Shock{}, err
	}
	ruleSet, ok := rules[vars.Type]
	if !ok || len(ruleSet) == 0 {
		return Shock{}, fmt.Errorf("%w: no shock rules configured for policy type %q",
			core.ErrInvalidPolicy, vars.Type)
	}

	magnitude := 0.0
	matched := false
	for _, rule := range ruleSet {
		if value, present := vars.Parameters[rule.Parameter]; present {
			magnitude += value * rule.Multiplier
			matched = true
		}
	}
	if !matched {
		expected := make([]string, 0, len(ruleSet))
		for _, rule := range ruleSet {
			expected = append(expected, rule.Parameter)
		}
		return Shock{}, fmt.Errorf("%w: no shock parameter declared; policy type %q expects one of [%s]",
			core.ErrInvalidPolicy, vars.Type, strings.Join(expected, ", "))
	}

	magnitudes := make(map[graph.Stakeholder]float64, len(vars.TargetGroups))
	for _, target := range vars.TargetGroups {
		magnitudes[target] = magnitude
	}
	params := make(map[string]float64, len(vars.Parameters))
	for name, value := range vars.Parameters {
		params[name] = value
	}
	return Shock{
		PolicyType: vars.Type,
		Magnitudes: magnitudes,
		Parameters: params,
	}, nil
}

// Targets returns the shocked stakeholders in canonical order
func (s Shock) Targets() []graph.Stakeholder {
	targets := make([]graph.Stakeholder, 0, len(s.Magnitudes))
	for stakeholder := range s.Magnitudes {
		targets = append(targets, stakeholder)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}

// IsTargeted reports whether the stakeholder receives a direct shock
func (s Shock) IsTargeted(stakeholder graph.Stakeholder) bool {
	_, ok := s.Magnitudes[stakeholder]
	return ok
}

// MaxMagnitude returns the largest absolute direct shock, the base of
// the numerical stability bound.
func (s Shock) MaxMagnitude() float64 {
	largest := 0.0
	for _, m := range s.Magnitudes {
		if abs := math.Abs(m); abs > largest {
			largest = abs
		}
	}
	return largest
}

// EffectMatrix maps each policy type onto metric weights used to derive
// after-state snapshots from mean impact. Configuration data, not
// hard-coded per policy.
type EffectMatrix map[Type]map[baseline.Metric]float64

// DefaultEffectMatrix returns the metric weights for the supported
// policies. A positive weight moves the metric with the impact sign, a
// negative weight against it.
func DefaultEffectMatrix() EffectMatrix {
	return EffectMatrix{
		TypeSubsidyChange: {
			baseline.MetricIncomeLevel:     0.2,
			baseline.MetricCostBurden:      -0.5,
			baseline.MetricBenefitReceived: 0.4,
		},
		TypeTaxChange: {
			baseline.MetricIncomeLevel: 0.5,
			baseline.MetricCostBurden:  -0.4,
		},
		TypeCreditIncentive: {
			baseline.MetricIncomeLevel:     0.2,
			baseline.MetricCostBurden:      -0.3,
			baseline.MetricBenefitReceived: 0.5,
		},
	}
}

// Validate checks the effect matrix shape
func (m EffectMatrix) Validate() error {
	for policyType, effects := range m {
		if !policyType.Valid() {
			return fmt.Errorf("%w: effect matrix declared for unknown policy type %q", core.ErrInvalidPolicy, policyType)
		}
		if len(effects) == 0 {
			return fmt.Errorf("%w: empty effect set for policy type %q", core.ErrInvalidPolicy, policyType)
		}
		for metric, weight := range effects {
			if !metric.Valid() {
				return fmt.Errorf("%w: effect matrix for %q references unknown metric %q",
					core.ErrInvalidPolicy, policyType, metric)
			}
			if math.IsNaN(weight) || weight < -1 || weight > 1 {
				return fmt.Errorf("%w: effect weight %g for %q/%q outside [-1, 1]",
					core.ErrInvalidPolicy, weight, policyType, metric)
			}
		}
	}
	return nil
}

// Effects returns the metric weights for one policy type
func (m EffectMatrix) Effects(t Type) (map[baseline.Metric]float64, error) {
	effects, ok := m[t]
	if !ok {
		return nil, fmt.Errorf("%w: no effect mapping configured for policy type %q", core.ErrInvalidPolicy, t)
	}
	return effects, nil
}
