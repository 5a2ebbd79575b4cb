package policy

import (
	"errors"
	"math"
	"testing"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
)

// TestBuildShockSubsidyReduction tests the sign convention for subsidy cuts
func TestBuildShockSubsidyReduction(t *testing.T) {
	vars := Variables{
		Type:         TypeSubsidyChange,
		TargetGroups: []graph.Stakeholder{graph.StakeholderGovernment},
		Parameters:   map[string]float64{"subsidy_reduction_percent": 20},
		Timeline:     "fy2026",
	}

	shock, err := BuildShock(vars, DefaultShockRules())
	if err != nil {
		t.Fatalf("BuildShock: %v", err)
	}
	if got := shock.Magnitudes[graph.StakeholderGovernment]; got != -20 {
		t.Errorf("Expected -20 shock for 20%% subsidy cut, got %g", got)
	}
	if shock.PolicyType != TypeSubsidyChange {
		t.Errorf("Expected policy type carried, got %s", shock.PolicyType)
	}
	if shock.MaxMagnitude() != 20 {
		t.Errorf("Expected max magnitude 20, got %g", shock.MaxMagnitude())
	}
}

// TestBuildShockSignConventions tests every default rule's direction
func TestBuildShockSignConventions(t *testing.T) {
	tests := []struct {
		name      string
		policy    Type
		parameter string
		value     float64
		expected  float64
	}{
		{"subsidy cut is negative", TypeSubsidyChange, "subsidy_reduction_percent", 15, -15},
		{"tax rise is negative", TypeTaxChange, "tax_change_percent", 5, -5},
		{"tax cut is positive", TypeTaxChange, "tax_change_percent", -5, 5},
		{"credit incentive is positive", TypeCreditIncentive, "credit_incentive_percent", 10, 10},
	}

	for _, test := range tests {
		vars := Variables{
			Type:         test.policy,
			TargetGroups: []graph.Stakeholder{graph.StakeholderMSME},
			Parameters:   map[string]float64{test.parameter: test.value},
		}
		shock, err := BuildShock(vars, DefaultShockRules())
		if err != nil {
			t.Errorf("%s: BuildShock: %v", test.name, err)
			continue
		}
		if got := shock.Magnitudes[graph.StakeholderMSME]; got != test.expected {
			t.Errorf("%s: expected %g, got %g", test.name, test.expected, got)
		}
	}
}

// TestBuildShockMultipleTargets tests each target receives the magnitude
func TestBuildShockMultipleTargets(t *testing.T) {
	vars := Variables{
		Type:         TypeCreditIncentive,
		TargetGroups: []graph.Stakeholder{graph.StakeholderMSME, graph.StakeholderFarmer},
		Parameters:   map[string]float64{"credit_incentive_percent": 12},
	}
	shock, err := BuildShock(vars, DefaultShockRules())
	if err != nil {
		t.Fatalf("BuildShock: %v", err)
	}
	if len(shock.Magnitudes) != 2 {
		t.Fatalf("Expected 2 shocked groups, got %d", len(shock.Magnitudes))
	}
	for _, s := range []graph.Stakeholder{graph.StakeholderMSME, graph.StakeholderFarmer} {
		if shock.Magnitudes[s] != 12 {
			t.Errorf("Expected magnitude 12 for %s, got %g", s, shock.Magnitudes[s])
		}
		if !shock.IsTargeted(s) {
			t.Errorf("Expected %s to be targeted", s)
		}
	}
	if shock.IsTargeted(graph.StakeholderCitizen) {
		t.Error("Did not expect citizen to be targeted")
	}

	targets := shock.Targets()
	if len(targets) != 2 || targets[0] != graph.StakeholderFarmer || targets[1] != graph.StakeholderMSME {
		t.Errorf("Expected sorted targets [farmer msme], got %v", targets)
	}
}

// TestBuildShockRejectsUnmatchedParameters tests the no-rule-match failure
func TestBuildShockRejectsUnmatchedParameters(t *testing.T) {
	vars := Variables{
		Type:         TypeSubsidyChange,
		TargetGroups: []graph.Stakeholder{graph.StakeholderGovernment},
		Parameters:   map[string]float64{"budget_allocation": 100},
	}
	_, err := BuildShock(vars, DefaultShockRules())
	if err == nil {
		t.Fatal("Expected failure when no parameter matches a rule")
	}
	if !errors.Is(err, core.ErrInvalidPolicy) {
		t.Errorf("Expected ErrInvalidPolicy, got %v", err)
	}
}

// TestVariablesValidation tests the policy description checks
func TestVariablesValidation(t *testing.T) {
	valid := Variables{
		Type:         TypeTaxChange,
		TargetGroups: []graph.Stakeholder{graph.StakeholderCitizen},
		Parameters:   map[string]float64{"tax_change_percent": 2},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid policy, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Variables)
	}{
		{"unknown type", func(v *Variables) { v.Type = "nationalization" }},
		{"no targets", func(v *Variables) { v.TargetGroups = nil }},
		{"unknown target", func(v *Variables) { v.TargetGroups = []graph.Stakeholder{"aliens"} }},
		{"duplicate target", func(v *Variables) {
			v.TargetGroups = []graph.Stakeholder{graph.StakeholderCitizen, graph.StakeholderCitizen}
		}},
		{"non-finite parameter", func(v *Variables) {
			v.Parameters = map[string]float64{"tax_change_percent": math.NaN()}
		}},
	}
	for _, test := range tests {
		v := valid
		test.mutate(&v)
		err := v.Validate()
		if err == nil {
			t.Errorf("%s: expected validation failure", test.name)
			continue
		}
		if !errors.Is(err, core.ErrInvalidPolicy) {
			t.Errorf("%s: expected ErrInvalidPolicy, got %v", test.name, err)
		}
	}
}

// TestParseType tests policy type parsing
func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
		hasError bool
	}{
		{"subsidy_change", TypeSubsidyChange, false},
		{"TAX_CHANGE", TypeTaxChange, false},
		{" credit_incentive ", TypeCreditIncentive, false},
		{"nationalization", "", true},
		{"", "", true},
	}
	for _, test := range tests {
		result, err := ParseType(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestDefaultTablesValidate tests the shipped configuration data
func TestDefaultTablesValidate(t *testing.T) {
	if err := DefaultShockRules().Validate(); err != nil {
		t.Errorf("Default shock rules failed validation: %v", err)
	}
	if err := DefaultEffectMatrix().Validate(); err != nil {
		t.Errorf("Default effect matrix failed validation: %v", err)
	}

	// Every supported type must have both a rule set and an effect set
	for _, policyType := range AllTypes() {
		if _, ok := DefaultShockRules()[policyType]; !ok {
			t.Errorf("No default shock rules for %s", policyType)
		}
		if _, err := DefaultEffectMatrix().Effects(policyType); err != nil {
			t.Errorf("No default effects for %s: %v", policyType, err)
		}
	}
}

// TestEffectMatrixValidation tests matrix shape rejection
func TestEffectMatrixValidation(t *testing.T) {
	bad := EffectMatrix{
		TypeTaxChange: {baseline.Metric("wealth"): 0.5},
	}
	if err := bad.Validate(); err == nil {
		t.Error("Expected unknown metric rejection")
	}

	outOfRange := EffectMatrix{
		TypeTaxChange: {baseline.MetricIncomeLevel: 1.5},
	}
	if err := outOfRange.Validate(); err == nil {
		t.Error("Expected out-of-range weight rejection")
	}

	if _, err := (EffectMatrix{}).Effects(TypeTaxChange); err == nil {
		t.Error("Expected missing effect mapping rejection")
	}
}
