package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	// Generate many IDs
	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{"run-123", RunID("run-123"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseRunID(test.input)
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

// TestHashValueDeterminism tests that equal values hash identically
func TestHashValueDeterminism(t *testing.T) {
	type payload struct {
		Name  string             `json:"name"`
		Count int                `json:"count"`
		Tags  map[string]float64 `json:"tags"`
	}

	a := payload{Name: "subsidy", Count: 3, Tags: map[string]float64{"x": 1.5, "y": -0.25}}
	b := payload{Name: "subsidy", Count: 3, Tags: map[string]float64{"y": -0.25, "x": 1.5}}

	hashA, err := HashValue(a)
	if err != nil {
		t.Fatalf("HashValue failed: %v", err)
	}
	hashB, err := HashValue(b)
	if err != nil {
		t.Fatalf("HashValue failed: %v", err)
	}
	if !hashA.Equals(hashB) {
		t.Errorf("Equal values hashed differently: %s vs %s", hashA, hashB)
	}

	c := payload{Name: "subsidy", Count: 4, Tags: a.Tags}
	hashC, err := HashValue(c)
	if err != nil {
		t.Fatalf("HashValue failed: %v", err)
	}
	if hashA.Equals(hashC) {
		t.Error("Different values produced identical hashes")
	}
}

// TestHashStringsOrderSensitive tests that sequence order changes the hash
func TestHashStringsOrderSensitive(t *testing.T) {
	forward := HashStrings("graph", "scenario", "policy")
	reversed := HashStrings("policy", "scenario", "graph")
	if forward.Equals(reversed) {
		t.Error("Expected order-sensitive hashing, got identical hashes")
	}
	if !forward.Equals(HashStrings("graph", "scenario", "policy")) {
		t.Error("Expected repeatable hash for identical input")
	}
}

// TestHashShort tests hash truncation
func TestHashShort(t *testing.T) {
	full := HashStrings("abc")
	if len(full.Short()) != 12 {
		t.Errorf("Expected 12 characters, got %d", len(full.Short()))
	}
	if Hash("tiny").Short() != "tiny" {
		t.Error("Expected short input to pass through unchanged")
	}
}

// TestErrorUnwrapping tests that typed errors unwrap to their sentinels
func TestErrorUnwrapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"dangling edge", &DanglingEdgeError{Source: "a", Target: "b", Endpoint: "b"}, ErrInvalidGraph},
		{"missing stakeholder", &MissingStakeholderError{Stakeholder: "farmer"}, ErrInvalidGraph},
		{"weight range", &WeightRangeError{Source: "a", Target: "b", Weight: 1.5}, ErrInvalidGraph},
		{"scenario range", &ScenarioRangeError{Parameter: "adoption_rate", Value: 2, Min: 0, Max: 1}, ErrInvalidScenario},
		{"stale indicator", &StaleIndicatorError{Indicator: "citizen.income_level", AgeDays: 400, MaxDays: 365}, ErrStaleBaseline},
		{"low confidence", &LowConfidenceError{Indicator: "msme.cost_burden", Confidence: 0.2, Floor: 0.5}, ErrStaleBaseline},
		{"missing indicator", &MissingIndicatorError{Indicator: "farmer.income_level"}, ErrStaleBaseline},
		{"instability", &InstabilityError{Node: "n1", Stakeholder: "citizen", Hop: 2, Value: 300, Bound: 200}, ErrNumericalInstability},
		{"convergence", &ConvergenceError{Discarded: 80, Iterations: 1000, Rate: 0.08, Threshold: 0.05}, ErrSimulation},
		{"timeout", &TimeoutError{Completed: 500, Requested: 1000, CauseError: errors.New("context deadline exceeded")}, ErrSimulation},
	}

	for _, test := range tests {
		if !errors.Is(test.err, test.sentinel) {
			t.Errorf("%s: expected errors.Is against %v to hold for %v", test.name, test.sentinel, test.err)
		}
	}

	// Instability escalates through the simulation sentinel too
	inst := &InstabilityError{Node: "n1", Stakeholder: "citizen", Hop: 0, Value: 999, Bound: 100}
	if !errors.Is(inst, ErrSimulation) {
		t.Error("Expected instability errors to also match ErrSimulation")
	}
}

// TestErrorHelpers tests category helper predicates
func TestErrorHelpers(t *testing.T) {
	if !IsValidationError(&WeightRangeError{Source: "a", Target: "b", Weight: -2}) {
		t.Error("Expected weight range error to be a validation error")
	}
	if !IsBaselineError(&StaleIndicatorError{Indicator: "k", AgeDays: 1, MaxDays: 0}) {
		t.Error("Expected stale indicator error to be a baseline error")
	}
	if !IsSimulationError(&ConvergenceError{Discarded: 1, Iterations: 10, Rate: 0.1, Threshold: 0.05}) {
		t.Error("Expected convergence error to be a simulation error")
	}
	if !IsInstabilityError(&InstabilityError{Node: "n", Stakeholder: "msme", Hop: 1, Value: 5, Bound: 1}) {
		t.Error("Expected instability error to match its own category")
	}
	if IsNotFoundError(ErrInvalidGraph) {
		t.Error("Did not expect a validation sentinel to match not-found")
	}
}
