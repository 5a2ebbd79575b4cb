package core

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Validation errors
	ErrInvalidGraph    = errors.New("invalid graph")
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrInvalidPolicy   = errors.New("invalid policy")
	ErrStaleBaseline   = errors.New("stale baseline")

	// Simulation errors
	ErrSimulation           = errors.New("simulation failed")
	ErrNumericalInstability = fmt.Errorf("%w: numerical instability", ErrSimulation)
)

// DanglingEdgeError reports an edge whose endpoint is not a declared node.
type DanglingEdgeError struct {
	Source   string
	Target   string
	Endpoint string
}

func (e *DanglingEdgeError) Error() string {
	return fmt.Sprintf("%v: dangling edge endpoint %q on edge %s->%s",
		ErrInvalidGraph, e.Endpoint, e.Source, e.Target)
}

func (e *DanglingEdgeError) Unwrap() error { return ErrInvalidGraph }

// MissingStakeholderError reports a required stakeholder type with no nodes.
type MissingStakeholderError struct {
	Stakeholder string
}

func (e *MissingStakeholderError) Error() string {
	return fmt.Sprintf("%v: missing stakeholder type, no node declared for %q",
		ErrInvalidGraph, e.Stakeholder)
}

func (e *MissingStakeholderError) Unwrap() error { return ErrInvalidGraph }

// WeightRangeError reports an edge weight outside [0, 1].
type WeightRangeError struct {
	Source string
	Target string
	Weight float64
}

func (e *WeightRangeError) Error() string {
	return fmt.Sprintf("%v: weight out of range, edge %s->%s has weight %g (valid range [0, 1])",
		ErrInvalidGraph, e.Source, e.Target, e.Weight)
}

func (e *WeightRangeError) Unwrap() error { return ErrInvalidGraph }

// ScenarioRangeError reports a scenario parameter outside its allowed range.
// Max may be +Inf for parameters that are only bounded below.
type ScenarioRangeError struct {
	Parameter string
	Value     float64
	Min       float64
	Max       float64
}

func (e *ScenarioRangeError) Error() string {
	if math.IsInf(e.Max, 1) {
		return fmt.Sprintf("%v: %s = %g, must be >= %g",
			ErrInvalidScenario, e.Parameter, e.Value, e.Min)
	}
	return fmt.Sprintf("%v: %s = %g outside valid range [%g, %g]",
		ErrInvalidScenario, e.Parameter, e.Value, e.Min, e.Max)
}

func (e *ScenarioRangeError) Unwrap() error { return ErrInvalidScenario }

// StaleIndicatorError reports a baseline indicator older than the freshness window.
type StaleIndicatorError struct {
	Indicator string
	AgeDays   int
	MaxDays   int
}

func (e *StaleIndicatorError) Error() string {
	return fmt.Sprintf("%v: indicator %q is %d days old (max %d)",
		ErrStaleBaseline, e.Indicator, e.AgeDays, e.MaxDays)
}

func (e *StaleIndicatorError) Unwrap() error { return ErrStaleBaseline }

// LowConfidenceError reports a baseline indicator below the confidence floor.
type LowConfidenceError struct {
	Indicator  string
	Confidence float64
	Floor      float64
}

func (e *LowConfidenceError) Error() string {
	return fmt.Sprintf("%v: indicator %q confidence %.4f below floor %.4f",
		ErrStaleBaseline, e.Indicator, e.Confidence, e.Floor)
}

func (e *LowConfidenceError) Unwrap() error { return ErrStaleBaseline }

// MissingIndicatorError reports a required baseline indicator that is absent.
type MissingIndicatorError struct {
	Indicator string
}

func (e *MissingIndicatorError) Error() string {
	return fmt.Sprintf("%v: required indicator %q is missing", ErrStaleBaseline, e.Indicator)
}

func (e *MissingIndicatorError) Unwrap() error { return ErrStaleBaseline }

// InstabilityError reports a propagated value that exceeded the stability bound.
type InstabilityError struct {
	Node        string
	Stakeholder string
	Hop         int
	Value       float64
	Bound       float64
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("%v: |%.4f| > bound %.4f at node %q (stakeholder %s, hop %d)",
		ErrNumericalInstability, e.Value, e.Bound, e.Node, e.Stakeholder, e.Hop)
}

func (e *InstabilityError) Unwrap() error { return ErrNumericalInstability }

// ConvergenceError reports a run whose discard rate crossed the failure threshold.
type ConvergenceError struct {
	Discarded  int
	Iterations int
	Rate       float64
	Threshold  float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v: convergence failure, %d/%d iterations discarded (%.1f%% > %.1f%%)",
		ErrSimulation, e.Discarded, e.Iterations, e.Rate*100, e.Threshold*100)
}

func (e *ConvergenceError) Unwrap() error { return ErrSimulation }

// TimeoutError reports a run cancelled before all iterations completed.
type TimeoutError struct {
	Completed  int
	Requested  int
	CauseError error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%v: cancelled after %d/%d iterations: %v",
		ErrSimulation, e.Completed, e.Requested, e.CauseError)
}

func (e *TimeoutError) Unwrap() error { return ErrSimulation }

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidGraph) ||
		errors.Is(err, ErrInvalidScenario) ||
		errors.Is(err, ErrInvalidPolicy)
}

func IsBaselineError(err error) bool {
	return errors.Is(err, ErrStaleBaseline)
}

func IsSimulationError(err error) bool {
	return errors.Is(err, ErrSimulation)
}

func IsInstabilityError(err error) bool {
	return errors.Is(err, ErrNumericalInstability)
}
