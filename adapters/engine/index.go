package engine

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
	"github.com/nishasharma303/NitiVimarsh/domain/simulation"
)

// computeIndex reduces one stakeholder's outcome samples to a signed,
// normalized shock index. The mean impact divides by the stakeholder's
// scale anchor so indices compare across stakeholders of different
// absolute scale; direction applies the dead-zone epsilon to the
// normalized value; confidence rewards low dispersion relative to the
// mean.
func computeIndex(samples []float64, anchor float64, cfg scenario.SimulationConfig) simulation.ShockIndex {
	mean := meanOf(samples)
	sd := stdDevOf(samples)

	value := mean / anchor
	confidence := 1 - math.Min(1, sd/(math.Abs(mean)+cfg.ConfidenceDelta))
	return simulation.ShockIndex{
		Value:      value,
		Direction:  simulation.DirectionFor(value, cfg.IndexEpsilon),
		Confidence: clamp(confidence, 0, 1),
	}
}

// meanOf is the arithmetic mean, zero on degenerate input
func meanOf(samples []float64) float64 {
	mean, err := stats.Mean(samples)
	if err != nil {
		return 0
	}
	return mean
}

// stdDevOf is the standard deviation, zero on degenerate input
func stdDevOf(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviation(samples)
	if err != nil {
		return 0
	}
	return sd
}
