package engine

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
	"github.com/nishasharma303/NitiVimarsh/domain/simulation"
)

// parameterDraws holds the accepted per-iteration parameter values,
// aligned index-for-index with each stakeholder's outcome samples.
type parameterDraws map[string][]float64

// computeUncertainty derives the dispersion profile and per-parameter
// sensitivity attribution for one stakeholder's outcome distribution.
// The dominant driver is the parameter with the largest-magnitude
// coefficient, ties resolving to the earlier canonical name.
func computeUncertainty(samples []float64, draws parameterDraws, cfg scenario.SimulationConfig) simulation.UncertaintyMetrics {
	mean := meanOf(samples)
	sd := stdDevOf(samples)

	metrics := simulation.UncertaintyMetrics{
		StdDeviation:       sd,
		ConfidenceInterval: confidenceInterval(mean, sd, len(samples), cfg.MinSamplesNormalCI),
		Sensitivity:        make(map[string]float64, 4),
	}

	bestMag := -1.0
	for _, name := range scenario.ParameterNames() {
		coef := pearsonCorrelation(draws[name], samples)
		metrics.Sensitivity[name] = coef
		if mag := math.Abs(coef); mag > bestMag {
			metrics.DominantDriver, bestMag = name, mag
		}
	}
	return metrics
}

// confidenceInterval is the 95% interval on the mean. Large samples use
// the normal approximation; below the configured floor the quantile
// widens via a Student's t correction with n-1 degrees of freedom.
func confidenceInterval(mean, sd float64, n, minNormal int) simulation.Interval {
	if n < 2 {
		return simulation.Interval{Lower: mean, Upper: mean}
	}
	var quantile float64
	if n >= minNormal {
		quantile = distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)
	} else {
		quantile = distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}.Quantile(0.975)
	}
	stderr := sd / math.Sqrt(float64(n))
	return simulation.Interval{Lower: mean - quantile*stderr, Upper: mean + quantile*stderr}
}

// pearsonCorrelation calculates the correlation coefficient between
// parameter draws and outcomes. Zero variance on either side yields 0
// rather than NaN, so a pinned parameter reads as having no influence.
func pearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	// Clamp to [-1, 1] due to floating point precision
	return clamp(r, -1, 1)
}

// summarize produces the report-facing snapshot of one stakeholder's
// outcome distribution. With too few samples for a tail percentile the
// tails pinch to the observed extremes.
func summarize(samples []float64) simulation.Distribution {
	mean, _ := stats.Mean(samples)
	median, _ := stats.Median(samples)
	min, _ := stats.Min(samples)
	max, _ := stats.Max(samples)
	p5, err := stats.Percentile(samples, 5)
	if err != nil {
		p5 = min
	}
	p95, err := stats.Percentile(samples, 95)
	if err != nil {
		p95 = max
	}
	return simulation.Distribution{Mean: mean, Median: median, P5: p5, P95: p95, Min: min, Max: max}
}
