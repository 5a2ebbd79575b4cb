package engine

import (
	"math"
	"testing"

	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
	"github.com/nishasharma303/NitiVimarsh/domain/simulation"
)

func TestConfidenceIntervalQuantiles(t *testing.T) {
	// Large sample: normal approximation, half-width 1.96 x se.
	wide := confidenceInterval(0, 1, 100, 30)
	if w := wide.Width(); math.Abs(w-0.3919928) > 1e-3 {
		t.Errorf("Normal CI width: expected ~0.392, got %g", w)
	}

	// Small sample: Student's t with 9 degrees of freedom widens the
	// quantile from 1.96 to ~2.262.
	narrow := confidenceInterval(0, 1, 10, 30)
	se := 1 / math.Sqrt(10)
	if w := narrow.Width(); w <= 2*1.96*se {
		t.Errorf("Expected t correction to widen the interval, width %g", w)
	}
	if w := narrow.Width(); math.Abs(w-1.4306688) > 1e-3 {
		t.Errorf("Student CI width: expected ~1.431, got %g", w)
	}

	if upper, lower := narrow.Upper, narrow.Lower; math.Abs(upper+lower) > 1e-12 {
		t.Errorf("Expected interval symmetric around zero mean: [%g, %g]", lower, upper)
	}
	if !narrow.Contains(0) {
		t.Error("Expected interval to contain the mean")
	}

	// A single sample has no dispersion to widen.
	if degenerate := confidenceInterval(2.5, 0, 1, 30); degenerate.Lower != 2.5 || degenerate.Upper != 2.5 {
		t.Errorf("Expected degenerate interval at the mean, got %+v", degenerate)
	}
}

func TestPearsonCorrelationBasics(t *testing.T) {
	x := []float64{1, 2, 3, 4}

	if r := pearsonCorrelation(x, []float64{2, 4, 6, 8}); math.Abs(r-1) > 1e-12 {
		t.Errorf("Perfect positive: expected 1, got %g", r)
	}
	if r := pearsonCorrelation(x, []float64{-1, -2, -3, -4}); math.Abs(r+1) > 1e-12 {
		t.Errorf("Perfect negative: expected -1, got %g", r)
	}
	if r := pearsonCorrelation([]float64{3, 3, 3, 3}, x); r != 0 {
		t.Errorf("Zero variance: expected 0, got %g", r)
	}
	if r := pearsonCorrelation(x, []float64{1, 2}); r != 0 {
		t.Errorf("Mismatched lengths: expected 0, got %g", r)
	}
}

func TestComputeUncertaintyFindsDominantDriver(t *testing.T) {
	cfg := scenario.DefaultSimulationConfig()
	samples := []float64{1, 2, 3, 4, 5, 6}
	draws := parameterDraws{
		scenario.ParamElasticity:  {0.1, 0.2, 0.3, 0.4, 0.5, 0.6},
		scenario.ParamAdoption:    {0.9, 0.1, 0.8, 0.2, 0.7, 0.3},
		scenario.ParamCompliance:  {0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
		scenario.ParamPassThrough: {0.6, 0.5, 0.6, 0.5, 0.6, 0.5},
	}

	metrics := computeUncertainty(samples, draws, cfg)

	if metrics.DominantDriver != scenario.ParamElasticity {
		t.Errorf("Expected elasticity dominant, got %s", metrics.DominantDriver)
	}
	if r := metrics.Sensitivity[scenario.ParamElasticity]; r < 0.999999 {
		t.Errorf("Expected perfectly aligned elasticity coefficient, got %g", r)
	}
	if r := metrics.Sensitivity[scenario.ParamCompliance]; r != 0 {
		t.Errorf("Expected zero coefficient for a pinned parameter, got %g", r)
	}
	if r := metrics.Sensitivity[scenario.ParamAdoption]; math.Abs(r+0.282495) > 1e-3 {
		t.Errorf("Adoption coefficient: expected ~-0.2825, got %g", r)
	}

	// Population standard deviation of 1..6 is sqrt(17.5/6).
	if sd := metrics.StdDeviation; math.Abs(sd-1.7078251) > 1e-4 {
		t.Errorf("Std deviation: expected ~1.7078, got %g", sd)
	}

	// Six samples sit below the normal-approximation floor, so the
	// interval uses t with 5 degrees of freedom: 3.5 +/- 2.5706 x se.
	ci := metrics.ConfidenceInterval
	if math.Abs(ci.Lower-1.70775) > 2e-3 || math.Abs(ci.Upper-5.29225) > 2e-3 {
		t.Errorf("Confidence interval drifted: [%g, %g]", ci.Lower, ci.Upper)
	}
}

func TestSummarizeDistribution(t *testing.T) {
	samples := []float64{12, 1, 20, 7, 3, 16, 9, 5, 18, 11, 2, 14, 6, 19, 10, 4, 15, 8, 17, 13}

	dist := summarize(samples)
	want := simulation.Distribution{Mean: 10.5, Median: 10.5, P5: 1, P95: 19, Min: 1, Max: 20}
	if dist != want {
		t.Errorf("Distribution mismatch:\n got %+v\nwant %+v", dist, want)
	}
}

func TestComputeIndexNormalizesAndScoresConfidence(t *testing.T) {
	cfg := scenario.DefaultSimulationConfig()

	// Zero dispersion: full confidence, value normalized by the anchor.
	idx := computeIndex([]float64{-2, -2}, 100, cfg)
	if math.Abs(idx.Value+0.02) > 1e-12 {
		t.Errorf("Value: expected -0.02, got %g", idx.Value)
	}
	if idx.Direction != simulation.DirectionNegative {
		t.Errorf("Expected negative direction, got %s", idx.Direction)
	}
	if idx.Confidence != 1 {
		t.Errorf("Expected full confidence with zero dispersion, got %g", idx.Confidence)
	}

	// Dispersion half the mean magnitude halves the confidence.
	idx = computeIndex([]float64{-1, -3}, 100, cfg)
	if math.Abs(idx.Confidence-0.5) > 1e-6 {
		t.Errorf("Expected confidence ~0.5, got %g", idx.Confidence)
	}

	// A large anchor pushes the same impact into the dead zone.
	idx = computeIndex([]float64{-2, -2}, 1000, cfg)
	if idx.Direction != simulation.DirectionNeutral {
		t.Errorf("Expected neutral inside dead zone, got %s (value %g)", idx.Direction, idx.Value)
	}

	// Dispersion swamping a zero mean floors the confidence.
	idx = computeIndex([]float64{10, -10}, 100, cfg)
	if idx.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %g", idx.Confidence)
	}
	if idx.Direction != simulation.DirectionNeutral {
		t.Errorf("Expected neutral direction at zero mean, got %s", idx.Direction)
	}
}
