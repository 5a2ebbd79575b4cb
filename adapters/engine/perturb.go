package engine

import (
	"math"
	"math/rand"

	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
)

// maxTruncationAttempts bounds rejection sampling before clamping
const maxTruncationAttempts = 10

// perturb draws one perturbed parameter set centered on the configured
// scenario. Rate parameters stay inside [0, 1] and elasticity stays
// nonnegative. Draw order is fixed (elasticity, adoption, compliance,
// pass-through) so a given iteration stream always yields the same set.
func perturb(base scenario.Parameters, cfg scenario.SimulationConfig, rng *rand.Rand) scenario.Parameters {
	p := base
	sigma := cfg.PerturbationScale
	p.Elasticity = truncatedNormal(rng, base.Elasticity, sigma*cfg.ElasticitySpread*base.Elasticity, 0, math.Inf(1))
	p.AdoptionRate = truncatedNormal(rng, base.AdoptionRate, sigma*base.AdoptionRate, 0, 1)
	p.ComplianceRate = truncatedNormal(rng, base.ComplianceRate, sigma*base.ComplianceRate, 0, 1)
	p.PassThroughRate = truncatedNormal(rng, base.PassThroughRate, sigma*base.PassThroughRate, 0, 1)
	return p
}

// truncatedNormal samples normal(center, sigma) restricted to [lo, hi]
// by rejection, clamping the final draw if no attempt lands inside.
// A zero sigma pins the draw to the center, so a parameter configured
// at zero never wanders away from it.
func truncatedNormal(rng *rand.Rand, center, sigma, lo, hi float64) float64 {
	if sigma == 0 {
		return clamp(center, lo, hi)
	}
	v := center
	for i := 0; i < maxTruncationAttempts; i++ {
		v = center + rng.NormFloat64()*sigma
		if v >= lo && v <= hi {
			return v
		}
	}
	return clamp(v, lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
