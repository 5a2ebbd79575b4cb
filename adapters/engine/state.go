package engine

import (
	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
)

// deriveStates maps mean per-stakeholder impacts onto the baseline
// metrics through the policy's effect weights, yielding the before and
// after snapshots the report layer presents.
func deriveStates(data baseline.Data, stakeholders []graph.Stakeholder, meanImpact map[graph.Stakeholder]float64, effects map[baseline.Metric]float64) (map[graph.Stakeholder]baseline.StateMetrics, map[graph.Stakeholder]baseline.StateMetrics, error) {
	before := make(map[graph.Stakeholder]baseline.StateMetrics, len(stakeholders))
	after := make(map[graph.Stakeholder]baseline.StateMetrics, len(stakeholders))
	for _, st := range stakeholders {
		state, err := data.StateFor(st)
		if err != nil {
			return nil, nil, err
		}
		before[st] = state
		after[st] = applyImpact(state, meanImpact[st], effects)
	}
	return before, after, nil
}

// applyImpact moves each affected metric by the impact acting through
// its effect weight. Impacts are percent-scale, so a -20 impact
// through a 0.5 weight moves the metric by -10%. Metrics without an
// effect weight pass through unchanged.
func applyImpact(state baseline.StateMetrics, impact float64, effects map[baseline.Metric]float64) baseline.StateMetrics {
	next := state
	for metric, weight := range effects {
		value := state.Metric(metric)
		next = next.WithMetric(metric, value*(1+impact*weight/100))
	}
	return next
}
