// Package report renders completed analyses for human and machine
// consumption: canonical JSON, an HTML document built from a Markdown
// body, and an XLSX workbook. Renderers consume the stored run record
// as a value and never reach back into the engine.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
	"github.com/nishasharma303/NitiVimarsh/domain/simulation"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

// ForFormat returns the renderer for one output format
func ForFormat(format ports.ReportFormat) (ports.ReportRendererPort, error) {
	switch format {
	case ports.FormatJSON:
		return NewJSONRenderer(), nil
	case ports.FormatHTML:
		return NewHTMLRenderer(), nil
	case ports.FormatXLSX:
		return NewXLSXRenderer(), nil
	}
	return nil, fmt.Errorf("unsupported report format %q", format)
}

// displayName renders a stakeholder type for report surfaces
func displayName(s graph.Stakeholder) string {
	switch s {
	case graph.StakeholderMSME:
		return "MSME"
	case graph.StakeholderCitizen:
		return "Citizen"
	case graph.StakeholderFarmer:
		return "Farmer"
	case graph.StakeholderGovernment:
		return "Government"
	}
	return s.String()
}

// policyTitle renders a policy type for report headings
func policyTitle(t policy.Type) string {
	words := strings.Split(t.String(), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// explanation summarizes one stakeholder outcome in a sentence,
// attributing the outcome spread to the dominant sensitivity driver.
func explanation(s graph.Stakeholder, idx simulation.ShockIndex, unc simulation.UncertaintyMetrics) string {
	driver := unc.DominantDriver
	if driver == "" {
		driver = "none of the sampled parameters"
	}
	if idx.Direction == simulation.DirectionNeutral {
		return fmt.Sprintf("%s impact stays inside the neutral band (index %.4f, confidence %.2f); outcome spread is attributed mostly to %s.",
			displayName(s), idx.Value, idx.Confidence, driver)
	}
	return fmt.Sprintf("%s impact is %s (index %.4f, confidence %.2f); outcome spread is attributed mostly to %s.",
		displayName(s), idx.Direction, idx.Value, idx.Confidence, driver)
}

// changePercent formats the relative before/after movement of a metric
func changePercent(before, after float64) string {
	if before == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", (after-before)/before*100)
}

// buildMarkdown renders the full report body. The same body feeds the
// HTML renderer, so everything here must survive a Markdown-to-HTML
// pass, tables included.
func buildMarkdown(report ports.Report) string {
	record := report.Record
	result := record.Result
	var b strings.Builder

	fmt.Fprintf(&b, "# Policy Impact Report: %s\n\n", policyTitle(record.PolicyType))
	fmt.Fprintf(&b, "Run `%s` recorded at %s.\n\n", record.ID, record.CreatedAt)

	b.WriteString("## Policy\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Type | %s |\n", record.PolicyType)
	targets := make([]string, 0, len(report.Policy.TargetGroups))
	for _, target := range report.Policy.TargetGroups {
		targets = append(targets, target.String())
	}
	fmt.Fprintf(&b, "| Target groups | %s |\n", strings.Join(targets, ", "))
	if report.Policy.Timeline != "" {
		fmt.Fprintf(&b, "| Timeline | %s |\n", report.Policy.Timeline)
	}
	b.WriteString("\n")

	if len(report.Policy.Parameters) > 0 {
		b.WriteString("| Parameter | Value |\n|---|---|\n")
		names := make([]string, 0, len(report.Policy.Parameters))
		for name := range report.Policy.Parameters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "| %s | %g |\n", name, report.Policy.Parameters[name])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Shock Indices\n\n")
	b.WriteString("| Stakeholder | Index | Direction | Confidence |\n|---|---|---|---|\n")
	for _, s := range result.Stakeholders() {
		idx := result.Indices[s]
		fmt.Fprintf(&b, "| %s | %.4f | %s | %.2f |\n", displayName(s), idx.Value, idx.Direction, idx.Confidence)
	}
	b.WriteString("\n")
	for _, s := range result.Stakeholders() {
		fmt.Fprintf(&b, "%s\n\n", explanation(s, result.Indices[s], result.Uncertainty[s]))
	}

	b.WriteString("## Economic State\n\n")
	b.WriteString("| Stakeholder | Metric | Before | After | Change |\n|---|---|---|---|---|\n")
	for _, s := range result.Stakeholders() {
		before := result.BeforeState[s]
		after := result.AfterState[s]
		for _, metric := range baseline.AllMetrics() {
			fmt.Fprintf(&b, "| %s | %s | %.2f | %.2f | %s |\n",
				displayName(s), metric, before.Metric(metric), after.Metric(metric),
				changePercent(before.Metric(metric), after.Metric(metric)))
		}
	}
	b.WriteString("\n")

	b.WriteString("## Uncertainty\n\n")
	b.WriteString("| Stakeholder | Std Dev | 95% CI | Dominant driver |\n|---|---|---|---|\n")
	for _, s := range result.Stakeholders() {
		unc := result.Uncertainty[s]
		fmt.Fprintf(&b, "| %s | %.4f | [%.4f, %.4f] | %s |\n",
			displayName(s), unc.StdDeviation, unc.ConfidenceInterval.Lower, unc.ConfidenceInterval.Upper, unc.DominantDriver)
	}
	b.WriteString("\n")

	b.WriteString("| Stakeholder | " + strings.Join(scenario.ParameterNames(), " | ") + " |\n")
	b.WriteString("|---|" + strings.Repeat("---|", len(scenario.ParameterNames())) + "\n")
	for _, s := range result.Stakeholders() {
		unc := result.Uncertainty[s]
		fmt.Fprintf(&b, "| %s |", displayName(s))
		for _, name := range scenario.ParameterNames() {
			fmt.Fprintf(&b, " %.4f |", unc.Sensitivity[name])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("## Sample Distributions\n\n")
	b.WriteString("| Stakeholder | Mean | Median | P5 | P95 | Min | Max |\n|---|---|---|---|---|---|---|\n")
	for _, s := range result.Stakeholders() {
		d := result.Samples[s]
		fmt.Fprintf(&b, "| %s | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			displayName(s), d.Mean, d.Median, d.P5, d.P95, d.Min, d.Max)
	}
	b.WriteString("\n")

	b.WriteString("## Run Metadata\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Seed | %d |\n", result.Metadata.Seed)
	fmt.Fprintf(&b, "| Iterations | %d requested, %d aggregated, %d discarded |\n",
		result.Metadata.Requested, result.Metadata.Aggregated, result.Metadata.Discarded)
	fmt.Fprintf(&b, "| Hop limit | %d |\n", result.Metadata.HopLimit)
	fmt.Fprintf(&b, "| Fingerprint | `%s` |\n", result.Metadata.Fingerprint)
	fmt.Fprintf(&b, "| Graph hash | `%s` |\n", record.GraphHash)
	b.WriteString("\n")

	if len(report.Findings) > 0 {
		b.WriteString("## Structural Findings\n\n")
		b.WriteString("Advisory observations from graph validation; none of these block simulation.\n\n")
		for _, finding := range report.Findings {
			fmt.Fprintf(&b, "- %s\n", finding.Message)
		}
		b.WriteString("\n")
	}

	return b.String()
}
