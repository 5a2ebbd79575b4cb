package ports

import (
	"context"

	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
)

// ReportFormat identifies an output rendering
type ReportFormat string

const (
	FormatJSON ReportFormat = "json"
	FormatHTML ReportFormat = "html"
	FormatXLSX ReportFormat = "xlsx"
)

// Report is the renderable view of one completed analysis: the stored
// run plus the policy description and any advisory graph findings.
type Report struct {
	Record   RunRecord        `json:"record"`
	Policy   policy.Variables `json:"policy"`
	Findings []graph.Finding  `json:"findings,omitempty"`
}

// ReportRendererPort renders a completed analysis into one output format
type ReportRendererPort interface {
	Format() ReportFormat
	Render(ctx context.Context, report Report) ([]byte, error)
}
