package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nishasharma303/NitiVimarsh/ports"
)

// JSONRenderer emits the report as indented canonical JSON
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON report renderer
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

var _ ports.ReportRendererPort = (*JSONRenderer)(nil)

// Format returns the rendered format
func (r *JSONRenderer) Format() ports.ReportFormat {
	return ports.FormatJSON
}

// Render serializes the full report envelope
func (r *JSONRenderer) Render(ctx context.Context, report ports.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render json report: %w", err)
	}
	return data, nil
}
