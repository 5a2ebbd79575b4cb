package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

// Workbook sheet names, in tab order
const (
	sheetIndices     = "Shock Indices"
	sheetState       = "State Metrics"
	sheetUncertainty = "Uncertainty"
	sheetMetadata    = "Metadata"
)

// XLSXRenderer emits the report as a four-sheet workbook
type XLSXRenderer struct{}

// NewXLSXRenderer creates an XLSX report renderer
func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

var _ ports.ReportRendererPort = (*XLSXRenderer)(nil)

// Format returns the rendered format
func (r *XLSXRenderer) Format() ports.ReportFormat {
	return ports.FormatXLSX
}

// Render builds the workbook in memory
func (r *XLSXRenderer) Render(ctx context.Context, report ports.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range []string{sheetIndices, sheetState, sheetUncertainty, sheetMetadata} {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	if err := writeSheet(f, sheetIndices, indicesRows(report)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, sheetState, stateRows(report)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, sheetUncertainty, uncertaintyRows(report)); err != nil {
		return nil, err
	}
	if err := writeSheet(f, sheetMetadata, metadataRows(report)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx report: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet fills one sheet from a header row plus data rows
func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func indicesRows(report ports.Report) [][]interface{} {
	result := report.Record.Result
	rows := [][]interface{}{
		{"Stakeholder", "Index Value", "Direction", "Confidence"},
	}
	for _, s := range result.Stakeholders() {
		idx := result.Indices[s]
		rows = append(rows, []interface{}{displayName(s), idx.Value, string(idx.Direction), idx.Confidence})
	}
	return rows
}

func stateRows(report ports.Report) [][]interface{} {
	result := report.Record.Result
	rows := [][]interface{}{
		{"Stakeholder", "Metric", "Before", "After", "Change"},
	}
	for _, s := range result.Stakeholders() {
		before := result.BeforeState[s]
		after := result.AfterState[s]
		for _, metric := range baseline.AllMetrics() {
			rows = append(rows, []interface{}{
				displayName(s), metric.String(),
				before.Metric(metric), after.Metric(metric),
				changePercent(before.Metric(metric), after.Metric(metric)),
			})
		}
	}
	return rows
}

func uncertaintyRows(report ports.Report) [][]interface{} {
	result := report.Record.Result
	header := []interface{}{"Stakeholder", "Std Deviation", "CI Lower", "CI Upper", "Dominant Driver"}
	for _, name := range scenario.ParameterNames() {
		header = append(header, "Sensitivity: "+name)
	}
	header = append(header, "Mean", "Median", "P5", "P95", "Min", "Max")

	rows := [][]interface{}{header}
	for _, s := range result.Stakeholders() {
		unc := result.Uncertainty[s]
		dist := result.Samples[s]
		row := []interface{}{
			displayName(s), unc.StdDeviation,
			unc.ConfidenceInterval.Lower, unc.ConfidenceInterval.Upper,
			unc.DominantDriver,
		}
		for _, name := range scenario.ParameterNames() {
			row = append(row, unc.Sensitivity[name])
		}
		row = append(row, dist.Mean, dist.Median, dist.P5, dist.P95, dist.Min, dist.Max)
		rows = append(rows, row)
	}
	return rows
}

func metadataRows(report ports.Report) [][]interface{} {
	record := report.Record
	meta := record.Result.Metadata
	rows := [][]interface{}{
		{"Field", "Value"},
		{"Run ID", record.ID.String()},
		{"Policy Type", record.PolicyType.String()},
		{"Created At", record.CreatedAt.String()},
		{"Seed", meta.Seed},
		{"Requested Iterations", meta.Requested},
		{"Aggregated Iterations", meta.Aggregated},
		{"Discarded Iterations", meta.Discarded},
		{"Hop Limit", meta.HopLimit},
		{"Fingerprint", meta.Fingerprint.String()},
		{"Graph Hash", record.GraphHash.String()},
	}
	for _, finding := range report.Findings {
		rows = append(rows, []interface{}{"Finding", finding.Message})
	}
	return rows
}
