// Package excel renders the audit report as an XLSX workbook. It consumes
// the aggregates the scoring engine already produced; nothing is recomputed
// here.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"auditkit/domain/checklist"
	"auditkit/ports"
)

const (
	summarySheet  = "Summary"
	findingsSheet = "Findings"
)

// ReportWriter implements ports.ReportWriter using excelize.
type ReportWriter struct{}

// NewReportWriter creates an XLSX report writer.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

var _ ports.ReportWriter = (*ReportWriter)(nil)

// WriteReport renders the report into XLSX bytes.
func (w *ReportWriter) WriteReport(report ports.AuditReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummary(f, report); err != nil {
		return nil, fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := w.writeFindings(f, report.Findings); err != nil {
		return nil, fmt.Errorf("failed to write findings sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *ReportWriter) writeSummary(f *excelize.File, report ports.AuditReport) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Overall Conformance (%)", report.Summary.Overall},
		{"Controls Audited", fmt.Sprintf("%d of %d", report.Summary.AuditedItems, report.Summary.TotalItems)},
	}
	if report.Summary.Baseline != nil {
		rows = append(rows, []interface{}{"Baseline (%)", report.Summary.Baseline.Overall})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Theme", "Conformance (%)", "Baseline (%)"})

	for _, cat := range report.Categories {
		row := []interface{}{cat.Title, report.Summary.Themes[cat.ID]}
		if report.Summary.Baseline != nil {
			if pct, ok := report.Summary.Baseline.Themes[cat.ID]; ok {
				row = append(row, pct)
			}
		}
		rows = append(rows, row)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeFindings(f *excelize.File, findings []checklist.Item) error {
	if _, err := f.NewSheet(findingsSheet); err != nil {
		return err
	}

	header := []interface{}{"Control", "Status", "Recommendation", "Auditor Notes"}
	if err := f.SetSheetRow(findingsSheet, "A1", &header); err != nil {
		return err
	}
	for i, item := range findings {
		row := []interface{}{item.Security, string(item.Status), item.Details, item.Evidence}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(findingsSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
