package ports

import (
	"auditkit/domain/checklist"
	"auditkit/domain/scoring"
)

// AuditReport bundles everything a rendered report consumes. The report
// layer reads the same aggregates the scoring engine produces; it never
// computes its own.
type AuditReport struct {
	Summary    scoring.Summary
	Categories checklist.Collection
	Findings   []checklist.Item
	Actions    []checklist.Item
}

// ReportWriter renders an audit report into a downloadable document.
type ReportWriter interface {
	WriteReport(report AuditReport) ([]byte, error)
}
