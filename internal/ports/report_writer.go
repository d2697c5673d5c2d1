package ports

import "github.com/guimsilvaa/topufa/internal/domain"

// ReportWriter persists the pipeline artifacts as flat files.
type ReportWriter interface {
	WriteReports(report domain.Report) (domain.ReportFiles, error)
}
