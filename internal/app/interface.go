package app

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

// Service runs the full pipeline for one export:
// discover -> parse -> reconcile -> enhance -> render.
type Service interface {
	// Run processes the export at path, which may be a directory or a
	// .zip archive. from/to optionally narrow the message range before
	// enhancement; nil means unbounded.
	Run(ctx context.Context, path string, from, to *time.Time) (*ExportSummary, error)
}

// ExportSummary is the structured result of one run, for downstream
// collaborators such as report generators.
type ExportSummary struct {
	RunID          string                  `json:"run_id"`
	ExportName     string                  `json:"export_name"`
	ProcessedAt    time.Time               `json:"processed_at"`
	Stats          *domain.ProcessingStats `json:"stats"`
	TranscriptPath string                  `json:"transcript_path"`
	SummaryPath    string                  `json:"summary_path"`
	ReportPath     string                  `json:"report_path,omitempty"`
}
