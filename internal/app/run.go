package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
	"github.com/nguyentantai21042004/chat-notes/internal/report"
)

func (s *implService) Run(ctx context.Context, path string, from, to *time.Time) (*ExportSummary, error) {
	start := time.Now()
	runID := uuid.NewString()[:8]
	exportName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	s.logger.Info(ctx, "Starting run %s: %s", runID, path)

	dir := path
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		extracted, cleanup, err := extractExport(path, s.cfg.Paths.Temp)
		if err != nil {
			return nil, fmt.Errorf("extracting export: %w", err)
		}
		defer cleanup()
		dir = extracted
	}

	if err := os.MkdirAll(s.cfg.Paths.Output, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	// Structural failures abort the run; everything after this point
	// degrades per message or per media item.
	transcript, err := s.catalog.LocateTranscript(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("locating transcript: %w", err)
	}
	s.logger.Info(ctx, "Found transcript: %s", filepath.Base(transcript))

	assets, err := s.catalog.Scan(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("scanning media: %w", err)
	}

	messages, err := s.parser.ParseFile(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("parsing transcript: %w", err)
	}

	// Narrow before enhancement so out-of-range media never costs a
	// backend call.
	if from != nil || to != nil {
		messages = domain.FilterByTime(messages, from, to)
	}

	enhanced, stats := s.engine.Enhance(ctx, messages, assets)
	stats.ProcessingTime = time.Since(start)

	summary := &ExportSummary{
		RunID:       runID,
		ExportName:  exportName,
		ProcessedAt: start,
		Stats:       stats,
	}

	if err := s.writeArtifacts(ctx, summary, enhanced); err != nil {
		return nil, err
	}

	s.logFinalStats(ctx, summary)
	return summary, nil
}

func (s *implService) writeArtifacts(ctx context.Context, summary *ExportSummary, enhanced []domain.Message) error {
	outDir := s.cfg.Paths.Output

	transcriptPath := filepath.Join(outDir, fmt.Sprintf("enhanced_chat_%s.txt", summary.RunID))
	f, err := os.Create(transcriptPath)
	if err != nil {
		return fmt.Errorf("create enhanced transcript: %w", err)
	}
	if err := s.renderer.Render(f, enhanced, summary.Stats); err != nil {
		f.Close()
		return fmt.Errorf("render enhanced transcript: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close enhanced transcript: %w", err)
	}
	summary.TranscriptPath = transcriptPath
	s.logger.Info(ctx, "Enhanced transcript saved: %s", transcriptPath)

	summaryPath := filepath.Join(outDir, fmt.Sprintf("summary_%s.json", summary.RunID))
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(summaryPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	summary.SummaryPath = summaryPath

	// The docx report is a convenience artifact; its failure does not
	// fail the run.
	reportPath := filepath.Join(outDir, fmt.Sprintf("report_%s.docx", summary.RunID))
	if err := report.WriteDocx(reportPath, summary.ExportName, summary.RunID, summary.Stats); err != nil {
		s.logger.Warn(ctx, "Failed to write report: %v", err)
	} else {
		summary.ReportPath = reportPath
	}

	return nil
}

func (s *implService) logFinalStats(ctx context.Context, summary *ExportSummary) {
	stats := summary.Stats
	s.logger.Info(ctx, "Run %s completed in %.2fs", summary.RunID, stats.ProcessingTime.Seconds())
	s.logger.Info(ctx, "Total messages: %d", stats.TotalMessages)
	s.logger.Info(ctx, "Media messages: %d (resolved %d)", stats.MediaMessages, stats.ResolvedMedia)
	s.logger.Info(ctx, "Processed: %d, failed: %d, videos skipped: %d",
		stats.ProcessedMedia, stats.FailedMedia, stats.SkippedVideos)
	s.logger.Info(ctx, "Success rate: %.1f%%", stats.SuccessRate())

	if len(stats.Errors) > 0 {
		s.logger.Warn(ctx, "Errors encountered: %d", len(stats.Errors))
		for _, e := range stats.FirstErrors(5) {
			s.logger.Warn(ctx, "  - %s", e)
		}
		if extra := len(stats.Errors) - 5; extra > 0 {
			s.logger.Warn(ctx, "  ... and %d more errors", extra)
		}
	}
}
