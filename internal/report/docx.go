// Package report renders the per-run processing report as a docx.
package report

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

const (
	fontName = "Calibri"
	fontSize = 11

	// Only the first few error summaries make the report; a broadly
	// failed run should not produce a hundred-page error dump.
	maxReportedErrors = 5
)

// WriteDocx writes the processing report for one run.
func WriteDocx(path, exportName, runID string, stats *domain.ProcessingStats) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addHeading(doc, "Chat Processing Report", 16)
	addLine(doc, fmt.Sprintf("Export: %s", exportName))
	addLine(doc, fmt.Sprintf("Run: %s", runID))
	addLine(doc, "")

	addHeading(doc, "Statistics", 13)
	addLine(doc, fmt.Sprintf("Total messages: %d", stats.TotalMessages))
	addLine(doc, fmt.Sprintf("Media messages: %d", stats.MediaMessages))
	addLine(doc, fmt.Sprintf("Resolved media: %d", stats.ResolvedMedia))
	addLine(doc, fmt.Sprintf("Successfully processed: %d", stats.ProcessedMedia))
	addLine(doc, fmt.Sprintf("Failed: %d", stats.FailedMedia))
	addLine(doc, fmt.Sprintf("Videos skipped: %d", stats.SkippedVideos))
	addLine(doc, fmt.Sprintf("Images described: %d", stats.ImagesProcessed))
	addLine(doc, fmt.Sprintf("Audio transcribed: %d", stats.AudioProcessed))
	addLine(doc, fmt.Sprintf("Success rate: %.1f%%", stats.SuccessRate()))
	addLine(doc, fmt.Sprintf("Processing time: %.2fs", stats.ProcessingTime.Seconds()))

	if len(stats.Errors) > 0 {
		addLine(doc, "")
		addHeading(doc, "Errors", 13)
		for _, e := range stats.FirstErrors(maxReportedErrors) {
			addLine(doc, "• "+e)
		}
		if extra := len(stats.Errors) - maxReportedErrors; extra > 0 {
			addLine(doc, fmt.Sprintf("… and %d more", extra))
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func addHeading(doc *docx.RootDoc, text string, size uint64) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(size).Color("000000").Bold(true)
}

func addLine(doc *docx.RootDoc, text string) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
}
