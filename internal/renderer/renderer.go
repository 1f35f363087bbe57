// Package renderer writes the enhanced transcript: one line per message,
// in original sequence order.
package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

const timestampLayout = "2006-01-02 15:04"

// Renderer writes an enhanced message sequence to an output.
type Renderer interface {
	Render(w io.Writer, messages []domain.Message, stats *domain.ProcessingStats) error
}

type implRenderer struct {
	header bool
	now    func() time.Time
}

// New creates a Renderer that prepends a commented header block.
func New() Renderer {
	return &implRenderer{header: true, now: time.Now}
}

func (r *implRenderer) Render(w io.Writer, messages []domain.Message, stats *domain.ProcessingStats) error {
	if r.header {
		if err := r.writeHeader(w, stats); err != nil {
			return err
		}
	}

	for i := range messages {
		if _, err := fmt.Fprintln(w, formatMessage(&messages[i])); err != nil {
			return fmt.Errorf("write message %d: %w", i, err)
		}
	}
	return nil
}

func (r *implRenderer) writeHeader(w io.Writer, stats *domain.ProcessingStats) error {
	lines := []string{
		"# Enhanced WhatsApp Chat Export",
		"# Generated by chat-notes",
		fmt.Sprintf("# Processing completed: %s", r.now().Format("2006-01-02 15:04:05")),
		fmt.Sprintf("# Total messages: %d", stats.TotalMessages),
		fmt.Sprintf("# Media processed: %d", stats.ProcessedMedia),
		fmt.Sprintf("# Processing time: %.2fs", stats.ProcessingTime.Seconds()),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	return nil
}

func formatMessage(msg *domain.Message) string {
	ts := msg.Timestamp.Format(timestampLayout)
	if msg.Sender == "" {
		return fmt.Sprintf("[%s] %s", ts, msg.Content)
	}
	return fmt.Sprintf("[%s] %s: %s", ts, msg.Sender, msg.Content)
}
