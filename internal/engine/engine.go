package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
	"github.com/nguyentantai21042004/chat-notes/internal/reconciler"
)

const skippedVideoContent = "[Video file - processing skipped]"

// terminal is the final state of one media message. Every terminal
// increments exactly one counter.
type terminal int

const (
	terminalDescribed terminal = iota
	terminalFailed
	terminalUnresolved
	terminalSkipped
)

type itemResult struct {
	message  domain.Message
	terminal terminal
	category domain.MediaCategory
	note     string // error summary for failed terminals
}

func (e *implEngine) Enhance(ctx context.Context, messages []domain.Message, assets map[string]domain.MediaAsset) ([]domain.Message, *domain.ProcessingStats) {
	stats := &domain.ProcessingStats{TotalMessages: len(messages)}

	rec := reconciler.Reconcile(messages, assets)
	stats.MediaMessages = rec.Found + rec.Missing
	stats.ResolvedMedia = rec.Found

	// Output is indexed by position, so emission order equals input
	// order no matter how processing interleaves.
	out := make([]domain.Message, len(messages))
	copy(out, messages)

	var mediaIdx []int
	for i, msg := range messages {
		if msg.Kind == domain.KindMedia {
			mediaIdx = append(mediaIdx, i)
		}
	}
	if len(mediaIdx) == 0 {
		return out, stats
	}

	e.logger.Info(ctx, "Processing %d media messages (%d resolved)", len(mediaIdx), rec.Found)

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		sem  = make(chan struct{}, e.workers)
		done int
	)

	for _, idx := range mediaIdx {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			msg := messages[i]
			res := e.enhanceOne(ctx, msg, rec.Refs[msg.MediaRef])
			out[i] = res.message

			mu.Lock()
			e.record(stats, res)
			done++
			e.progress.Step(ctx, progressNote(res, msg), done, len(mediaIdx))
			mu.Unlock()
		}(idx)
	}
	wg.Wait()

	e.logger.Info(ctx, "Media processing complete: %d successful, %d failed, %d skipped",
		stats.ProcessedMedia, stats.FailedMedia, stats.SkippedVideos)

	return out, stats
}

// enhanceOne runs one media message to a terminal state. Failures keep
// the original message untouched: a degraded line is still a line.
func (e *implEngine) enhanceOne(ctx context.Context, msg domain.Message, ref domain.ReconciledReference) itemResult {
	if !ref.Found() {
		return itemResult{
			message:  msg,
			terminal: terminalUnresolved,
			note:     fmt.Sprintf("media file not found: %s", msg.MediaRef),
		}
	}

	asset := *ref.Asset

	var outcome domain.Outcome
	switch asset.Category {
	case domain.CategoryVideo:
		// Video processing is out of scope by design, not a failure.
		return itemResult{
			message:  replaced(msg, skippedVideoContent),
			terminal: terminalSkipped,
			category: asset.Category,
		}
	case domain.CategoryImage:
		outcome = e.gateway.DescribeImage(ctx, asset)
	case domain.CategoryAudio:
		outcome = e.gateway.TranscribeAudio(ctx, asset)
	default:
		outcome = domain.Fail(domain.ReasonUnsupported,
			fmt.Sprintf("no description capability for category %s", asset.Category), 0)
	}

	if !outcome.OK {
		return itemResult{
			message:  msg,
			terminal: terminalFailed,
			category: asset.Category,
			note:     fmt.Sprintf("failed to process %s: %s", asset.Name, outcome.Detail),
		}
	}

	e.logger.Debug(ctx, "%s described by %s in %s", asset.Name, outcome.Backend, outcome.Elapsed)
	return itemResult{
		message:  replaced(msg, describedContent(asset.Category, outcome.Text)),
		terminal: terminalDescribed,
		category: asset.Category,
	}
}

// record applies exactly one counter per terminal state.
func (e *implEngine) record(stats *domain.ProcessingStats, res itemResult) {
	switch res.terminal {
	case terminalDescribed:
		stats.ProcessedMedia++
		switch res.category {
		case domain.CategoryImage:
			stats.ImagesProcessed++
		case domain.CategoryAudio:
			stats.AudioProcessed++
		}
	case terminalSkipped:
		stats.SkippedVideos++
	default:
		stats.FailedMedia++
		stats.AddError(res.note)
	}
}

// replaced derives the enhanced message: same sequence position and
// metadata, new content, media reference cleared.
func replaced(msg domain.Message, content string) domain.Message {
	return domain.Message{
		Seq:       msg.Seq,
		Timestamp: msg.Timestamp,
		Sender:    msg.Sender,
		Content:   content,
		Kind:      domain.KindText,
	}
}

func describedContent(category domain.MediaCategory, text string) string {
	switch category {
	case domain.CategoryImage:
		return "This is an image: " + text
	case domain.CategoryAudio:
		return "Voice note: " + text
	default:
		return "Media file: " + text
	}
}

func progressNote(res itemResult, msg domain.Message) string {
	switch res.terminal {
	case terminalDescribed:
		return fmt.Sprintf("Processed %s", msg.MediaRef)
	case terminalSkipped:
		return fmt.Sprintf("Skipped video %s", msg.MediaRef)
	default:
		return res.note
	}
}
