package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/chat-notes/internal/config"
	"github.com/nguyentantai21042004/chat-notes/internal/domain"
	"github.com/nguyentantai21042004/chat-notes/internal/logger"
)

// stubGateway answers by asset name so tests can script mixed results.
type stubGateway struct {
	mu       sync.Mutex
	outcomes map[string]domain.Outcome
	calls    []string
}

func (s *stubGateway) DescribeImage(ctx context.Context, asset domain.MediaAsset) domain.Outcome {
	return s.answer(asset)
}

func (s *stubGateway) TranscribeAudio(ctx context.Context, asset domain.MediaAsset) domain.Outcome {
	return s.answer(asset)
}

func (s *stubGateway) answer(asset domain.MediaAsset) domain.Outcome {
	s.mu.Lock()
	s.calls = append(s.calls, asset.Name)
	s.mu.Unlock()

	if o, ok := s.outcomes[asset.Name]; ok {
		return o
	}
	return domain.Succeed("described "+asset.Name, "stub", time.Millisecond)
}

func newTestEngine(t *testing.T, gw *stubGateway, workers int) Engine {
	t.Helper()
	cfg := &config.Config{Performance: config.PerformanceConfig{MaxConcurrent: workers}}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return New(cfg, gw, logger.New("error"), nil)
}

func textMsg(seq int, content string) domain.Message {
	return domain.Message{Seq: seq, Kind: domain.KindText, Content: content, Sender: "Alice"}
}

func mediaMsg(seq int, ref string) domain.Message {
	return domain.Message{Seq: seq, Kind: domain.KindMedia, MediaRef: ref, Content: ref + " (file attached)", Sender: "Bob"}
}

func mediaAssets(entries ...domain.MediaAsset) map[string]domain.MediaAsset {
	m := make(map[string]domain.MediaAsset)
	for _, a := range entries {
		m[a.Name] = a
	}
	return m
}

func imgAsset(name string) domain.MediaAsset {
	return domain.MediaAsset{Name: name, Category: domain.CategoryImage, Extension: ".jpg", SizeBytes: 100}
}

func audAsset(name string) domain.MediaAsset {
	return domain.MediaAsset{Name: name, Category: domain.CategoryAudio, Extension: ".opus", SizeBytes: 100}
}

func vidAsset(name string) domain.MediaAsset {
	return domain.MediaAsset{Name: name, Category: domain.CategoryVideo, Extension: ".mp4", SizeBytes: 100}
}

func TestEnhanceReplacesMedia(t *testing.T) {
	messages := []domain.Message{
		textMsg(0, "look at this"),
		mediaMsg(1, "IMG-001.jpg"),
		mediaMsg(2, "PTT-001.opus"),
	}
	gw := &stubGateway{}
	e := newTestEngine(t, gw, 1)

	out, stats := e.Enhance(context.Background(), messages, mediaAssets(
		imgAsset("IMG-001.jpg"), audAsset("PTT-001.opus"),
	))

	if len(out) != 3 {
		t.Fatalf("got %d messages, want 3", len(out))
	}
	if out[0].Content != "look at this" {
		t.Errorf("text message changed: %q", out[0].Content)
	}
	if want := "described IMG-001.jpg"; !strings.Contains(out[1].Content, want) {
		t.Errorf("image content = %q, want substring %q", out[1].Content, want)
	}
	if out[1].Kind != domain.KindText {
		t.Errorf("enhanced message Kind = %v, want KindText", out[1].Kind)
	}
	if out[1].MediaRef != "" {
		t.Errorf("MediaRef = %q, want cleared", out[1].MediaRef)
	}
	if out[1].Sender != "Bob" {
		t.Errorf("Sender = %q, want preserved", out[1].Sender)
	}

	if stats.ProcessedMedia != 2 || stats.ImagesProcessed != 1 || stats.AudioProcessed != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestEnhanceContentPrefixes(t *testing.T) {
	messages := []domain.Message{
		mediaMsg(0, "IMG-001.jpg"),
		mediaMsg(1, "PTT-001.opus"),
	}
	gw := &stubGateway{outcomes: map[string]domain.Outcome{
		"IMG-001.jpg":  domain.Succeed("a sunset", "stub", 0),
		"PTT-001.opus": domain.Succeed("hello world", "stub", 0),
	}}
	e := newTestEngine(t, gw, 1)

	out, _ := e.Enhance(context.Background(), messages, mediaAssets(
		imgAsset("IMG-001.jpg"), audAsset("PTT-001.opus"),
	))

	if out[0].Content != "This is an image: a sunset" {
		t.Errorf("image content = %q", out[0].Content)
	}
	if out[1].Content != "Voice note: hello world" {
		t.Errorf("audio content = %q", out[1].Content)
	}
}

func TestEnhanceSkipsVideo(t *testing.T) {
	messages := []domain.Message{mediaMsg(0, "VID-001.mp4")}
	gw := &stubGateway{}
	e := newTestEngine(t, gw, 1)

	out, stats := e.Enhance(context.Background(), messages, mediaAssets(vidAsset("VID-001.mp4")))

	if out[0].Content != "[Video file - processing skipped]" {
		t.Errorf("content = %q", out[0].Content)
	}
	if stats.SkippedVideos != 1 {
		t.Errorf("SkippedVideos = %d, want 1", stats.SkippedVideos)
	}
	if stats.FailedMedia != 0 || stats.ProcessedMedia != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if len(gw.calls) != 0 {
		t.Errorf("gateway called %d times for a video, want 0", len(gw.calls))
	}
}

func TestEnhanceUnresolvedMedia(t *testing.T) {
	messages := []domain.Message{mediaMsg(0, "gone.jpg")}
	gw := &stubGateway{}
	e := newTestEngine(t, gw, 1)

	out, stats := e.Enhance(context.Background(), messages, nil)

	// The original line survives untouched.
	if out[0].Content != "gone.jpg (file attached)" {
		t.Errorf("content = %q", out[0].Content)
	}
	if stats.FailedMedia != 1 {
		t.Errorf("FailedMedia = %d, want 1", stats.FailedMedia)
	}
	if len(stats.Errors) != 1 || !strings.Contains(stats.Errors[0], "gone.jpg") {
		t.Errorf("Errors = %v", stats.Errors)
	}
	if len(gw.calls) != 0 {
		t.Errorf("gateway called for unresolved media")
	}
}

func TestEnhanceFailureKeepsOriginal(t *testing.T) {
	messages := []domain.Message{mediaMsg(0, "IMG-001.jpg")}
	gw := &stubGateway{outcomes: map[string]domain.Outcome{
		"IMG-001.jpg": domain.Fail(domain.ReasonTransient, "backend down", 0),
	}}
	e := newTestEngine(t, gw, 1)

	out, stats := e.Enhance(context.Background(), messages, mediaAssets(imgAsset("IMG-001.jpg")))

	if out[0].Content != "IMG-001.jpg (file attached)" {
		t.Errorf("content = %q, want original preserved", out[0].Content)
	}
	if out[0].Kind != domain.KindMedia {
		t.Errorf("Kind = %v, want KindMedia preserved", out[0].Kind)
	}
	if stats.FailedMedia != 1 {
		t.Errorf("FailedMedia = %d, want 1", stats.FailedMedia)
	}
}

func TestEnhanceCounterInvariant(t *testing.T) {
	// processed + failed + skipped must equal the media message count,
	// whatever mix of terminals the run produces.
	messages := []domain.Message{
		textMsg(0, "hi"),
		mediaMsg(1, "IMG-001.jpg"),  // succeeds
		mediaMsg(2, "IMG-002.jpg"),  // fails
		mediaMsg(3, "VID-001.mp4"),  // skipped
		mediaMsg(4, "gone.opus"),    // unresolved
		mediaMsg(5, "PTT-001.opus"), // succeeds
	}
	gw := &stubGateway{outcomes: map[string]domain.Outcome{
		"IMG-002.jpg": domain.Fail(domain.ReasonTooLarge, "too big", 0),
	}}
	e := newTestEngine(t, gw, 2)

	_, stats := e.Enhance(context.Background(), messages, mediaAssets(
		imgAsset("IMG-001.jpg"), imgAsset("IMG-002.jpg"),
		vidAsset("VID-001.mp4"), audAsset("PTT-001.opus"),
	))

	if stats.MediaMessages != 5 {
		t.Errorf("MediaMessages = %d, want 5", stats.MediaMessages)
	}
	if stats.ResolvedMedia != 4 {
		t.Errorf("ResolvedMedia = %d, want 4", stats.ResolvedMedia)
	}
	sum := stats.ProcessedMedia + stats.FailedMedia + stats.SkippedVideos
	if sum != stats.MediaMessages {
		t.Errorf("processed+failed+skipped = %d, want %d", sum, stats.MediaMessages)
	}
	if stats.ProcessedMedia != 2 || stats.FailedMedia != 2 || stats.SkippedVideos != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestEnhanceOrderPreservedConcurrently(t *testing.T) {
	var messages []domain.Message
	assets := make(map[string]domain.MediaAsset)
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("IMG-%03d.jpg", i)
		messages = append(messages, mediaMsg(i, name))
		assets[name] = imgAsset(name)
	}

	gw := &stubGateway{}
	e := newTestEngine(t, gw, 8)

	out, stats := e.Enhance(context.Background(), messages, assets)

	if stats.ProcessedMedia != 40 {
		t.Fatalf("ProcessedMedia = %d, want 40", stats.ProcessedMedia)
	}
	for i, m := range out {
		want := fmt.Sprintf("This is an image: described IMG-%03d.jpg", i)
		if m.Content != want {
			t.Errorf("out[%d].Content = %q, want %q", i, m.Content, want)
		}
		if m.Seq != i {
			t.Errorf("out[%d].Seq = %d", i, m.Seq)
		}
	}
}

func TestEnhanceNoMedia(t *testing.T) {
	messages := []domain.Message{textMsg(0, "just text")}
	gw := &stubGateway{}
	e := newTestEngine(t, gw, 1)

	out, stats := e.Enhance(context.Background(), messages, nil)

	if len(out) != 1 || out[0].Content != "just text" {
		t.Errorf("out = %+v", out)
	}
	if stats.TotalMessages != 1 || stats.MediaMessages != 0 {
		t.Errorf("stats = %+v", stats)
	}
}
