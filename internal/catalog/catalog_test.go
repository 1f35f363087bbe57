package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
	"github.com/nguyentantai21042004/chat-notes/internal/logger"
)

func newTestCatalog() Catalog {
	return New(logger.New("error"))
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanClassification(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		category domain.MediaCategory
	}{
		{"jpeg image", "IMG-001.jpg", domain.CategoryImage},
		{"png image", "screenshot.PNG", domain.CategoryImage},
		{"opus voice note", "PTT-20240312-WA0000.opus", domain.CategoryAudio},
		{"mp3 audio", "song.mp3", domain.CategoryAudio},
		{"mp4 video", "VID-001.mp4", domain.CategoryVideo},
		{"pdf document", "invoice.pdf", domain.CategoryDocument},
	}

	c := newTestCatalog()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.file)

			assets, err := c.Scan(context.Background(), dir)
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			asset, ok := assets[tt.file]
			if !ok {
				t.Fatalf("asset %q not indexed", tt.file)
			}
			if asset.Category != tt.category {
				t.Errorf("Category = %v, want %v", asset.Category, tt.category)
			}
		})
	}
}

func TestScanSkipsNonMedia(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "chat.txt", ".hidden.jpg", "notes.xyz", "IMG-001.jpg")
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o750); err != nil {
		t.Fatal(err)
	}

	assets, err := newTestCatalog().Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(assets) != 1 {
		t.Errorf("got %d assets, want 1: %v", len(assets), assets)
	}
	if _, ok := assets["IMG-001.jpg"]; !ok {
		t.Error("IMG-001.jpg not indexed")
	}
}

func TestScanRecordsSize(t *testing.T) {
	dir := t.TempDir()
	data := make([]byte, 2048)
	if err := os.WriteFile(filepath.Join(dir, "IMG-001.jpg"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	assets, err := newTestCatalog().Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if got := assets["IMG-001.jpg"].SizeBytes; got != 2048 {
		t.Errorf("SizeBytes = %d, want 2048", got)
	}
	if got := assets["IMG-001.jpg"].Extension; got != ".jpg" {
		t.Errorf("Extension = %q, want .jpg", got)
	}
}

func TestScanDirectoryErrors(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()

	_, err := c.Scan(ctx, filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Scan(missing) error = %v, want ErrNotFound", err)
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = c.Scan(ctx, file)
	if !errors.Is(err, domain.ErrNotADirectory) {
		t.Errorf("Scan(file) error = %v, want ErrNotADirectory", err)
	}
}

func TestLocateTranscriptByName(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "aaa.txt", "WhatsApp Chat with Alice.txt")

	path, err := newTestCatalog().LocateTranscript(context.Background(), dir)
	if err != nil {
		t.Fatalf("LocateTranscript() error = %v", err)
	}
	if filepath.Base(path) != "WhatsApp Chat with Alice.txt" {
		t.Errorf("got %q, want name match", filepath.Base(path))
	}
}

func TestLocateTranscriptByContent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "aaa.txt")
	transcript := filepath.Join(dir, "export.txt")
	if err := os.WriteFile(transcript, []byte("12/03/2024, 14:30 - Alice: hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err := newTestCatalog().LocateTranscript(context.Background(), dir)
	if err != nil {
		t.Fatalf("LocateTranscript() error = %v", err)
	}
	if filepath.Base(path) != "export.txt" {
		t.Errorf("got %q, want content match export.txt", filepath.Base(path))
	}
}

func TestLocateTranscriptFallsBackToFirst(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "bbb.txt", "aaa.txt")

	path, err := newTestCatalog().LocateTranscript(context.Background(), dir)
	if err != nil {
		t.Fatalf("LocateTranscript() error = %v", err)
	}
	if filepath.Base(path) != "aaa.txt" {
		t.Errorf("got %q, want first candidate aaa.txt", filepath.Base(path))
	}
}

func TestLocateTranscriptNone(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "IMG-001.jpg")

	_, err := newTestCatalog().LocateTranscript(context.Background(), dir)
	if !errors.Is(err, domain.ErrNoTranscript) {
		t.Errorf("error = %v, want ErrNoTranscript", err)
	}
}
