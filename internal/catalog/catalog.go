package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

// Extension to category table. Filenames are the only classification
// input; content sniffing of media files is deliberately out.
var categoryByExtension = map[string]domain.MediaCategory{
	".jpg":  domain.CategoryImage,
	".jpeg": domain.CategoryImage,
	".png":  domain.CategoryImage,
	".gif":  domain.CategoryImage,
	".bmp":  domain.CategoryImage,
	".webp": domain.CategoryImage,

	".mp4":  domain.CategoryVideo,
	".mov":  domain.CategoryVideo,
	".avi":  domain.CategoryVideo,
	".mkv":  domain.CategoryVideo,
	".3gp":  domain.CategoryVideo,
	".webm": domain.CategoryVideo,

	".opus": domain.CategoryAudio,
	".mp3":  domain.CategoryAudio,
	".wav":  domain.CategoryAudio,
	".aac":  domain.CategoryAudio,
	".m4a":  domain.CategoryAudio,
	".ogg":  domain.CategoryAudio,

	".pdf":  domain.CategoryDocument,
	".doc":  domain.CategoryDocument,
	".docx": domain.CategoryDocument,
	".zip":  domain.CategoryDocument,
	".rar":  domain.CategoryDocument,
}

// transcriptSniffRe matches the dash-separated timestamp prefix of a
// WhatsApp message line.
var transcriptSniffRe = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4},?\s+\d{1,2}:\d{2}\s*-`)

func (c *implCatalog) Scan(ctx context.Context, dir string) (map[string]domain.MediaAsset, error) {
	if err := checkDirectory(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	assets := make(map[string]domain.MediaAsset)
	counts := make(map[domain.MediaCategory]int)

	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".txt" {
			continue // transcript, not media
		}
		category, ok := categoryByExtension[ext]
		if !ok {
			c.logger.Debug(ctx, "Ignoring unrecognized file: %s", e.Name())
			continue
		}

		info, err := e.Info()
		if err != nil {
			c.logger.Warn(ctx, "Could not stat %s: %v", e.Name(), err)
			continue
		}

		assets[e.Name()] = domain.MediaAsset{
			Name:      e.Name(),
			Path:      filepath.Join(dir, e.Name()),
			Category:  category,
			SizeBytes: info.Size(),
			Extension: ext,
		}
		counts[category]++
	}

	c.logger.Info(ctx, "Found %d media files", len(assets))
	for category, n := range counts {
		c.logger.Info(ctx, "  - %s: %d", category, n)
	}

	return assets, nil
}

func (c *implCatalog) LocateTranscript(ctx context.Context, dir string) (string, error) {
	if err := checkDirectory(dir); err != nil {
		return "", err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read directory %s: %w", dir, err)
	}

	// ReadDir returns entries sorted by name, which keeps every fallback
	// below deterministic across runs.
	var candidates []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".txt") {
			candidates = append(candidates, filepath.Join(dir, e.Name()))
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w in %s", domain.ErrNoTranscript, dir)
	}

	for _, path := range candidates {
		if strings.Contains(strings.ToLower(filepath.Base(path)), "chat") {
			c.logger.Debug(ctx, "Transcript matched by name: %s", filepath.Base(path))
			return path, nil
		}
	}

	for _, path := range candidates {
		if sniffTranscript(path) {
			c.logger.Debug(ctx, "Transcript matched by content: %s", filepath.Base(path))
			return path, nil
		}
	}

	c.logger.Warn(ctx, "Using first .txt file as transcript: %s", filepath.Base(candidates[0]))
	return candidates[0], nil
}

// sniffTranscript checks the first 1000 bytes for WhatsApp line markers.
func sniffTranscript(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 1000)
	n, _ := f.Read(buf)
	sample := string(buf[:n])

	return transcriptSniffRe.MatchString(sample) || strings.Contains(sample, "(file attached)")
}

func checkDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, dir)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrNotADirectory, dir)
	}
	return nil
}
