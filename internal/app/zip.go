package app

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxExtractedFileSize caps a single extracted entry. Chat exports are
// small; anything past this is a malformed or hostile archive.
const maxExtractedFileSize = 1 << 30

// extractExport unpacks a WhatsApp export archive into a fresh
// directory under tempBase. The returned cleanup removes it.
func extractExport(src, tempBase string) (string, func(), error) {
	if tempBase != "" {
		if err := os.MkdirAll(tempBase, 0o750); err != nil {
			return "", nil, fmt.Errorf("create temp directory: %w", err)
		}
	}

	dir, err := os.MkdirTemp(tempBase, "export-*")
	if err != nil {
		return "", nil, fmt.Errorf("create extraction directory: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	r, err := zip.OpenReader(src)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := extractFile(f, dir); err != nil {
			cleanup()
			return "", nil, err
		}
	}

	return dir, cleanup, nil
}

func extractFile(f *zip.File, destDir string) error {
	// Guard against zip-slip entries escaping the destination.
	name := filepath.Clean(f.Name)
	if name == ".." || strings.HasPrefix(name, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry escapes destination: %s", f.Name)
	}
	dest := filepath.Join(destDir, name)

	if f.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o750)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	n, err := io.Copy(out, io.LimitReader(rc, maxExtractedFileSize))
	if err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	if n >= maxExtractedFileSize {
		return fmt.Errorf("archive entry too large: %s", f.Name)
	}

	return nil
}
