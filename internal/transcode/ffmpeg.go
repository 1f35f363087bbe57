package transcode

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/nguyentantai21042004/chat-notes/internal/config"
	"github.com/nguyentantai21042004/chat-notes/internal/domain"
	"github.com/nguyentantai21042004/chat-notes/internal/logger"
	"github.com/nguyentantai21042004/chat-notes/pkg/executor"
)

type implConverter struct {
	binary   string
	timeout  time.Duration
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates an ffmpeg-backed Converter.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Converter {
	return &implConverter{
		binary:   cfg.FFmpeg.BinaryPath,
		timeout:  time.Duration(cfg.FFmpeg.ConvertTimeoutSec) * time.Second,
		tempDir:  cfg.Paths.Temp,
		executor: exec,
		logger:   log,
	}
}

func (c *implConverter) ToMP3(ctx context.Context, srcPath string) (string, func(), error) {
	tmp, err := os.CreateTemp(c.tempDir, "converted-*.mp3")
	if err != nil {
		return "", nil, domain.NewFailure(domain.ReasonConversionFailed, "create temp file: %v", err)
	}
	dstPath := tmp.Name()
	tmp.Close()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// 16 kHz mono at 32 kbps is plenty for speech and keeps uploads small.
	args := []string{
		"-i", srcPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-b:a", "32k",
		"-y",
		dstPath,
	}

	if _, err := c.executor.Execute(ctx, c.binary, args...); err != nil {
		c.removeTemp(ctx, dstPath)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", nil, domain.NewFailure(domain.ReasonConversionFailed,
				"conversion of %s timed out after %s", srcPath, c.timeout)
		}
		return "", nil, domain.NewFailure(domain.ReasonConversionFailed,
			"convert %s: %v", srcPath, err)
	}

	cleanup := func() { c.removeTemp(context.Background(), dstPath) }
	return dstPath, cleanup, nil
}

func (c *implConverter) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.logger.Warn(ctx, "Failed to clean up temp file %s: %v", path, err)
	} else {
		c.logger.Debug(ctx, "Cleaned up temp file: %s", path)
	}
}
