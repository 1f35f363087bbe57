package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/chat-notes/internal/config"
	"github.com/nguyentantai21042004/chat-notes/internal/logger"
	"github.com/nguyentantai21042004/chat-notes/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox directory and process new exports as they arrive",
	Long: `watch monitors the configured inbox directory. Every .zip archive
dropped into it is processed as a chat export and the results are
written to the output directory.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "chat-notes watch mode")
	log.Info(ctx, "Inbox: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)

	if err := os.MkdirAll(cfg.Paths.Inbox, 0o750); err != nil {
		return fmt.Errorf("create inbox directory: %w", err)
	}

	svc, err := buildService(ctx, cfg, log)
	if err != nil {
		return err
	}

	handler := func(ctx context.Context, archivePath string) error {
		_, err := svc.Run(ctx, archivePath, nil, nil)
		return err
	}

	w, err := watcher.New(cfg.Paths.Inbox, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.Info(ctx, "Received signal %v, shutting down...", sig)
		cancel()
		return nil
	case err := <-errChan:
		return fmt.Errorf("watcher failed: %w", err)
	}
}
