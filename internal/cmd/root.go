package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/chat-notes/internal/app"
	"github.com/nguyentantai21042004/chat-notes/internal/catalog"
	"github.com/nguyentantai21042004/chat-notes/internal/config"
	"github.com/nguyentantai21042004/chat-notes/internal/engine"
	"github.com/nguyentantai21042004/chat-notes/internal/logger"
	"github.com/nguyentantai21042004/chat-notes/internal/parser"
	"github.com/nguyentantai21042004/chat-notes/internal/renderer"
)

var (
	configPath string
	outputDir  string
	fromStr    string
	toStr      string
)

var rootCmd = &cobra.Command{
	Use:   "chat-notes <export>",
	Short: "Enhance WhatsApp chat exports with AI captions and transcriptions",
	Long: `chat-notes processes a WhatsApp chat export (a .zip archive or an
already extracted directory), describes shared images and transcribes
voice notes using AI backends, and writes an enhanced transcript plus
processing statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides config)")
	rootCmd.Flags().StringVar(&fromStr, "from", "", `Start time filter (format: "DD.MM.YYYY" or "DD.MM.YYYY HH:MM")`)
	rootCmd.Flags().StringVar(&toStr, "to", "", `End time filter (format: "DD.MM.YYYY" or "DD.MM.YYYY HH:MM")`)
}

func runRoot(cmd *cobra.Command, args []string) error {
	exportPath := args[0]

	from, err := parseTime(fromStr)
	if err != nil {
		return fmt.Errorf("parsing --from: %w", err)
	}

	to, err := parseTime(toStr)
	if err != nil {
		return fmt.Errorf("parsing --to: %w", err)
	}

	// If --to is date-only, set to end of day
	if to != nil && !strings.Contains(toStr, " ") {
		endOfDay := to.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		to = &endOfDay
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if outputDir != "" {
		cfg.Paths.Output = outputDir
	}

	ctx := cmd.Context()
	log := logger.New(cfg.Logging.Level)

	svc, err := buildService(ctx, cfg, log)
	if err != nil {
		return err
	}

	if _, err := svc.Run(ctx, exportPath, from, to); err != nil {
		return err
	}
	return nil
}

func buildService(ctx context.Context, cfg *config.Config, log logger.Logger) (app.Service, error) {
	gw, err := buildGateway(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	p := parser.New(cfg, log)
	c := catalog.New(log)
	e := engine.New(cfg, gw, log, logger.LogProgress{Log: log})
	r := renderer.New()

	return app.New(cfg, p, c, e, r, log), nil
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	formats := []string{
		"02.01.2006 15:04",
		"02.01.2006",
	}

	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("unknown time format: %q (expected DD.MM.YYYY or DD.MM.YYYY HH:MM)", s)
}
