package cmd

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/chat-notes/internal/config"
	"github.com/nguyentantai21042004/chat-notes/internal/gateway"
	"github.com/nguyentantai21042004/chat-notes/internal/logger"
	"github.com/nguyentantai21042004/chat-notes/internal/transcode"
	"github.com/nguyentantai21042004/chat-notes/pkg/executor"
)

// buildGateway assembles the AI backend chains. Gemini vision runs
// first when configured, with OpenAI as fallback. Audio always goes
// through Whisper.
func buildGateway(ctx context.Context, cfg *config.Config, log logger.Logger) (gateway.Gateway, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY or openai.api_key)")
	}

	var vision []gateway.Backend

	if cfg.Gemini.APIKey != "" {
		gemini, err := gateway.NewGeminiVision(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Warn(ctx, "Gemini backend unavailable, falling back to OpenAI only: %v", err)
		} else {
			vision = append(vision, gateway.Limited(gemini, cfg.Gateway.GeminiRPM))
		}
	}
	vision = append(vision, gateway.NewOpenAIVision(cfg.OpenAI.APIKey, cfg.OpenAI.VisionModel))

	exec := executor.New()
	conv := transcode.New(cfg, exec, log)
	audio := []gateway.Backend{
		gateway.NewWhisper(cfg.OpenAI.APIKey, cfg.OpenAI.WhisperModel, conv),
	}

	return gateway.New(cfg, vision, audio, log), nil
}
