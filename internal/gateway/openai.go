package gateway

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
	"github.com/nguyentantai21042004/chat-notes/internal/transcode"
)

type openaiVisionBackend struct {
	client openai.Client
	model  string
}

// NewOpenAIVision creates the OpenAI image-description backend, used as
// fallback when Gemini fails or is not configured.
func NewOpenAIVision(apiKey, model string) Backend {
	return &openaiVisionBackend{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (b *openaiVisionBackend) Name() string { return "openai_vision" }

func (b *openaiVisionBackend) Describe(ctx context.Context, asset domain.MediaAsset) (string, error) {
	data, err := os.ReadFile(asset.Path)
	if err != nil {
		return "", domain.NewFailure(domain.ReasonTransient, "read %s: %v", asset.Name, err)
	}

	dataURL := fmt.Sprintf("data:image/%s;base64,%s",
		strings.TrimPrefix(asset.Extension, "."),
		base64.StdEncoding.EncodeToString(data))

	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(imagePrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
		MaxTokens: openai.Int(500),
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", domain.NewFailure(domain.ReasonTransient, "empty response from openai vision")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Containers Whisper accepts directly; everything else in the audio set
// goes through the conversion filter first.
var whisperFormats = map[string]bool{
	".flac": true, ".m4a": true, ".mp3": true, ".mp4": true, ".mpeg": true,
	".mpga": true, ".oga": true, ".ogg": true, ".wav": true, ".webm": true,
}

type whisperBackend struct {
	client    openai.Client
	model     string
	converter transcode.Converter
}

// NewWhisper creates the OpenAI audio-transcription backend.
func NewWhisper(apiKey, model string, converter transcode.Converter) Backend {
	return &whisperBackend{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		converter: converter,
	}
}

func (b *whisperBackend) Name() string { return "openai_whisper" }

func (b *whisperBackend) Describe(ctx context.Context, asset domain.MediaAsset) (string, error) {
	path := asset.Path
	if !whisperFormats[asset.Extension] {
		converted, cleanup, err := b.converter.ToMP3(ctx, asset.Path)
		if err != nil {
			return "", err
		}
		defer cleanup()
		path = converted
	}

	f, err := os.Open(path)
	if err != nil {
		return "", domain.NewFailure(domain.ReasonTransient, "open %s: %v", path, err)
	}
	defer f.Close()

	transcription, err := b.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(b.model),
		File:  f,
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if strings.TrimSpace(transcription.Text) == "" {
		return "", domain.NewFailure(domain.ReasonTransient, "empty transcription from whisper")
	}
	return strings.TrimSpace(transcription.Text), nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return domain.NewFailure(domain.ReasonBackendUnavailable, "openai auth: %v", err)
		case apiErr.StatusCode == 400 || apiErr.StatusCode == 415:
			return domain.NewFailure(domain.ReasonInvalidFormat, "openai rejected content: %v", err)
		default:
			// 429 and 5xx are worth another attempt.
			return domain.NewFailure(domain.ReasonTransient, "openai: %v", err)
		}
	}
	return domain.NewFailure(domain.ReasonTransient, "openai: %v", err)
}
