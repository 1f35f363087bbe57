package gateway

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

const imagePrompt = "Describe this image in detail. Focus on the main subjects, " +
	"objects, activities, setting, text content (if any), and any notable " +
	"features. Be comprehensive but concise."

var geminiMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
}

type geminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiVision creates the Gemini image-description backend.
func NewGeminiVision(ctx context.Context, apiKey, model string) (Backend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiBackend{client: client, model: model}, nil
}

func (b *geminiBackend) Name() string { return "gemini_vision" }

func (b *geminiBackend) Describe(ctx context.Context, asset domain.MediaAsset) (string, error) {
	data, err := os.ReadFile(asset.Path)
	if err != nil {
		return "", domain.NewFailure(domain.ReasonTransient, "read %s: %v", asset.Name, err)
	}

	mime, ok := geminiMIMETypes[asset.Extension]
	if !ok {
		return "", domain.NewFailure(domain.ReasonUnsupported, "no MIME type for %s", asset.Extension)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mime),
			genai.NewPartFromText(imagePrompt),
		}, genai.RoleUser),
	}

	result, err := b.client.Models.GenerateContent(ctx, b.model, contents, nil)
	if err != nil {
		return "", classifyGeminiError(err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", domain.NewFailure(domain.ReasonTransient, "empty response from gemini")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", domain.NewFailure(domain.ReasonTransient, "empty response from gemini")
	}
	return strings.TrimSpace(text.String()), nil
}

func classifyGeminiError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "429"), strings.Contains(msg, "quota"),
		strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return domain.NewFailure(domain.ReasonTransient, "gemini rate limited: %v", err)
	case strings.Contains(msg, "PERMISSION_DENIED"), strings.Contains(msg, "UNAUTHENTICATED"),
		strings.Contains(msg, "API key"):
		return domain.NewFailure(domain.ReasonBackendUnavailable, "gemini auth: %v", err)
	case strings.Contains(msg, "INVALID_ARGUMENT"):
		return domain.NewFailure(domain.ReasonInvalidFormat, "gemini rejected content: %v", err)
	default:
		return domain.NewFailure(domain.ReasonTransient, "gemini: %v", err)
	}
}
