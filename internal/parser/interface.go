package parser

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

// Parser turns raw WhatsApp export text into an ordered message sequence.
// Malformed lines never fail a parse; they are absorbed according to the
// configured continuation policy.
type Parser interface {
	Parse(ctx context.Context, r io.Reader) ([]domain.Message, error)
	ParseFile(ctx context.Context, path string) ([]domain.Message, error)
}
