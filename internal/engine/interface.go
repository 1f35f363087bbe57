package engine

import (
	"context"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

// Engine drives the enhancement pipeline: it resolves media references,
// invokes the description gateway per resolved item, and re-emits the
// message sequence in original order with media lines replaced by
// descriptions. One failed item degrades only that message.
type Engine interface {
	Enhance(ctx context.Context, messages []domain.Message, assets map[string]domain.MediaAsset) ([]domain.Message, *domain.ProcessingStats)
}
