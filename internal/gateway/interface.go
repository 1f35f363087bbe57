package gateway

import (
	"context"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

// Gateway is the capability boundary for media description. Vendor
// response shapes never leak past it: callers only ever see an Outcome.
type Gateway interface {
	DescribeImage(ctx context.Context, asset domain.MediaAsset) domain.Outcome
	TranscribeAudio(ctx context.Context, asset domain.MediaAsset) domain.Outcome
}

// Backend is one concrete capability provider behind the Gateway.
// Errors should carry a domain.Failure so the Gateway can branch on the
// reason; anything unclassified is treated as transient.
type Backend interface {
	Name() string
	Describe(ctx context.Context, asset domain.MediaAsset) (string, error)
}
