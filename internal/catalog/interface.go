package catalog

import (
	"context"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

// Catalog discovers the files of one export directory.
type Catalog interface {
	// Scan indexes the media files of dir by exact filename. Files with
	// unrecognized extensions are excluded silently.
	Scan(ctx context.Context, dir string) (map[string]domain.MediaAsset, error)

	// LocateTranscript picks the .txt file most likely to be the chat
	// transcript. Fails with domain.ErrNoTranscript when dir holds none.
	LocateTranscript(ctx context.Context, dir string) (string, error)
}
