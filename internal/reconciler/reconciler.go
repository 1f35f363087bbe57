// Package reconciler joins media references from parsed messages against
// the media catalog. It is a pure function of its inputs: no file system,
// no network, so it stays unit-testable with in-memory data.
package reconciler

import (
	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

// Result partitions the media-bearing messages into resolved and missing.
type Result struct {
	// Refs maps each distinct reference string to its join result.
	Refs map[string]domain.ReconciledReference
	// Found and Missing count media messages, not distinct references,
	// so Found+Missing equals the number of media messages.
	Found   int
	Missing int
}

// Reconcile looks every media reference up by exact string equality.
// No case folding, no whitespace normalization: WhatsApp embeds the
// literal on-disk filename, and fuzzy matching would silently link the
// wrong asset.
func Reconcile(messages []domain.Message, assets map[string]domain.MediaAsset) Result {
	result := Result{Refs: make(map[string]domain.ReconciledReference)}

	for _, msg := range messages {
		if msg.Kind != domain.KindMedia {
			continue
		}

		ref, seen := result.Refs[msg.MediaRef]
		if !seen {
			ref = domain.ReconciledReference{Reference: msg.MediaRef}
			if asset, ok := assets[msg.MediaRef]; ok {
				ref.Asset = &asset
			}
			result.Refs[msg.MediaRef] = ref
		}

		if ref.Found() {
			result.Found++
		} else {
			result.Missing++
		}
	}

	return result
}
