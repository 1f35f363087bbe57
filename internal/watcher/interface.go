package watcher

import "context"

// Watcher defines the interface for inbox monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// ExportHandler is a function that processes a newly dropped export archive
type ExportHandler func(ctx context.Context, archivePath string) error
