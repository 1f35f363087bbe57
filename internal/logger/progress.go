package logger

import "context"

// Progress receives per-item updates while media is being processed.
// Callers that want upload-style progress bars implement this; everyone
// else gets the no-op default.
type Progress interface {
	Step(ctx context.Context, message string, done, total int)
}

// NopProgress discards all updates.
type NopProgress struct{}

func (NopProgress) Step(context.Context, string, int, int) {}

// LogProgress forwards updates to a Logger at info level.
type LogProgress struct {
	Log Logger
}

func (p LogProgress) Step(ctx context.Context, message string, done, total int) {
	p.Log.Info(ctx, "[%d/%d] %s", done, total, message)
}
