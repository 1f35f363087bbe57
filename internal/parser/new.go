package parser

import (
	"time"

	"github.com/nguyentantai21042004/chat-notes/internal/config"
	"github.com/nguyentantai21042004/chat-notes/internal/logger"
)

type implParser struct {
	continuation string
	now          func() time.Time
	logger       logger.Logger
}

// New creates a Parser using the wall clock for timestamp fallback.
func New(cfg *config.Config, log logger.Logger) Parser {
	return NewWithClock(cfg, log, time.Now)
}

// NewWithClock injects the clock used when a line's timestamp cannot be
// parsed. Tests pass a fixed clock to keep parses deterministic.
func NewWithClock(cfg *config.Config, log logger.Logger, now func() time.Time) Parser {
	return &implParser{
		continuation: cfg.Parser.Continuation,
		now:          now,
		logger:       log,
	}
}
