package engine

import (
	"github.com/nguyentantai21042004/chat-notes/internal/config"
	"github.com/nguyentantai21042004/chat-notes/internal/gateway"
	"github.com/nguyentantai21042004/chat-notes/internal/logger"
)

type implEngine struct {
	gateway  gateway.Gateway
	logger   logger.Logger
	progress logger.Progress
	workers  int
}

// New creates an Engine. A nil progress sink defaults to no-op.
func New(cfg *config.Config, gw gateway.Gateway, log logger.Logger, progress logger.Progress) Engine {
	if progress == nil {
		progress = logger.NopProgress{}
	}
	workers := cfg.Performance.MaxConcurrent
	if workers < 1 {
		workers = 1
	}
	return &implEngine{
		gateway:  gw,
		logger:   log,
		progress: progress,
		workers:  workers,
	}
}
