package app

import (
	"github.com/nguyentantai21042004/chat-notes/internal/catalog"
	"github.com/nguyentantai21042004/chat-notes/internal/config"
	"github.com/nguyentantai21042004/chat-notes/internal/engine"
	"github.com/nguyentantai21042004/chat-notes/internal/logger"
	"github.com/nguyentantai21042004/chat-notes/internal/parser"
	"github.com/nguyentantai21042004/chat-notes/internal/renderer"
)

type implService struct {
	cfg      *config.Config
	parser   parser.Parser
	catalog  catalog.Catalog
	engine   engine.Engine
	renderer renderer.Renderer
	logger   logger.Logger
}

// New creates a Service instance.
func New(cfg *config.Config, p parser.Parser, c catalog.Catalog, e engine.Engine, r renderer.Renderer, log logger.Logger) Service {
	return &implService{
		cfg:      cfg,
		parser:   p,
		catalog:  c,
		engine:   e,
		renderer: r,
		logger:   log,
	}
}
