package catalog

import (
	"github.com/nguyentantai21042004/chat-notes/internal/logger"
)

type implCatalog struct {
	logger logger.Logger
}

// New creates a Catalog instance.
func New(log logger.Logger) Catalog {
	return &implCatalog{logger: log}
}
