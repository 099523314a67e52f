package export

import (
	"github.com/nguyentantai21042004/lecture-fuse/internal/logger"
	"github.com/nguyentantai21042004/lecture-fuse/internal/store"
)

type implExporter struct {
	store  store.Store
	logger logger.Logger
}

// New creates a new Exporter instance
func New(st store.Store, log logger.Logger) Exporter {
	return &implExporter{
		store:  st,
		logger: log,
	}
}
