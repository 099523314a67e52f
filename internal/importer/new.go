package importer

import (
	"github.com/nguyentantai21042004/lecture-fuse/internal/logger"
	"github.com/nguyentantai21042004/lecture-fuse/internal/store"
)

type implImporter struct {
	store  store.Store
	logger logger.Logger
}

// New creates a new Importer instance
func New(st store.Store, log logger.Logger) Importer {
	return &implImporter{
		store:  st,
		logger: log,
	}
}
