package processor

import (
	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/lecture-fuse/internal/config"
	"github.com/nguyentantai21042004/lecture-fuse/internal/importer"
	"github.com/nguyentantai21042004/lecture-fuse/internal/logger"
	"github.com/nguyentantai21042004/lecture-fuse/internal/store"
)

type implProcessor struct {
	cfg      *config.Config
	store    store.Store
	importer importer.Importer
	logger   logger.Logger
	sem      *semaphore.Weighted
}

// New creates a new Processor instance
func New(cfg *config.Config, st store.Store, imp importer.Importer, log logger.Logger) Processor {
	capacity := cfg.Performance.MaxConcurrent
	if capacity <= 0 {
		capacity = 1
	}
	return &implProcessor{
		cfg:      cfg,
		store:    st,
		importer: imp,
		logger:   log,
		sem:      semaphore.NewWeighted(int64(capacity)),
	}
}
