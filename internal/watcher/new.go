package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/lecture-fuse/internal/logger"
)

// settleDelay gives writers time to finish the file before it is handled
const settleDelay = 500 * time.Millisecond

// New creates a Watcher on metaDir with concurrency control
func New(metaDir string, handler ImportFunc, log logger.Logger, maxConcurrent int) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(metaDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	// Fall back to two imports at a time
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		metaDir:       metaDir,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: maxConcurrent,
		settle:        settleDelay,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}
