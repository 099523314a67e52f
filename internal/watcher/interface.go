package watcher

import "context"

// Watcher hands lecture metadata files dropped into a directory to an ImportFunc.
type Watcher interface {
	// Start blocks until ctx is cancelled, then waits for running imports.
	Start(ctx context.Context) error
	Stop() error
	// Dir is the watched metadata directory.
	Dir() string
}

// ImportFunc imports and fuses the lecture described by metaPath.
type ImportFunc func(ctx context.Context, metaPath string) error
