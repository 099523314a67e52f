package processor

import "context"

// Processor drives import and sentence fusion against the store
type Processor interface {
	// Process imports one metadata file with its transcript and fuses that lecture
	Process(ctx context.Context, metaPath string) error
	// Run imports the metadata directory and fuses everything in one pass
	Run(ctx context.Context) error
	// FuseAll fuses every stored excerpt in a single pass and replaces all fused sentences
	FuseAll(ctx context.Context) (int, error)
	// FuseLectures fuses each lecture independently, bounded by max_concurrent
	FuseLectures(ctx context.Context, ids []int64) (int, error)
}
