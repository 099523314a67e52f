package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// Process handles a metadata file dropped into the watched directory
func (p *implProcessor) Process(ctx context.Context, metaPath string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "Processing lecture: %s", filepath.Base(metaPath))

	// Step 1: Import metadata and transcript
	id, err := p.importer.ImportFile(ctx, metaPath, p.cfg.Paths.Timestamped)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	// Step 2: Fuse this lecture on its own
	n, err := p.FuseLectures(ctx, []int64{id})
	if err != nil {
		return fmt.Errorf("fuse: %w", err)
	}

	p.logger.Info(ctx, "Lecture %d done: %d sentences in %s", id, n, time.Since(startTime))
	return nil
}

// Run imports every metadata file, then fuses all excerpts
func (p *implProcessor) Run(ctx context.Context) error {
	startTime := time.Now()

	ids, err := p.importer.ImportDir(ctx, p.cfg.Paths.Meta, p.cfg.Paths.Timestamped)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	n, err := p.FuseAll(ctx)
	if err != nil {
		return fmt.Errorf("fuse: %w", err)
	}

	p.logger.Info(ctx, "Imported %d lectures, fused %d sentences in %s", len(ids), n, time.Since(startTime))
	return nil
}
