package importer

import "context"

// Importer loads lecture metadata and timestamped transcripts into the store
type Importer interface {
	// ImportDir imports every metadata file in metaDir, returning the new lecture ids
	ImportDir(ctx context.Context, metaDir, transcriptDir string) ([]int64, error)
	// ImportFile imports one metadata file and its matching transcript
	ImportFile(ctx context.Context, metaPath, transcriptDir string) (int64, error)
}
