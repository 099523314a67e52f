package export

import "context"

// Exporter writes fused lecture transcripts as docx documents
type Exporter interface {
	// ExportAll writes one document per lecture into destDir and returns the count
	ExportAll(ctx context.Context, destDir string) (int, error)
	// ExportLecture writes a single lecture and returns the output path
	ExportLecture(ctx context.Context, lectureID int64, destDir string) (string, error)
}
