package summarizer

import "context"

// Summarizer produces LLM-generated markdown summaries of fused lecture transcripts.
type Summarizer interface {
	SummarizeAll(ctx context.Context, destDir string) error
}
