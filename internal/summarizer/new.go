package summarizer

import (
	"github.com/nguyentantai21042004/lecture-fuse/internal/logger"
	"github.com/nguyentantai21042004/lecture-fuse/internal/store"
)

type implSummarizer struct {
	store      store.Store
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	model      string
	generate   generateFunc
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
func New(st store.Store, apiKeys []string, model string, log logger.Logger) Summarizer {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implSummarizer{
		store:    st,
		apiKeys:  apiKeys,
		logger:   log,
		model:    model,
		generate: generateGemini,
	}
}
