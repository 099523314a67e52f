package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lecture-fuse/internal/export"
	"github.com/nguyentantai21042004/lecture-fuse/internal/fuser"
)

const summaryPrompt = `You are an experienced teaching assistant. Below is the transcript of a university lecture, one reconstructed sentence per line. Write a DETAILED summary in GERMAN.

Requirements:
- Start with a one-sentence overview of the lecture topic
- List ALL main topics in the order they are covered
- Explain definitions, algorithms and examples the lecturer gives
- Keep technical terms as spoken, add the English term in parentheses where common
- Use markdown: headings, bullet points, bold for key terms
- Finish with a section "Wichtig für die Prüfung" if the lecturer stresses anything

Lecture: %s
Topic: %s
---
%s
---`

// ErrNoAPIKeys is returned when no Gemini key is configured.
var ErrNoAPIKeys = errors.New("no Gemini API keys configured")

type generateFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

// SummarizeAll summarises every lecture with fused sentences and writes
// .md and .docx files into destDir.
func (s *implSummarizer) SummarizeAll(ctx context.Context, destDir string) error {
	if len(s.apiKeys) == 0 {
		return ErrNoAPIKeys
	}

	lectures, err := s.store.Lectures(ctx)
	if err != nil {
		return fmt.Errorf("list lectures: %w", err)
	}

	if len(lectures) == 0 {
		s.logger.Info(ctx, "No lectures found")
		return nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d lectures to summarize", len(lectures))

	successCount := 0
	failCount := 0

	for i, l := range lectures {
		title := export.Title(l)
		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(lectures), title)

		sentences, err := s.store.FusedSentences(ctx, l.ID)
		if err != nil {
			s.logger.Error(ctx, "Failed to read lecture %d: %v", l.ID, err)
			failCount++
			continue
		}
		if len(sentences) == 0 {
			s.logger.Warn(ctx, "Lecture %d has no fused sentences, run fuse first", l.ID)
			continue
		}

		summary, err := s.callGemini(ctx, fmt.Sprintf(summaryPrompt, title, l.Thema, transcriptText(sentences)))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Error(ctx, "Failed to summarize %s: %v", title, err)
			failCount++
			continue
		}

		md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
			title,
			time.Now().Format("2006-01-02 15:04"),
			strings.TrimSpace(summary),
		)

		base := filepath.Join(destDir, export.FileName(l))
		if err := os.WriteFile(base+".md", []byte(md), 0644); err != nil {
			s.logger.Error(ctx, "Failed to write %s.md: %v", base, err)
			failCount++
			continue
		}
		if err := export.MarkdownToDocx(title, summary, base+".docx"); err != nil {
			s.logger.Warn(ctx, "Failed to write %s.docx: %v", base, err)
		}

		s.logger.Info(ctx, "[DONE] %s -> %s.md", title, base)
		successCount++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed", successCount, failCount)
	return nil
}

func transcriptText(sentences []fuser.Sentence) string {
	var b strings.Builder
	for _, s := range sentences {
		b.WriteString(s.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// callGemini sends the prompt and returns the summary text.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for range len(s.apiKeys) {
		text, err := s.generate(ctx, s.apiKeys[s.currentKey], s.model, prompt)
		if err == nil {
			return text, nil
		}
		if !isQuotaError(err) {
			return "", err
		}
		s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
		s.rotateKey()
		lastErr = err
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

func generateGemini(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
