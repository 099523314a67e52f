package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/lecture-fuse/internal/store"
)

// ExportAll writes every lecture that has fused sentences
func (e *implExporter) ExportAll(ctx context.Context, destDir string) (int, error) {
	lectures, err := e.store.Lectures(ctx)
	if err != nil {
		return 0, fmt.Errorf("list lectures: %w", err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, fmt.Errorf("create dest dir: %w", err)
	}

	count := 0
	for _, l := range lectures {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		path, err := e.export(ctx, l, destDir)
		if err != nil {
			return count, fmt.Errorf("lecture %d: %w", l.ID, err)
		}
		if path == "" {
			continue
		}
		count++
	}

	e.logger.Info(ctx, "Exported %d transcripts to %s", count, destDir)
	return count, nil
}

// ExportLecture writes one lecture regardless of other lectures
func (e *implExporter) ExportLecture(ctx context.Context, lectureID int64, destDir string) (string, error) {
	l, err := e.store.Lecture(ctx, lectureID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create dest dir: %w", err)
	}
	return e.export(ctx, l, destDir)
}

// export returns "" when the lecture has no fused sentences
func (e *implExporter) export(ctx context.Context, l store.Lecture, destDir string) (string, error) {
	sentences, err := e.store.FusedSentences(ctx, l.ID)
	if err != nil {
		return "", err
	}
	if len(sentences) == 0 {
		e.logger.Debug(ctx, "Skipping lecture %d: no fused sentences", l.ID)
		return "", nil
	}

	title := Title(l)
	outputPath := filepath.Join(destDir, FileName(l)+".docx")
	if err := transcriptToDocx(title, sentences, outputPath); err != nil {
		return "", fmt.Errorf("write docx: %w", err)
	}

	e.logger.Info(ctx, "[DONE] %s -> %s (%d sentences)", title, outputPath, len(sentences))
	return outputPath, nil
}

// Title renders the display title of a lecture
func Title(l store.Lecture) string {
	if l.Number == 0 && l.Part == 0 {
		if l.Titel != "" && l.GivenName == "" {
			return l.Titel
		}
		return l.GivenName
	}
	return fmt.Sprintf("Vorlesung %d - Teil %d - %s", l.Number, l.Part, l.GivenName)
}

// FileName is a filesystem safe name unique per lecture id
func FileName(l store.Lecture) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, Title(l))
	return fmt.Sprintf("%03d %s", l.ID, strings.TrimSpace(name))
}
