package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/lecture-fuse/internal/fuser"
)

// ImportDir imports every *.json file of metaDir in name order
func (i *implImporter) ImportDir(ctx context.Context, metaDir, transcriptDir string) ([]int64, error) {
	metaFiles, err := filepath.Glob(filepath.Join(metaDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list meta files: %w", err)
	}
	sort.Strings(metaFiles)

	i.logger.Info(ctx, "Found %d metadata files in %s", len(metaFiles), metaDir)

	ids := make([]int64, 0, len(metaFiles))
	for _, metaPath := range metaFiles {
		if err := ctx.Err(); err != nil {
			return ids, err
		}
		id, err := i.ImportFile(ctx, metaPath, transcriptDir)
		if err != nil {
			return ids, fmt.Errorf("import %s: %w", filepath.Base(metaPath), err)
		}
		ids = append(ids, id)
	}

	i.logger.Info(ctx, "Data import completed: %d lectures", len(ids))
	return ids, nil
}

// ImportFile stores one lecture together with its transcript excerpts.
// A missing transcript imports the lecture without excerpts.
func (i *implImporter) ImportFile(ctx context.Context, metaPath, transcriptDir string) (int64, error) {
	lecture, err := readMeta(metaPath)
	if err != nil {
		return 0, err
	}

	name := stem(metaPath)
	number, part, given, err := ParseFilename(name)
	if err != nil {
		i.logger.Warn(ctx, "%v, continuing with default values", err)
		number, part, given = 0, 0, name
	}
	lecture.Number = number
	lecture.Part = part
	lecture.GivenName = given

	candidates, err := listTranscripts(transcriptDir)
	if err != nil {
		return 0, err
	}

	transcriptPath, ok := MatchTranscript(metaPath, candidates)
	if !ok {
		i.logger.Warn(ctx, "No transcript found for %s", filepath.Base(metaPath))
	}

	var excerpts []fuser.Excerpt
	if ok {
		excerpts, err = readTranscript(transcriptPath)
		if err != nil {
			return 0, err
		}
	}

	id, err := i.store.ImportLecture(ctx, lecture, excerpts)
	if err != nil {
		return 0, fmt.Errorf("store lecture: %w", err)
	}

	i.logger.Info(ctx, "Imported lecture %d (Vorlesung %d, Teil %d, %s) with %d excerpts",
		id, number, part, given, len(excerpts))
	return id, nil
}

func listTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
