package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nguyentantai21042004/lecture-fuse/internal/fuser"
)

// readTranscript reads a ';' separated transcript with a header row and
// columns start;end;text. Rows with fewer than three fields are skipped.
func readTranscript(path string) ([]fuser.Excerpt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	return parseTranscript(f)
}

func parseTranscript(r io.Reader) ([]fuser.Excerpt, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read transcript header: %w", err)
	}

	var excerpts []fuser.Excerpt
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read transcript row: %w", err)
		}
		if len(row) < 3 {
			continue
		}
		excerpts = append(excerpts, fuser.Excerpt{
			StartTime: row[0],
			EndTime:   row[1],
			Text:      row[2],
		})
	}

	return excerpts, nil
}
