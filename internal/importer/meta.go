package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/lecture-fuse/internal/store"
)

// metaFile is the JSON document describing one lecture part
type metaFile struct {
	Titel   string   `json:"titel"`
	Thema   string   `json:"thema"`
	Tags    []string `json:"tags"`
	Wichtig []string `json:"wichtig"`
}

// readMeta decodes a metadata file. Lecture number, part and name are not
// set here; they come from the filename.
func readMeta(path string) (store.Lecture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Lecture{}, fmt.Errorf("read meta: %w", err)
	}

	var m metaFile
	if err := json.Unmarshal(data, &m); err != nil {
		return store.Lecture{}, fmt.Errorf("decode meta %s: %w", path, err)
	}

	return store.Lecture{
		Titel:   m.Titel,
		Thema:   m.Thema,
		Tags:    m.Tags,
		Wichtig: m.Wichtig,
	}, nil
}
