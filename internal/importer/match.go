package importer

import (
	"path/filepath"
	"sort"
	"strings"
)

// stem returns the base name without its extension
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MatchTranscript picks the transcript belonging to a metadata file. A
// candidate matches when its stem equals the metadata file's stem exactly;
// with several matches the lexicographically smallest path wins.
func MatchTranscript(metaName string, candidates []string) (string, bool) {
	want := stem(metaName)

	var matches []string
	for _, c := range candidates {
		if stem(c) == want {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return "", false
	}

	sort.Strings(matches)
	return matches[0], true
}
