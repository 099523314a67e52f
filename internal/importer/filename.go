package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reLectureName = regexp.MustCompile(`^(?:Zusammenfassung\s*-\s*)?Vorlesung\s*(\d+)\s*-\s*Teil\s*(\d+)\s*-\s*(.+)`)
	reLectureNum  = regexp.MustCompile(`Vorlesung\s*(\d+)`)
	rePartNum     = regexp.MustCompile(`Teil\s*(\d+)`)
)

// ParseFilename extracts lecture number, part number and given name from a
// file stem such as "Vorlesung 3 - Teil 2 - Graphen".
func ParseFilename(stem string) (lecture, part int, name string, err error) {
	if m := reLectureName.FindStringSubmatch(stem); m != nil {
		lecture, _ = strconv.Atoi(m[1])
		part, _ = strconv.Atoi(m[2])
		return lecture, part, strings.TrimSpace(m[3]), nil
	}

	lm := reLectureNum.FindStringSubmatch(stem)
	pm := rePartNum.FindStringSubmatch(stem)
	if lm == nil || pm == nil {
		return 0, 0, "", fmt.Errorf("filename %q doesn't match any expected pattern", stem)
	}
	lecture, _ = strconv.Atoi(lm[1])
	part, _ = strconv.Atoi(pm[1])

	// last "-" separated segment, stripped of lecture/part remnants
	segments := strings.Split(stem, "-")
	name = segments[len(segments)-1]
	name = reLectureNum.ReplaceAllString(name, "")
	name = rePartNum.ReplaceAllString(name, "")
	name = strings.Trim(name, " -")

	return lecture, part, name, nil
}
