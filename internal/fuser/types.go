package fuser

// Excerpt is one timestamped transcript fragment of a lecture.
// Timestamps are opaque tokens; only their ordering is used.
type Excerpt struct {
	LectureID int64
	Text      string
	StartTime string
	EndTime   string
}

// Sentence is one reconstructed sentence built from consecutive excerpts.
type Sentence struct {
	LectureID int64
	Text      string
	StartTime string
	EndTime   string
}

// Policy selects how pending text is closed.
type Policy string

const (
	// PolicyCorrected joins a terminal excerpt onto the pending text, so the
	// sentence ends at that excerpt. A sentence flushed by a lecture change
	// or the end of input ends at its own last excerpt.
	PolicyCorrected Policy = "corrected"
	// PolicySource reproduces the legacy fusion table: pending text is
	// emitted on its own before a terminal excerpt, and a sentence flushed by
	// a terminal excerpt or a lecture change takes the end time of the
	// excerpt that triggered the flush.
	PolicySource Policy = "source"
)

// Options configures one fusion pass.
type Options struct {
	Policy         Policy
	StrictOrdering bool
}

// DefaultOptions returns the corrected policy with ordering checks enabled.
func DefaultOptions() Options {
	return Options{
		Policy:         PolicyCorrected,
		StrictOrdering: true,
	}
}

// ParsePolicy maps a config value to a policy. Empty selects the default.
func ParsePolicy(s string) (Policy, bool) {
	switch Policy(s) {
	case "", PolicyCorrected:
		return PolicyCorrected, true
	case PolicySource:
		return PolicySource, true
	}
	return "", false
}
