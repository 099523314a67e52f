// Package fuser rebuilds complete sentences from lecture transcript excerpts.
//
// Consecutive excerpts are joined until one ends in '.', '?' or '!', the
// lecture changes, or the input ends. The pass is single, forward and keeps
// all of its state in one Fuser value, so independent passes may run
// concurrently.
package fuser

import (
	"iter"
	"strings"
)

// Fuser carries the accumulator of one fusion pass. The zero value is not
// usable; create one with New for every pass.
type Fuser struct {
	opts Options

	pushed  int
	started bool
	err     error

	lectureID int64
	text      string
	startTime string
	endTime   string

	lastStart string
	lastEnd   string
}

// New returns a Fuser with an empty accumulator.
func New(opts Options) *Fuser {
	if opts.Policy == "" {
		opts.Policy = PolicyCorrected
	}
	return &Fuser{opts: opts}
}

// Push feeds the next excerpt and returns the sentences it completed, in
// order. After an error the Fuser stays failed and returns the same error.
func (f *Fuser) Push(e Excerpt) ([]Sentence, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := f.check(e); err != nil {
		f.err = err
		return nil, err
	}
	f.pushed++

	var out []Sentence
	if f.started && e.LectureID != f.lectureID {
		if f.text != "" {
			out = append(out, f.flush(f.lectureID, e.EndTime))
		}
		f.reset()
	}

	f.started = true
	f.lectureID = e.LectureID
	f.lastStart = e.StartTime
	f.lastEnd = e.EndTime

	if !IsTerminal(e.Text) {
		f.accumulate(e)
		return out, nil
	}

	if f.opts.Policy == PolicyCorrected {
		f.accumulate(e)
		return append(out, f.flush(e.LectureID, e.EndTime)), nil
	}

	if f.text != "" {
		out = append(out, f.flush(e.LectureID, e.EndTime))
	}
	return append(out, Sentence{
		LectureID: e.LectureID,
		Text:      strings.TrimSpace(e.Text),
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
	}), nil
}

// Close flushes trailing unterminated text. It returns nothing once the
// Fuser has failed.
func (f *Fuser) Close() []Sentence {
	if f.err != nil || f.text == "" {
		return nil
	}
	return []Sentence{f.flush(f.lectureID, f.lastEnd)}
}

// Fuse runs a complete pass over excerpts. Empty input yields no sentences.
// On error no sentences are returned.
func Fuse(excerpts []Excerpt, opts Options) ([]Sentence, error) {
	f := New(opts)
	out := make([]Sentence, 0, len(excerpts))
	for _, e := range excerpts {
		s, err := f.Push(e)
		if err != nil {
			return nil, err
		}
		out = append(out, s...)
	}
	return append(out, f.Close()...), nil
}

// All fuses excerpts lazily. On failure it yields the error once and stops.
func All(excerpts iter.Seq[Excerpt], opts Options) iter.Seq2[Sentence, error] {
	return func(yield func(Sentence, error) bool) {
		f := New(opts)
		for e := range excerpts {
			out, err := f.Push(e)
			if err != nil {
				yield(Sentence{}, err)
				return
			}
			for _, s := range out {
				if !yield(s, nil) {
					return
				}
			}
		}
		for _, s := range f.Close() {
			if !yield(s, nil) {
				return
			}
		}
	}
}

// IsTerminal reports whether text ends a sentence.
func IsTerminal(text string) bool {
	if text == "" {
		return false
	}
	switch text[len(text)-1] {
	case '.', '?', '!':
		return true
	}
	return false
}

func (f *Fuser) check(e Excerpt) error {
	switch {
	case e.LectureID <= 0:
		return &ValidationError{Index: f.pushed, Field: "lecture_id"}
	case e.StartTime == "":
		return &ValidationError{Index: f.pushed, Field: "start_time"}
	case e.EndTime == "":
		return &ValidationError{Index: f.pushed, Field: "end_time"}
	}
	if f.opts.StrictOrdering && f.started && e.LectureID == f.lectureID && e.StartTime < f.lastStart {
		return &OrderingError{
			Index:     f.pushed,
			LectureID: e.LectureID,
			Previous:  f.lastStart,
			Current:   e.StartTime,
		}
	}
	return nil
}

// accumulate appends non-terminal text. Blank text adds no separator but
// still extends the span of a non-empty accumulation.
func (f *Fuser) accumulate(e Excerpt) {
	if strings.TrimSpace(e.Text) == "" {
		if f.text != "" {
			f.endTime = e.EndTime
		}
		return
	}
	if f.text == "" {
		f.text = e.Text
		f.startTime = e.StartTime
	} else {
		f.text += " " + e.Text
	}
	f.endTime = e.EndTime
}

// flush emits the accumulator. trigger is the end time of the excerpt that
// caused the flush; only PolicySource uses it.
func (f *Fuser) flush(lectureID int64, trigger string) Sentence {
	end := f.endTime
	if f.opts.Policy == PolicySource {
		end = trigger
	}
	s := Sentence{
		LectureID: lectureID,
		Text:      strings.TrimSpace(f.text),
		StartTime: f.startTime,
		EndTime:   end,
	}
	f.reset()
	return s
}

func (f *Fuser) reset() {
	f.text = ""
	f.startTime = ""
	f.endTime = ""
}
