package fuser

import (
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func ex(lecture int64, text, start, end string) Excerpt {
	return Excerpt{LectureID: lecture, Text: text, StartTime: start, EndTime: end}
}

func sent(lecture int64, text, start, end string) Sentence {
	return Sentence{LectureID: lecture, Text: text, StartTime: start, EndTime: end}
}

func TestFuse(t *testing.T) {
	corrected := DefaultOptions()
	source := Options{Policy: PolicySource, StrictOrdering: true}

	tests := []struct {
		name  string
		opts  Options
		input []Excerpt
		want  []Sentence
	}{
		{
			name:  "empty input",
			opts:  corrected,
			input: nil,
			want:  []Sentence{},
		},
		{
			name: "joins until terminal",
			opts: corrected,
			input: []Excerpt{
				ex(1, "Hello", "t0", "t1"),
				ex(1, "world.", "t1", "t2"),
			},
			want: []Sentence{sent(1, "Hello world.", "t0", "t2")},
		},
		{
			name: "source emits pending text before terminal",
			opts: source,
			input: []Excerpt{
				ex(1, "Hello", "t0", "t1"),
				ex(1, "world.", "t1", "t2"),
			},
			want: []Sentence{
				sent(1, "Hello", "t0", "t2"),
				sent(1, "world.", "t1", "t2"),
			},
		},
		{
			name: "no merge across terminal punctuation",
			opts: corrected,
			input: []Excerpt{
				ex(1, "First.", "t0", "t1"),
				ex(1, "Second.", "t1", "t2"),
			},
			want: []Sentence{
				sent(1, "First.", "t0", "t1"),
				sent(1, "Second.", "t1", "t2"),
			},
		},
		{
			name: "question and exclamation marks",
			opts: corrected,
			input: []Excerpt{
				ex(1, "Really?", "t0", "t1"),
				ex(1, "Yes!", "t1", "t2"),
			},
			want: []Sentence{
				sent(1, "Really?", "t0", "t1"),
				sent(1, "Yes!", "t1", "t2"),
			},
		},
		{
			name:  "trailing incomplete flush",
			opts:  corrected,
			input: []Excerpt{ex(1, "Incomplete text", "t0", "t1")},
			want:  []Sentence{sent(1, "Incomplete text", "t0", "t1")},
		},
		{
			name: "several fragments joined at end of input",
			opts: corrected,
			input: []Excerpt{
				ex(1, "so what", "t0", "t1"),
				ex(1, "we see here", "t1", "t2"),
				ex(1, "is", "t2", "t3"),
			},
			want: []Sentence{sent(1, "so what we see here is", "t0", "t3")},
		},
		{
			name: "lecture boundary corrected end time",
			opts: corrected,
			input: []Excerpt{
				ex(1, "Hi", "t0", "t1"),
				ex(2, "Bye.", "t2", "t3"),
			},
			want: []Sentence{
				sent(1, "Hi", "t0", "t1"),
				sent(2, "Bye.", "t2", "t3"),
			},
		},
		{
			name: "lecture boundary source end time",
			opts: source,
			input: []Excerpt{
				ex(1, "Hi", "t0", "t1"),
				ex(2, "Bye.", "t2", "t3"),
			},
			want: []Sentence{
				sent(1, "Hi", "t0", "t3"),
				sent(2, "Bye.", "t2", "t3"),
			},
		},
		{
			name: "flush before terminal source end time",
			opts: source,
			input: []Excerpt{
				ex(1, "Hello", "t0", "t1"),
				ex(1, "again", "t1", "t2"),
				ex(1, "world.", "t2", "t3"),
			},
			want: []Sentence{
				sent(1, "Hello again", "t0", "t3"),
				sent(1, "world.", "t2", "t3"),
			},
		},
		{
			name: "three fragments corrected",
			opts: corrected,
			input: []Excerpt{
				ex(1, "Hello", "t0", "t1"),
				ex(1, "again", "t1", "t2"),
				ex(1, "world.", "t2", "t3"),
			},
			want: []Sentence{sent(1, "Hello again world.", "t0", "t3")},
		},
		{
			name: "unterminated lecture flushed at next lecture",
			opts: corrected,
			input: []Excerpt{
				ex(1, "Done.", "t0", "t1"),
				ex(1, "and then", "t1", "t2"),
				ex(2, "new topic", "t0", "t1"),
			},
			want: []Sentence{
				sent(1, "Done.", "t0", "t1"),
				sent(1, "and then", "t1", "t2"),
				sent(2, "new topic", "t0", "t1"),
			},
		},
		{
			name: "empty text adds no separator",
			opts: corrected,
			input: []Excerpt{
				ex(1, "one", "t0", "t1"),
				ex(1, "", "t1", "t2"),
				ex(1, "two", "t2", "t3"),
			},
			want: []Sentence{sent(1, "one two", "t0", "t3")},
		},
		{
			name: "leading empty text does not set start",
			opts: corrected,
			input: []Excerpt{
				ex(1, "", "t0", "t1"),
				ex(1, "start", "t1", "t2"),
			},
			want: []Sentence{sent(1, "start", "t1", "t2")},
		},
		{
			name:  "only empty text",
			opts:  corrected,
			input: []Excerpt{ex(1, "", "t0", "t1")},
			want:  []Sentence{},
		},
		{
			name:  "terminal text is trimmed",
			opts:  corrected,
			input: []Excerpt{ex(1, "  spaced out.", "t0", "t1")},
			want:  []Sentence{sent(1, "spaced out.", "t0", "t1")},
		},
		{
			name: "trailing whitespace is not terminal",
			opts: corrected,
			input: []Excerpt{
				ex(1, "ends. ", "t0", "t1"),
				ex(1, "more.", "t1", "t2"),
			},
			want: []Sentence{sent(1, "ends.  more.", "t0", "t2")},
		},
		{
			name: "equal start times are in order",
			opts: corrected,
			input: []Excerpt{
				ex(1, "a", "00:00:01", "00:00:02"),
				ex(1, "b.", "00:00:01", "00:00:03"),
			},
			want: []Sentence{sent(1, "a b.", "00:00:01", "00:00:03")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fuse(tt.input, tt.opts)
			if err != nil {
				t.Fatalf("Fuse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Fuse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFuseValidation(t *testing.T) {
	tests := []struct {
		name  string
		input []Excerpt
		field string
		index int
	}{
		{"missing lecture", []Excerpt{ex(0, "a", "t0", "t1")}, "lecture_id", 0},
		{"missing start", []Excerpt{ex(1, "a.", "t0", "t1"), ex(1, "b", "", "t2")}, "start_time", 1},
		{"missing end", []Excerpt{ex(1, "a", "t0", "")}, "end_time", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fuse(tt.input, DefaultOptions())
			if got != nil {
				t.Errorf("Fuse() returned %d sentences on error", len(got))
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Fuse() error = %v, want ErrValidation", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not *ValidationError", err)
			}
			if verr.Field != tt.field || verr.Index != tt.index {
				t.Errorf("ValidationError = %+v, want field %s index %d", verr, tt.field, tt.index)
			}
		})
	}
}

func TestFuseOrdering(t *testing.T) {
	input := []Excerpt{
		ex(1, "later", "00:00:05", "00:00:06"),
		ex(1, "earlier", "00:00:01", "00:00:02"),
	}

	_, err := Fuse(input, DefaultOptions())
	var oerr *OrderingError
	if !errors.As(err, &oerr) {
		t.Fatalf("Fuse() error = %v, want *OrderingError", err)
	}
	if !errors.Is(err, ErrOrdering) {
		t.Error("errors.Is(err, ErrOrdering) = false")
	}
	if oerr.Index != 1 || oerr.LectureID != 1 || oerr.Previous != "00:00:05" {
		t.Errorf("OrderingError = %+v", oerr)
	}

	got, err := Fuse(input, Options{Policy: PolicyCorrected})
	if err != nil {
		t.Fatalf("Fuse() without strict ordering error = %v", err)
	}
	if len(got) != 1 || got[0].Text != "later earlier" {
		t.Errorf("Fuse() = %#v", got)
	}
}

func TestOrderingIgnoresLectureChange(t *testing.T) {
	input := []Excerpt{
		ex(1, "end of one.", "00:10:00", "00:10:05"),
		ex(2, "start of two.", "00:00:00", "00:00:03"),
	}
	if _, err := Fuse(input, DefaultOptions()); err != nil {
		t.Fatalf("Fuse() error = %v", err)
	}
}

func TestPushAfterError(t *testing.T) {
	f := New(DefaultOptions())
	if _, err := f.Push(ex(1, "pending", "t0", "t1")); err != nil {
		t.Fatal(err)
	}
	_, first := f.Push(ex(1, "x", "", "t2"))
	if first == nil {
		t.Fatal("Push() expected error")
	}
	if _, err := f.Push(ex(1, "fine.", "t2", "t3")); err != first {
		t.Errorf("Push() after failure error = %v, want %v", err, first)
	}
	if out := f.Close(); out != nil {
		t.Errorf("Close() after failure = %#v, want nil", out)
	}
}

func TestCoverage(t *testing.T) {
	input := []Excerpt{
		ex(1, "we start", "t00", "t01"),
		ex(1, "with sets.", "t01", "t02"),
		ex(1, "Then", "t02", "t03"),
		ex(1, "", "t03", "t04"),
		ex(1, "maps?", "t04", "t05"),
		ex(2, "Welcome back!", "t00", "t01"),
		ex(2, "today we", "t01", "t02"),
		ex(3, "and finally", "t00", "t01"),
	}

	for _, policy := range []Policy{PolicyCorrected, PolicySource} {
		got, err := Fuse(input, Options{Policy: policy, StrictOrdering: true})
		if err != nil {
			t.Fatalf("%s: Fuse() error = %v", policy, err)
		}

		var in, out []string
		for _, e := range input {
			in = append(in, strings.Fields(e.Text)...)
		}
		for _, s := range got {
			out = append(out, strings.Fields(s.Text)...)
		}
		if !slices.Equal(in, out) {
			t.Errorf("%s: words = %q, want %q", policy, out, in)
		}
	}
}

func TestRefuseIsIdempotent(t *testing.T) {
	input := []Excerpt{
		ex(1, "First", "t0", "t1"),
		ex(1, "part.", "t1", "t2"),
		ex(1, "Second one.", "t2", "t3"),
		ex(2, "Other lecture?", "t0", "t1"),
	}

	first, err := Fuse(input, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	again := make([]Excerpt, 0, len(first))
	for _, s := range first {
		if !IsTerminal(s.Text) {
			continue
		}
		again = append(again, ex(s.LectureID, s.Text, s.StartTime, s.EndTime))
	}
	terminal := make([]Sentence, 0, len(again))
	for _, e := range again {
		terminal = append(terminal, sent(e.LectureID, e.Text, e.StartTime, e.EndTime))
	}

	second, err := Fuse(again, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(second, terminal) {
		t.Errorf("re-fusion = %#v, want %#v", second, terminal)
	}
}

func TestAll(t *testing.T) {
	input := []Excerpt{
		ex(1, "a", "t0", "t1"),
		ex(1, "b.", "t1", "t2"),
		ex(1, "c", "t2", "t3"),
	}
	want, err := Fuse(input, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	var got []Sentence
	for s, err := range All(slices.Values(input), DefaultOptions()) {
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		got = append(got, s)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %#v, want %#v", got, want)
	}

	var n int
	for range All(slices.Values(input), DefaultOptions()) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("All() did not stop after break")
	}

	bad := []Excerpt{ex(1, "a", "t0", "t1"), ex(0, "b", "t1", "t2")}
	var errs int
	for _, err := range All(slices.Values(bad), DefaultOptions()) {
		if err != nil {
			errs++
		}
	}
	if errs != 1 {
		t.Errorf("All() yielded %d errors, want 1", errs)
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{".", true},
		{"done.", true},
		{"why?", true},
		{"wow!", true},
		{"comma,", false},
		{"ellipsis...", true},
		{"quote.\"", false},
	}
	for _, tt := range tests {
		if got := IsTerminal(tt.text); got != tt.want {
			t.Errorf("IsTerminal(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in     string
		want   Policy
		wantOK bool
	}{
		{"", PolicyCorrected, true},
		{"corrected", PolicyCorrected, true},
		{"source", PolicySource, true},
		{"legacy", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePolicy(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePolicy(%q) = %q, %v", tt.in, got, ok)
		}
	}
}
