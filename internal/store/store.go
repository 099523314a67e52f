// Package store defines the persistence port for lectures, their raw
// excerpts and the fused sentences built from them.
package store

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/lecture-fuse/internal/fuser"
)

// ErrNotFound is returned when a lecture does not exist.
var ErrNotFound = errors.New("not found")

// Lecture is the metadata of one lecture part.
type Lecture struct {
	ID        int64
	Number    int
	Part      int
	GivenName string
	Titel     string
	Thema     string
	Tags      []string
	Wichtig   []string
}

// Store persists lectures, excerpts and fused sentences.
type Store interface {
	// ImportLecture inserts a lecture and its excerpts atomically and returns
	// the new lecture id. The excerpts' LectureID fields are ignored.
	ImportLecture(ctx context.Context, l Lecture, excerpts []fuser.Excerpt) (int64, error)

	// StreamExcerpts calls fn for every excerpt of the given lectures (all
	// lectures when ids is empty), ordered by lecture id then start time.
	StreamExcerpts(ctx context.Context, ids []int64, fn func(fuser.Excerpt) error) error

	// ReplaceFused swaps the fused sentences of the given lectures (all
	// lectures when ids is empty) in one transaction.
	ReplaceFused(ctx context.Context, ids []int64, sentences []fuser.Sentence) error

	Lectures(ctx context.Context) ([]Lecture, error)
	Lecture(ctx context.Context, id int64) (Lecture, error)
	FusedSentences(ctx context.Context, lectureID int64) ([]fuser.Sentence, error)

	Close() error
}
