package fuser

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("invalid excerpt")
	// ErrOrdering matches every *OrderingError.
	ErrOrdering = errors.New("excerpt out of order")
)

// ValidationError reports an excerpt with a missing required field.
type ValidationError struct {
	Index int
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("excerpt %d: missing %s", e.Index, e.Field)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// OrderingError reports an excerpt whose start time precedes the previous
// excerpt of the same lecture.
type OrderingError struct {
	Index     int
	LectureID int64
	Previous  string
	Current   string
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("excerpt %d: lecture %d start %q before previous start %q",
		e.Index, e.LectureID, e.Current, e.Previous)
}

func (e *OrderingError) Is(target error) bool {
	return target == ErrOrdering
}
