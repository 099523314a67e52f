// Package sqlite implements store.Store on an SQLite database using the
// pure Go modernc.org/sqlite driver. The schema keeps the table names of the
// legacy lecture database: lectures, lecture_excerpts and
// fused_lecture_excerpts.
package sqlite
