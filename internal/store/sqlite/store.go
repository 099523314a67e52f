package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nguyentantai21042004/lecture-fuse/internal/fuser"
	"github.com/nguyentantai21042004/lecture-fuse/internal/store"
	"github.com/nguyentantai21042004/lecture-fuse/internal/store/sqlite/migrations"
)

// Store is an SQLite backed store.Store.
type Store struct {
	db   *sql.DB
	path string
}

var _ store.Store = (*Store)(nil)

// NewStore opens (creating if needed) the database file at path and applies
// pending migrations.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite has a single writer; one connection avoids SQLITE_BUSY between
	// parallel fusions.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:   db,
		path: path,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Lectures ====================

// ImportLecture inserts a lecture with its excerpts in one transaction.
func (s *Store) ImportLecture(ctx context.Context, l store.Lecture, excerpts []fuser.Excerpt) (int64, error) {
	tags, err := marshalList(l.Tags)
	if err != nil {
		return 0, fmt.Errorf("marshalling tags: %w", err)
	}
	wichtig, err := marshalList(l.Wichtig)
	if err != nil {
		return 0, fmt.Errorf("marshalling wichtig: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, `
		INSERT INTO lectures (lecture_number, part_number, given_name, titel, thema, tags, wichtig)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, l.Number, l.Part, l.GivenName, l.Titel, l.Thema, tags, wichtig)
	if err != nil {
		return 0, fmt.Errorf("inserting lecture: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading lecture id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO lecture_excerpts (lecture_id, text, start_time, end_time)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing excerpt insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range excerpts {
		if _, err := stmt.ExecContext(ctx, id, e.Text, e.StartTime, e.EndTime); err != nil {
			return 0, fmt.Errorf("inserting excerpt: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing lecture: %w", err)
	}
	return id, nil
}

// Lectures lists all lectures ordered by id.
func (s *Store) Lectures(ctx context.Context) ([]store.Lecture, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lecture_number, part_number, given_name, titel, thema, tags, wichtig
		FROM lectures ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying lectures: %w", err)
	}
	defer rows.Close()

	var lectures []store.Lecture
	for rows.Next() {
		l, err := scanLecture(rows)
		if err != nil {
			return nil, err
		}
		lectures = append(lectures, l)
	}
	return lectures, rows.Err()
}

// Lecture returns one lecture or store.ErrNotFound.
func (s *Store) Lecture(ctx context.Context, id int64) (store.Lecture, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, lecture_number, part_number, given_name, titel, thema, tags, wichtig
		FROM lectures WHERE id = ?
	`, id)
	l, err := scanLecture(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Lecture{}, fmt.Errorf("lecture %d: %w", id, store.ErrNotFound)
	}
	return l, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLecture(sc scanner) (store.Lecture, error) {
	var (
		l                                         store.Lecture
		number, part                              sql.NullInt64
		name, titel, thema, tagsJSON, wichtigJSON sql.NullString
	)
	if err := sc.Scan(&l.ID, &number, &part, &name, &titel, &thema, &tagsJSON, &wichtigJSON); err != nil {
		return store.Lecture{}, err
	}
	l.Number = int(number.Int64)
	l.Part = int(part.Int64)
	l.GivenName = name.String
	l.Titel = titel.String
	l.Thema = thema.String

	var err error
	if l.Tags, err = unmarshalList(tagsJSON.String); err != nil {
		return store.Lecture{}, fmt.Errorf("lecture %d tags: %w", l.ID, err)
	}
	if l.Wichtig, err = unmarshalList(wichtigJSON.String); err != nil {
		return store.Lecture{}, fmt.Errorf("lecture %d wichtig: %w", l.ID, err)
	}
	return l, nil
}

// ==================== Excerpts ====================

// StreamExcerpts reads excerpts in fusion order. A NULL column is reported as
// a *fuser.ValidationError carrying the row position.
func (s *Store) StreamExcerpts(ctx context.Context, ids []int64, fn func(fuser.Excerpt) error) error {
	where, args := lectureFilter(ids)
	rows, err := s.db.QueryContext(ctx, `
		SELECT lecture_id, text, start_time, end_time
		FROM lecture_excerpts`+where+`
		ORDER BY lecture_id, start_time, id
	`, args...)
	if err != nil {
		return fmt.Errorf("querying excerpts: %w", err)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		var (
			lectureID        sql.NullInt64
			text, start, end sql.NullString
		)
		if err := rows.Scan(&lectureID, &text, &start, &end); err != nil {
			return fmt.Errorf("scanning excerpt: %w", err)
		}
		if field := nullField(lectureID, text, start, end); field != "" {
			return &fuser.ValidationError{Index: i, Field: field}
		}
		e := fuser.Excerpt{
			LectureID: lectureID.Int64,
			Text:      text.String,
			StartTime: start.String,
			EndTime:   end.String,
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}

func nullField(lectureID sql.NullInt64, text, start, end sql.NullString) string {
	switch {
	case !lectureID.Valid:
		return "lecture_id"
	case !text.Valid:
		return "text"
	case !start.Valid:
		return "start_time"
	case !end.Valid:
		return "end_time"
	}
	return ""
}

// ==================== Fused sentences ====================

// ReplaceFused deletes the previous fused rows of the lectures and inserts
// sentences, all or nothing.
func (s *Store) ReplaceFused(ctx context.Context, ids []int64, sentences []fuser.Sentence) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	where, args := lectureFilter(ids)
	if _, err := tx.ExecContext(ctx, "DELETE FROM fused_lecture_excerpts"+where, args...); err != nil {
		return fmt.Errorf("clearing fused sentences: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO fused_lecture_excerpts (lecture_id, text, start_time, end_time)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing fused insert: %w", err)
	}
	defer stmt.Close()

	for _, sent := range sentences {
		if _, err := stmt.ExecContext(ctx, sent.LectureID, sent.Text, sent.StartTime, sent.EndTime); err != nil {
			return fmt.Errorf("inserting fused sentence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing fused sentences: %w", err)
	}
	return nil
}

// FusedSentences returns a lecture's fused sentences in insertion order.
func (s *Store) FusedSentences(ctx context.Context, lectureID int64) ([]fuser.Sentence, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lecture_id, text, start_time, end_time
		FROM fused_lecture_excerpts WHERE lecture_id = ?
		ORDER BY id
	`, lectureID)
	if err != nil {
		return nil, fmt.Errorf("querying fused sentences: %w", err)
	}
	defer rows.Close()

	var sentences []fuser.Sentence
	for rows.Next() {
		var sent fuser.Sentence
		if err := rows.Scan(&sent.LectureID, &sent.Text, &sent.StartTime, &sent.EndTime); err != nil {
			return nil, fmt.Errorf("scanning fused sentence: %w", err)
		}
		sentences = append(sentences, sent)
	}
	return sentences, rows.Err()
}

// ==================== Helpers ====================

// lectureFilter builds " WHERE lecture_id IN (...)"; empty ids match all.
func lectureFilter(ids []int64) (string, []any) {
	if len(ids) == 0 {
		return "", nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return " WHERE lecture_id IN (" + strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",") + ")", args
}

func marshalList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, err
	}
	return list, nil
}
