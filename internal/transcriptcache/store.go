package transcriptcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"subtext/internal/captions"
)

// Store caches decoded transcripts in SQLite so repeated invocations skip
// the upstream tiers entirely. One row per (videoID, languageCode, auto).
type Store struct {
	db   *sql.DB
	path string
}

// Entry is one cached transcript.
type Entry struct {
	VideoID       string
	LanguageCode  string
	AutoGenerated bool
	Source        string
	Segments      []captions.Segment
	FetchedAt     time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
    video_id      TEXT NOT NULL,
    language_code TEXT NOT NULL,
    auto_generated INTEGER NOT NULL,
    source        TEXT NOT NULL,
    segments      TEXT NOT NULL,
    fetched_at    TEXT NOT NULL,
    PRIMARY KEY (video_id, language_code, auto_generated)
);
`

// Open initializes or connects to the cache database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("transcript cache: ensure directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("transcript cache: open db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("transcript cache: apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("transcript cache: apply schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the cached transcript for a track, or ok=false on a miss.
func (s *Store) Get(ctx context.Context, videoID, languageCode string, auto bool) (Entry, bool, error) {
	var entry Entry
	var segmentsJSON string
	var fetchedAt string
	row := s.db.QueryRowContext(ctx,
		`SELECT source, segments, fetched_at FROM transcripts
         WHERE video_id = ? AND language_code = ? AND auto_generated = ?`,
		videoID, languageCode, boolToInt(auto),
	)
	if err := row.Scan(&entry.Source, &segmentsJSON, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("transcript cache: query: %w", err)
	}
	if err := json.Unmarshal([]byte(segmentsJSON), &entry.Segments); err != nil {
		return Entry{}, false, fmt.Errorf("transcript cache: decode segments: %w", err)
	}
	entry.VideoID = videoID
	entry.LanguageCode = languageCode
	entry.AutoGenerated = auto
	if parsed, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
		entry.FetchedAt = parsed
	}
	return entry, true, nil
}

// Put stores (or replaces) the transcript for a track.
func (s *Store) Put(ctx context.Context, entry Entry) error {
	encoded, err := json.Marshal(entry.Segments)
	if err != nil {
		return fmt.Errorf("transcript cache: encode segments: %w", err)
	}
	fetchedAt := entry.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transcripts (video_id, language_code, auto_generated, source, segments, fetched_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT (video_id, language_code, auto_generated)
         DO UPDATE SET source = excluded.source, segments = excluded.segments, fetched_at = excluded.fetched_at`,
		entry.VideoID, entry.LanguageCode, boolToInt(entry.AutoGenerated),
		entry.Source, string(encoded), fetchedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("transcript cache: upsert: %w", err)
	}
	return nil
}

// Purge removes every cached transcript, returning the number of rows
// deleted.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transcripts`)
	if err != nil {
		return 0, fmt.Errorf("transcript cache: purge: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return deleted, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
