// Package sqlite provides the SQLite-backed implementation of the
// snapshot and activity storage ports.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
)

// Adapter implements the storage ports over one SQLite database.
type Adapter struct {
	db *sqlx.DB
}

// compile-time interface assertions
var (
	_ ports.SnapshotStore = (*Adapter)(nil)
	_ ports.ActivityStore = (*Adapter)(nil)
)

// NewAdapter opens the database and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sqlx.Connect("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite adapter: open: %w", err)
	}

	a := &Adapter{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite adapter: migration: %w", err)
	}
	return a, nil
}

// Close releases the database connection.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		track_key TEXT NOT NULL,
		visible INTEGER NOT NULL,
		ts TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS emotion_logs (
		id TEXT PRIMARY KEY,
		emotion TEXT NOT NULL,
		generation INTEGER NOT NULL,
		ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS song_history (
		id TEXT PRIMARY KEY,
		provider TEXT NOT NULL,
		external_key TEXT NOT NULL,
		title TEXT NOT NULL,
		artist TEXT,
		album TEXT,
		url TEXT,
		ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS liked_songs (
		id TEXT PRIMARY KEY,
		provider TEXT NOT NULL,
		external_key TEXT NOT NULL,
		title TEXT NOT NULL,
		artist TEXT,
		album TEXT,
		url TEXT,
		ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (provider, external_key)
	);
	`
	_, err := a.db.Exec(schema)
	return err
}

type snapshotRow struct {
	TrackKey string    `db:"track_key"`
	Visible  bool      `db:"visible"`
	Ts       time.Time `db:"ts"`
}

// Save upserts the single playback snapshot row.
func (a *Adapter) Save(ctx context.Context, s domain.PersistedSnapshot) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, track_key, visible, ts) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET track_key=excluded.track_key, visible=excluded.visible, ts=excluded.ts
	`, s.TrackKey, s.Visible, s.Timestamp)
	if err != nil {
		return fmt.Errorf("sqlite adapter: save snapshot: %w", err)
	}
	return nil
}

// Load returns the playback snapshot, or domain.ErrNotFound when none
// was ever written.
func (a *Adapter) Load(ctx context.Context) (domain.PersistedSnapshot, error) {
	var row snapshotRow
	err := a.db.GetContext(ctx, &row, "SELECT track_key, visible, ts FROM snapshots WHERE id = 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PersistedSnapshot{}, domain.ErrNotFound
		}
		return domain.PersistedSnapshot{}, fmt.Errorf("sqlite adapter: load snapshot: %w", err)
	}
	return domain.PersistedSnapshot{
		TrackKey:  row.TrackKey,
		Visible:   row.Visible,
		Timestamp: row.Ts,
	}, nil
}

// Delete removes the playback snapshot.
func (a *Adapter) Delete(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = 1"); err != nil {
		return fmt.Errorf("sqlite adapter: delete snapshot: %w", err)
	}
	return nil
}

// LogEmotion appends one detected emotion for a session generation.
func (a *Adapter) LogEmotion(ctx context.Context, emotion string, generation uint64) error {
	_, err := a.db.ExecContext(ctx,
		"INSERT INTO emotion_logs (id, emotion, generation) VALUES (?, ?, ?)",
		uuid.NewString(), emotion, generation)
	if err != nil {
		return fmt.Errorf("sqlite adapter: log emotion: %w", err)
	}
	return nil
}

type trackRow struct {
	Provider    string         `db:"provider"`
	ExternalKey string         `db:"external_key"`
	Title       string         `db:"title"`
	Artist      sql.NullString `db:"artist"`
	Album       sql.NullString `db:"album"`
	URL         sql.NullString `db:"url"`
}

func (r trackRow) toDomain() domain.Track {
	t := domain.Track{
		ID:       r.ExternalKey,
		Title:    r.Title,
		Provider: domain.Provider(r.Provider),
	}
	if r.Artist.Valid {
		t.Artist = r.Artist.String
	}
	if r.Album.Valid {
		t.Album = r.Album.String
	}
	if r.URL.Valid {
		t.URL = r.URL.String
	}
	return t
}

// AddHistory appends a played track to the song history.
func (a *Adapter) AddHistory(ctx context.Context, t domain.Track) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO song_history (id, provider, external_key, title, artist, album, url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), string(t.Provider), t.Key(), t.Title, t.Artist, t.Album, t.URL)
	if err != nil {
		return fmt.Errorf("sqlite adapter: add history: %w", err)
	}
	return nil
}

// History lists recently played tracks, newest first.
func (a *Adapter) History(ctx context.Context) ([]domain.Track, error) {
	var rows []trackRow
	err := a.db.SelectContext(ctx, &rows, `
		SELECT provider, external_key, title, artist, album, url
		FROM song_history ORDER BY ts DESC LIMIT 100
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite adapter: list history: %w", err)
	}
	tracks := make([]domain.Track, 0, len(rows))
	for _, r := range rows {
		tracks = append(tracks, r.toDomain())
	}
	return tracks, nil
}

// Like records a liked song; liking twice is a no-op thanks to the
// unique provider+key constraint.
func (a *Adapter) Like(ctx context.Context, t domain.Track) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO liked_songs (id, provider, external_key, title, artist, album, url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(provider, external_key) DO NOTHING
	`, uuid.NewString(), string(t.Provider), t.Key(), t.Title, t.Artist, t.Album, t.URL)
	if err != nil {
		return fmt.Errorf("sqlite adapter: like song: %w", err)
	}
	return nil
}

// Unlike removes a liked song; domain.ErrNotFound when it was never
// liked.
func (a *Adapter) Unlike(ctx context.Context, provider domain.Provider, key string) error {
	res, err := a.db.ExecContext(ctx,
		"DELETE FROM liked_songs WHERE provider = ? AND external_key = ?",
		string(provider), key)
	if err != nil {
		return fmt.Errorf("sqlite adapter: unlike song: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Liked lists liked songs, newest first.
func (a *Adapter) Liked(ctx context.Context) ([]domain.Track, error) {
	var rows []trackRow
	err := a.db.SelectContext(ctx, &rows, `
		SELECT provider, external_key, title, artist, album, url
		FROM liked_songs ORDER BY ts DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite adapter: list liked: %w", err)
	}
	tracks := make([]domain.Track, 0, len(rows))
	for _, r := range rows {
		tracks = append(tracks, r.toDomain())
	}
	return tracks, nil
}
