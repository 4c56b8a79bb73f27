package ports

import (
	"context"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
)

// SnapshotStore persists the time-bounded playback visibility snapshot
// that keeps a backgrounded player from being torn down.
type SnapshotStore interface {
	Save(ctx context.Context, s domain.PersistedSnapshot) error
	// Load returns domain.ErrNotFound when no snapshot exists.
	Load(ctx context.Context) (domain.PersistedSnapshot, error)
	Delete(ctx context.Context) error
}

// ActivityStore records listening activity: detected emotions, played
// tracks, and liked songs.
type ActivityStore interface {
	LogEmotion(ctx context.Context, emotion string, generation uint64) error
	AddHistory(ctx context.Context, t domain.Track) error
	History(ctx context.Context) ([]domain.Track, error)
	Like(ctx context.Context, t domain.Track) error
	// Unlike returns domain.ErrNotFound when the song was never liked.
	Unlike(ctx context.Context, provider domain.Provider, key string) error
	Liked(ctx context.Context) ([]domain.Track, error)
}
