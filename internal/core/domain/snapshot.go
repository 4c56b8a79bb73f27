package domain

import "time"

// SnapshotTTL bounds how long a persisted playback snapshot may be used
// to auto-restore a visible player.
const SnapshotTTL = 5 * time.Minute

// PersistedSnapshot is the small record that keeps the player
// visible/active across tab visibility changes.
type PersistedSnapshot struct {
	TrackKey  string
	Visible   bool
	Timestamp time.Time
}

// Fresh reports whether the snapshot is still within its validity
// window at the given instant. A stale snapshot must not trigger
// auto-restoration.
func (s PersistedSnapshot) Fresh(now time.Time) bool {
	return now.Sub(s.Timestamp) < SnapshotTTL
}
