package domain

// Queue is the ordered, currently-active playback list plus a position
// pointer. Invariant: CurrentIndex is always in [0, len) while the
// queue is non-empty, so Current never fails on a non-empty queue.
type Queue struct {
	Tracks       []Track
	CurrentIndex int
}

// NewQueue builds a queue from context tracks positioned at the entry
// matching start's composite key. An empty context collapses to a
// singleton queue containing only start. If start's key is not found in
// the context, it is prepended so the invariant holds.
func NewQueue(start Track, context []Track) Queue {
	if len(context) == 0 {
		return Queue{Tracks: []Track{start}, CurrentIndex: 0}
	}
	q := Queue{Tracks: context}
	if idx := q.IndexOf(start.Key()); idx >= 0 {
		q.CurrentIndex = idx
		return q
	}
	q.Tracks = append([]Track{start}, context...)
	q.CurrentIndex = 0
	return q
}

// Current returns the currently playing track, or nil if the queue is
// empty.
func (q *Queue) Current() *Track {
	if q == nil || len(q.Tracks) == 0 || q.CurrentIndex < 0 || q.CurrentIndex >= len(q.Tracks) {
		return nil
	}
	return &q.Tracks[q.CurrentIndex]
}

// IndexOf returns the index of the first track whose composite key
// equals key, or -1. Duplicate keys deterministically collapse to the
// first occurrence.
func (q *Queue) IndexOf(key string) int {
	if key == "" {
		return -1
	}
	for i, t := range q.Tracks {
		if t.Key() == key {
			return i
		}
	}
	return -1
}

// Advance moves the position forward by one, clamped at the last entry.
// Returns false when the call was a boundary no-op.
func (q *Queue) Advance() bool {
	if q.CurrentIndex >= len(q.Tracks)-1 {
		return false
	}
	q.CurrentIndex++
	return true
}

// Rewind moves the position back by one, clamped at zero. Returns false
// when the call was a boundary no-op.
func (q *Queue) Rewind() bool {
	if q.CurrentIndex <= 0 || len(q.Tracks) == 0 {
		return false
	}
	q.CurrentIndex--
	return true
}

// Len returns the number of tracks in the queue.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Tracks)
}

// IsEmpty reports whether the queue holds no tracks.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}
