package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
)

// ErrQueueEmpty is returned by navigation on an empty queue.
var ErrQueueEmpty = errors.New("player: queue is empty")

// PlayerState is a read-only view of the queue manager for rendering.
// Embed/ExternalURL describe the current track's resolved playback
// target; Outcome names which resolver branch produced it.
type PlayerState struct {
	Queue       domain.Queue
	Visible     bool
	Embed       *domain.EmbedTarget
	ExternalURL string
	Outcome     string
}

// Player is the single source of truth for "what is currently
// playing". It survives view navigation: every view shares this one
// instance and mutates it only through the defined operations. Embed
// resolution for the current track runs asynchronously and never
// blocks queue operations.
type Player struct {
	snapshots ports.SnapshotStore
	activity  ActivitySink
	now       func() time.Time

	mu          sync.Mutex
	queue       domain.Queue
	visible     bool
	resolveSeq  uint64
	embed       *domain.EmbedTarget
	externalURL string
	outcome     string
}

// NewPlayer constructs the queue manager. activity may be nil.
func NewPlayer(snapshots ports.SnapshotStore, activity ActivitySink) *Player {
	return &Player{
		snapshots: snapshots,
		activity:  activity,
		now:       time.Now,
	}
}

// PlayItem replaces the queue with queueContext (or a singleton queue
// of track when the context is empty), positions it at track via
// composite-key lookup, marks the player visible, persists a fresh
// snapshot, and kicks off asynchronous embed resolution.
func (p *Player) PlayItem(ctx context.Context, track domain.Track, queueContext []domain.Track) (PlayerState, error) {
	if !track.HasIdentifier() {
		return p.State(), &domain.NotEmbeddableError{TrackKey: ""}
	}

	p.mu.Lock()
	p.queue = domain.NewQueue(track, queueContext)
	p.visible = true
	current := *p.queue.Current()
	seq := p.beginResolveLocked()
	p.mu.Unlock()

	p.writeSnapshot(ctx, current)
	if p.activity != nil {
		p.activity.RecordPlay(current)
	}
	go p.resolve(seq, current)
	return p.State(), nil
}

// Next moves the position forward by one. At the last entry it is a
// no-op; currentIndex never leaves [0, len).
func (p *Player) Next(ctx context.Context) (PlayerState, error) {
	return p.step(ctx, func(q *domain.Queue) bool { return q.Advance() })
}

// Previous moves the position back by one, clamped at the first entry.
func (p *Player) Previous(ctx context.Context) (PlayerState, error) {
	return p.step(ctx, func(q *domain.Queue) bool { return q.Rewind() })
}

func (p *Player) step(ctx context.Context, move func(*domain.Queue) bool) (PlayerState, error) {
	p.mu.Lock()
	if p.queue.IsEmpty() {
		p.mu.Unlock()
		return p.State(), ErrQueueEmpty
	}
	if !move(&p.queue) {
		// Boundary no-op: position and rendered embed are unchanged.
		p.mu.Unlock()
		return p.State(), nil
	}
	current := *p.queue.Current()
	seq := p.beginResolveLocked()
	p.mu.Unlock()

	p.writeSnapshot(ctx, current)
	if p.activity != nil {
		p.activity.RecordPlay(current)
	}
	go p.resolve(seq, current)
	return p.State(), nil
}

// Close clears the queue, position and visibility flag, and deletes
// the persisted snapshot.
func (p *Player) Close(ctx context.Context) error {
	p.mu.Lock()
	p.queue = domain.Queue{}
	p.visible = false
	p.embed = nil
	p.externalURL = ""
	p.outcome = ""
	p.resolveSeq++ // invalidate any in-flight resolution
	p.mu.Unlock()

	if err := p.snapshots.Delete(ctx); err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Printf("WARN player: delete snapshot: %v", err)
	}
	return nil
}

// Current returns the currently playing track, or nil when nothing
// plays.
func (p *Player) Current() *domain.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur := p.queue.Current()
	if cur == nil {
		return nil
	}
	c := *cur
	return &c
}

// State returns a copy of the player's rendering state.
func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := PlayerState{
		Queue: domain.Queue{
			Tracks:       append([]domain.Track(nil), p.queue.Tracks...),
			CurrentIndex: p.queue.CurrentIndex,
		},
		Visible:     p.visible,
		ExternalURL: p.externalURL,
		Outcome:     p.outcome,
	}
	if p.embed != nil {
		e := *p.embed
		st.Embed = &e
	}
	return st
}

// Bind subscribes the player to the injected lifecycle-event port.
// Hidden/blur signals refresh the snapshot timestamp so a backgrounded
// tab is not reaped. Returns when ctx is cancelled or the event source
// closes.
func (p *Player) Bind(ctx context.Context, events ports.LifecycleEvents) {
	ch := events.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			p.HandleLifecycle(ctx, ev)
		}
	}
}

// HandleLifecycle applies one lifecycle event. Only hidden and blur
// carry meaning: they re-stamp the snapshot of a visible player.
func (p *Player) HandleLifecycle(ctx context.Context, ev ports.LifecycleEvent) {
	if ev != ports.EventHidden && ev != ports.EventBlur {
		return
	}
	p.mu.Lock()
	cur := p.queue.Current()
	visible := p.visible
	var track domain.Track
	if cur != nil {
		track = *cur
	}
	p.mu.Unlock()

	if cur == nil || !visible {
		return
	}
	p.writeSnapshot(ctx, track)
}

// Restore loads the persisted snapshot and reports whether it is fresh
// enough to advise restoring a visible player. Restoration itself is
// advisory and left to the presentation layer.
func (p *Player) Restore(ctx context.Context) (domain.PersistedSnapshot, bool, error) {
	snap, err := p.snapshots.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PersistedSnapshot{}, false, nil
		}
		return domain.PersistedSnapshot{}, false, err
	}
	return snap, snap.Visible && snap.Fresh(p.now()), nil
}

func (p *Player) writeSnapshot(ctx context.Context, track domain.Track) {
	snap := domain.PersistedSnapshot{
		TrackKey:  track.Key(),
		Visible:   true,
		Timestamp: p.now(),
	}
	// Snapshot persistence is best-effort; playback never fails on it.
	if err := p.snapshots.Save(ctx, snap); err != nil {
		log.Printf("WARN player: save snapshot: %v", err)
	}
}

func (p *Player) beginResolveLocked() uint64 {
	p.resolveSeq++
	p.embed = nil
	p.externalURL = ""
	p.outcome = ""
	return p.resolveSeq
}

// resolve runs the provider resolution ladder off the mutation path.
// A result is applied only if no later queue mutation superseded it;
// it affects rendering of the current track, never queue state.
func (p *Player) resolve(seq uint64, track domain.Track) {
	target, err := domain.ResolveEmbed(track)

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.resolveSeq {
		return
	}
	if err != nil {
		var ne *domain.NotEmbeddableError
		if errors.As(err, &ne) {
			p.externalURL = ne.ExternalURL
			if ne.ExternalURL == "" {
				p.outcome = "no_playable_link"
			} else {
				p.outcome = "external_link"
			}
			return
		}
		log.Printf("WARN player: resolve %q: %v", track.Key(), err)
		return
	}
	p.embed = &target
	p.outcome = target.Kind.String()
}
