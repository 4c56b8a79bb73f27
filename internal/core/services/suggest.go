package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
)

// ErrSuperseded marks a suggestion request that lost to a newer
// keystroke. Its result must be dropped, never rendered.
var ErrSuperseded = errors.New("suggest: superseded by newer input")

// DefaultSuggestDebounce is the window a new keystroke has to cancel
// the previous suggestion request.
const DefaultSuggestDebounce = 300 * time.Millisecond

// Suggester debounces autosuggest input against the search gateway.
// Each input cancels and replaces the pending delayed task (timers are
// never stacked), every fired request carries a monotonically
// increasing sequence number, and a response whose sequence is not the
// latest issued is discarded so out-of-order results cannot overwrite
// newer ones.
type Suggester struct {
	gateway ports.SearchGateway
	delay   time.Duration

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	cancel chan struct{}
}

// NewSuggester constructs a Suggester; a non-positive delay falls back
// to DefaultSuggestDebounce.
func NewSuggester(gateway ports.SearchGateway, delay time.Duration) *Suggester {
	if delay <= 0 {
		delay = DefaultSuggestDebounce
	}
	return &Suggester{gateway: gateway, delay: delay}
}

// Suggest registers one input in the sequence and, once the debounce
// window passes without newer input, fires the search. Superseded
// calls return ErrSuperseded. Gateway failures degrade to an empty
// list with a GatewayError for logging at the edge.
func (s *Suggester) Suggest(ctx context.Context, query string) ([]domain.Track, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		close(s.cancel)
	}
	cancel := make(chan struct{})
	s.cancel = cancel
	fire := make(chan struct{})
	s.timer = time.AfterFunc(s.delay, func() { close(fire) })
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("suggest: %w", ctx.Err())
	case <-cancel:
		return nil, ErrSuperseded
	case <-fire:
	}

	if !s.isLatest(seq) {
		return nil, ErrSuperseded
	}

	tracks, err := s.gateway.Search(ctx, query)

	if !s.isLatest(seq) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, &domain.GatewayError{Gateway: "search", Err: err}
	}
	return tracks, nil
}

func (s *Suggester) isLatest(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.seq
}

// Cancel stops any pending delayed task without firing it.
func (s *Suggester) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		close(s.cancel)
		s.cancel = nil
	}
	s.seq++
}
