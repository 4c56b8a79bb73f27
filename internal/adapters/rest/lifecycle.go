package rest

import (
	"net/http"
	"sync"

	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
)

// LifecycleHub fans client lifecycle signals out to subscribers. The
// client posts hidden/visible/blur/focus transitions; the player
// subscribes to refresh its snapshot.
type LifecycleHub struct {
	mu   sync.Mutex
	subs []chan ports.LifecycleEvent
}

// compile-time interface assertion
var _ ports.LifecycleEvents = (*LifecycleHub)(nil)

// NewLifecycleHub constructs an empty hub.
func NewLifecycleHub() *LifecycleHub {
	return &LifecycleHub{}
}

// Subscribe registers a new listener channel.
func (hub *LifecycleHub) Subscribe() <-chan ports.LifecycleEvent {
	ch := make(chan ports.LifecycleEvent, 8)
	hub.mu.Lock()
	hub.subs = append(hub.subs, ch)
	hub.mu.Unlock()
	return ch
}

// Publish delivers the event to every subscriber without blocking; a
// slow subscriber misses events rather than stalling the request.
func (hub *LifecycleHub) Publish(ev ports.LifecycleEvent) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for _, ch := range hub.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

var lifecycleEvents = map[string]ports.LifecycleEvent{
	"hidden":  ports.EventHidden,
	"visible": ports.EventVisible,
	"blur":    ports.EventBlur,
	"focus":   ports.EventFocus,
}

func (h *Handler) lifecycleEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Event string `json:"event"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	ev, ok := lifecycleEvents[body.Event]
	if !ok {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown lifecycle event"})
		return
	}
	h.lifecycle.Publish(ev)
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
