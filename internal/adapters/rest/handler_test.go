package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
	"github.com/Mukul7Raj/MoodTune/internal/core/services"
)

func newTestHandler() (*Handler, *stubActivityStore) {
	activity := &stubActivityStore{}
	sessions := services.NewSessionMachine(
		&stubCamera{},
		&stubClassifier{emotion: "happy"},
		&stubGateway{tracks: []domain.Track{{ID: "t1", Title: "Song", Provider: domain.ProviderSpotify}}},
		nil, nil, false,
	)
	player := services.NewPlayer(&stubSnapshotStore{}, nil)
	suggester := services.NewSuggester(&stubGateway{tracks: []domain.Track{{ID: "s1", Provider: domain.ProviderJioSaavn}}}, time.Millisecond)
	return NewHandler(sessions, player, suggester, nil, activity, NewLifecycleHub()), activity
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Health(t *testing.T) {
	h, _ := newTestHandler()
	rec := doJSON(t, h.Router(), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
}

// TestHandler_SessionFlow drives detect and language selection through
// the HTTP surface.
func TestHandler_SessionFlow(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/session/detect", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("detect status: got %d body %s", rec.Code, rec.Body)
	}
	var session sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if session.State != "language_prompt" || session.DetectedEmotion != "happy" {
		t.Fatalf("session after detect: %+v", session)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/session/language", map[string]string{"language": "Hindi"})
	if rec.Code != http.StatusOK {
		t.Fatalf("language status: got %d body %s", rec.Code, rec.Body)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if session.State != "ready" || len(session.Tracks) != 1 {
		t.Fatalf("session after language: %+v", session)
	}

	// Unsupported language is a client error.
	rec = doJSON(t, router, http.MethodPost, "/api/session/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status: got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/api/session/language", map[string]string{"language": "Hindi"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("language from idle: got %d want 409", rec.Code)
	}
}

func TestHandler_PlayerFlow(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()

	play := map[string]any{
		"track": trackJSON{ID: "b", Provider: "spotify"},
		"queueContext": []trackJSON{
			{ID: "a", Provider: "spotify"},
			{ID: "b", Provider: "spotify"},
		},
	}
	rec := doJSON(t, router, http.MethodPost, "/api/player/play", play)
	if rec.Code != http.StatusOK {
		t.Fatalf("play status: got %d body %s", rec.Code, rec.Body)
	}
	var state playerJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.CurrentIndex != 1 || !state.Visible || len(state.Tracks) != 2 {
		t.Fatalf("player state: %+v", state)
	}

	// At the last entry next is a boundary no-op.
	rec = doJSON(t, router, http.MethodPost, "/api/player/next", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("next status: got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.CurrentIndex != 1 {
		t.Fatalf("index after clamped next: got %d", state.CurrentIndex)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/player/close", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("close status: got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/api/player/next", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("next on empty queue: got %d want 409", rec.Code)
	}
}

func TestHandler_Search(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()

	rec := doJSON(t, router, http.MethodGet, "/api/search?q=calm", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search status: got %d body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("search without query: got %d want 400", rec.Code)
	}
}

func TestHandler_LikedSongs(t *testing.T) {
	h, activity := newTestHandler()
	router := h.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/songs/liked", trackJSON{ID: "t1", Title: "Fav", Provider: "spotify"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("like status: got %d body %s", rec.Code, rec.Body)
	}
	if len(activity.liked) != 1 {
		t.Fatalf("liked rows: got %d", len(activity.liked))
	}

	rec = doJSON(t, router, http.MethodPost, "/api/songs/liked", trackJSON{Title: "no identifier"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("like without identifier: got %d want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/songs/liked", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("liked status: got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/songs/liked/spotify/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unlike missing: got %d want 404", rec.Code)
	}
}

func TestHandler_Lifecycle(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()

	ch := h.lifecycle.Subscribe()

	rec := doJSON(t, router, http.MethodPost, "/api/lifecycle", map[string]string{"event": "hidden"})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("lifecycle status: got %d", rec.Code)
	}

	select {
	case ev := <-ch:
		if ev != ports.EventHidden {
			t.Fatalf("event: got %s", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered to subscriber")
	}

	rec = doJSON(t, router, http.MethodPost, "/api/lifecycle", map[string]string{"event": "bogus"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown event: got %d want 400", rec.Code)
	}
}

func TestHandler_SpotifyStatusUnconfigured(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()

	rec := doJSON(t, router, http.MethodGet, "/api/spotify/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var body struct {
		Linked bool `json:"linked"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Linked {
		t.Fatal("no linker configured, should not be linked")
	}

	rec = doJSON(t, router, http.MethodGet, "/api/spotify/login-url", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("login-url without linker: got %d want 503", rec.Code)
	}
}

// --- Stubs ---

type stubCamera struct{}

func (c *stubCamera) RequestPermission(ctx context.Context) (domain.PermissionState, error) {
	return domain.PermissionGranted, nil
}

func (c *stubCamera) StartStream(ctx context.Context) error { return nil }

func (c *stubCamera) CaptureFrame(ctx context.Context) (domain.Frame, error) {
	return domain.Frame{Data: []byte{1}}, nil
}

func (c *stubCamera) StopStream() error { return nil }

type stubClassifier struct {
	emotion string
}

func (c *stubClassifier) Classify(ctx context.Context, frame domain.Frame) (ports.Classification, error) {
	return ports.Classification{Emotion: c.emotion, Confidence: 0.9}, nil
}

type stubGateway struct {
	tracks []domain.Track
}

func (g *stubGateway) Search(ctx context.Context, query string) ([]domain.Track, error) {
	return g.tracks, nil
}

func (g *stubGateway) Recommendations(ctx context.Context, q ports.RecommendationQuery) ([]domain.Track, error) {
	return g.tracks, nil
}

type stubSnapshotStore struct {
	snap *domain.PersistedSnapshot
}

func (s *stubSnapshotStore) Save(ctx context.Context, snap domain.PersistedSnapshot) error {
	s.snap = &snap
	return nil
}

func (s *stubSnapshotStore) Load(ctx context.Context) (domain.PersistedSnapshot, error) {
	if s.snap == nil {
		return domain.PersistedSnapshot{}, domain.ErrNotFound
	}
	return *s.snap, nil
}

func (s *stubSnapshotStore) Delete(ctx context.Context) error {
	s.snap = nil
	return nil
}

type stubActivityStore struct {
	liked   []domain.Track
	history []domain.Track
}

func (s *stubActivityStore) LogEmotion(ctx context.Context, emotion string, generation uint64) error {
	return nil
}

func (s *stubActivityStore) AddHistory(ctx context.Context, t domain.Track) error {
	s.history = append(s.history, t)
	return nil
}

func (s *stubActivityStore) History(ctx context.Context) ([]domain.Track, error) {
	return s.history, nil
}

func (s *stubActivityStore) Like(ctx context.Context, t domain.Track) error {
	s.liked = append(s.liked, t)
	return nil
}

func (s *stubActivityStore) Unlike(ctx context.Context, provider domain.Provider, key string) error {
	for i, t := range s.liked {
		if t.Provider == provider && t.Key() == key {
			s.liked = append(s.liked[:i], s.liked[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubActivityStore) Liked(ctx context.Context) ([]domain.Track, error) {
	return s.liked, nil
}
