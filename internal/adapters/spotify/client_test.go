package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
)

const searchFixture = `{
	"tracks": {
		"items": [
			{
				"id": "track1",
				"name": "Calm Song",
				"uri": "spotify:track:track1",
				"artists": [{"name": "Artist A"}, {"name": "Artist B"}],
				"album": {
					"id": "album1",
					"name": "Calm Album",
					"images": [
						{"url": "https://img.example/large.jpg", "width": 640, "height": 640},
						{"url": "https://img.example/medium.jpg", "width": 300, "height": 300}
					]
				},
				"external_urls": {"spotify": "https://open.spotify.com/track/track1"}
			},
			{
				"id": "track1",
				"name": "Calm Song (Remaster)",
				"uri": "spotify:track:track1",
				"artists": [{"name": "Artist A"}],
				"album": {"id": "album1", "name": "Calm Album"},
				"external_urls": {"spotify": "https://open.spotify.com/track/track1"}
			},
			{
				"id": "track2",
				"name": "Second Song",
				"uri": "spotify:track:track2",
				"artists": [{"name": "Artist C"}],
				"album": {"id": "album2", "name": "Other Album"},
				"external_urls": {"spotify": "https://open.spotify.com/track/track2"}
			}
		]
	}
}`

// TestClient_Search verifies mapping and duplicate collapse on the
// search endpoint.
func TestClient_Search(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	c := NewClient(nil, srv.URL)
	tracks, err := c.Search(context.Background(), "Calm Song (Official Video)")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if gotQuery != "calm song" {
		t.Fatalf("normalized query: got %q want %q", gotQuery, "calm song")
	}
	if len(tracks) != 2 {
		t.Fatalf("tracks: got %d want 2 (duplicate should collapse)", len(tracks))
	}

	first := tracks[0]
	if first.ID != "track1" || first.Provider != domain.ProviderSpotify {
		t.Fatalf("first track: %+v", first)
	}
	if first.Artist != "Artist A, Artist B" {
		t.Fatalf("artist join: got %q", first.Artist)
	}
	if first.CollectionID != "album1" {
		t.Fatalf("collection id: got %q", first.CollectionID)
	}
	if first.ArtworkURL != "https://img.example/medium.jpg" {
		t.Fatalf("artwork should prefer the medium image: got %q", first.ArtworkURL)
	}
	if first.URI != "spotify:track:track1" {
		t.Fatalf("uri: got %q", first.URI)
	}
}

// TestClient_Search_RetriesOn429 verifies the rate-limit response is
// retried and the eventual success is returned.
func TestClient_Search_RetriesOn429(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL, maxRetries: 3, baseBackoff: time.Millisecond}
	tracks, err := c.Search(context.Background(), "calm")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tracks) == 0 {
		t.Fatal("expected tracks after retry")
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("calls: got %d want 2", calls)
	}
}

// TestClient_Search_ServerError verifies exhausted retries surface as
// a gateway error.
func TestClient_Search_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL, maxRetries: 2, baseBackoff: time.Millisecond}
	_, err := c.Search(context.Background(), "calm")
	if !errors.Is(err, domain.ErrGateway) {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Calm Song (Official Video)", "calm song"},
		{"Song [Live] - Artist", "song artist"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
		{"ALL CAPS!!!", "all caps"},
	}
	for _, tc := range tests {
		if got := normalizeQuery(tc.input); got != tc.want {
			t.Errorf("normalizeQuery(%q): got %q want %q", tc.input, got, tc.want)
		}
	}
}

// TestLinker_AuthURL verifies the consent screen is always forced and
// the state round-trips.
func TestLinker_AuthURL(t *testing.T) {
	l := NewLinker("client-id", "secret", "http://localhost:8080/callback")

	u := l.AuthURL("state-123")
	for _, want := range []string{
		"https://accounts.spotify.com/authorize",
		"show_dialog=true",
		"state=state-123",
		"client_id=client-id",
	} {
		if !strings.Contains(u, want) {
			t.Errorf("auth url missing %q: %s", want, u)
		}
	}

	if l.Linked(context.Background()) {
		t.Fatal("fresh linker should not report linked")
	}
	if l.HTTPClient(context.Background()) != nil {
		t.Fatal("unlinked linker should return a nil client")
	}
}
