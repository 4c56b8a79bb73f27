package saavn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
)

const searchFixture = `{
	"data": [
		{
			"id": "song1",
			"name": "Shanti",
			"url": "https://www.jiosaavn.com/song/shanti/abc",
			"image": [
				{"link": "https://img.example/50x50.jpg"},
				{"link": "https://img.example/500x500.jpg"}
			],
			"album": {"name": "Peace"},
			"artists": [{"name": "Singer One"}, {"name": "Singer Two"}]
		},
		{
			"id": "song1",
			"name": "Shanti (duplicate)",
			"url": "https://www.jiosaavn.com/song/shanti/abc"
		},
		{
			"id": "song2",
			"name": "Dhun",
			"url": "https://www.jiosaavn.com/song/dhun/def",
			"image": "https://img.example/single.jpg"
		}
	]
}`

// TestClient_Search verifies mapping into the canonical track shape
// and duplicate collapse.
func TestClient_Search(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	tracks, err := c.Search(context.Background(), "relaxing Hindi")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if gotQuery != "relaxing Hindi" {
		t.Fatalf("query: got %q", gotQuery)
	}
	if len(tracks) != 2 {
		t.Fatalf("tracks: got %d want 2 (duplicate should collapse)", len(tracks))
	}

	first := tracks[0]
	if first.ID != "song1" || first.Provider != domain.ProviderJioSaavn {
		t.Fatalf("first track: %+v", first)
	}
	if first.Artist != "Singer One, Singer Two" {
		t.Fatalf("artist join: got %q", first.Artist)
	}
	if first.ArtworkURL != "https://img.example/500x500.jpg" {
		t.Fatalf("artwork should be the last variant: got %q", first.ArtworkURL)
	}
	if first.URL == "" {
		t.Fatal("direct url missing")
	}

	if tracks[1].ArtworkURL != "https://img.example/single.jpg" {
		t.Fatalf("bare string image: got %q", tracks[1].ArtworkURL)
	}
}

func TestClient_Search_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	_, err := c.Search(context.Background(), "anything")
	if !errors.Is(err, domain.ErrGateway) {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

// TestFlexImage_Shapes verifies the tolerant image decoding across the
// shapes the catalog returns.
func TestFlexImage_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantBest string
	}{
		{"bare string", `"https://img.example/a.jpg"`, "https://img.example/a.jpg"},
		{"object with link", `{"link": "https://img.example/b.jpg"}`, "https://img.example/b.jpg"},
		{"object with url", `{"url": "https://img.example/c.jpg"}`, "https://img.example/c.jpg"},
		{"variant list", `[{"link": "https://img.example/lo.jpg"}, {"url": "https://img.example/hi.jpg"}]`, "https://img.example/hi.jpg"},
		{"empty list", `[]`, ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var img FlexImage
			if err := img.UnmarshalJSON([]byte(tc.raw)); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := img.Best(); got != tc.wantBest {
				t.Fatalf("best: got %q want %q", got, tc.wantBest)
			}
		})
	}
}
