package music

import (
	"context"
	"errors"
	"testing"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
)

// TestGateway_Recommendations verifies query construction from the
// session inputs, including the wellbeing rewrite.
func TestGateway_Recommendations(t *testing.T) {
	tests := []struct {
		name      string
		query     ports.RecommendationQuery
		wantQuery string
	}{
		{
			name:      "raw emotion without wellbeing",
			query:     ports.RecommendationQuery{Emotion: "happy", Language: "Hindi"},
			wantQuery: "happy Hindi",
		},
		{
			name:      "wellbeing rewrites the emotion",
			query:     ports.RecommendationQuery{Emotion: "stressed", Language: "English", Wellbeing: true},
			wantQuery: "relaxing English",
		},
		{
			name:      "wellbeing with unmapped emotion passes through",
			query:     ports.RecommendationQuery{Emotion: "surprise", Language: "Tamil", Wellbeing: true},
			wantQuery: "surprise Tamil",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			secondary := &stubSearch{tracks: []domain.Track{{ID: "t1"}}}
			g := NewGateway(&stubSearch{}, secondary, nil)

			tracks, err := g.Recommendations(context.Background(), tc.query)
			if err != nil {
				t.Fatalf("recommendations: %v", err)
			}
			if len(tracks) != 1 {
				t.Fatalf("tracks: got %d", len(tracks))
			}
			if secondary.gotQuery != tc.wantQuery {
				t.Fatalf("query: got %q want %q", secondary.gotQuery, tc.wantQuery)
			}
		})
	}
}

// TestGateway_Search verifies provider routing: primary for a linked
// account, secondary otherwise or on primary failure.
func TestGateway_Search(t *testing.T) {
	tests := []struct {
		name          string
		linked        bool
		primaryErr    error
		wantPrimary   bool
		wantSecondary bool
	}{
		{
			name:          "unlinked goes straight to secondary",
			linked:        false,
			wantSecondary: true,
		},
		{
			name:        "linked uses primary",
			linked:      true,
			wantPrimary: true,
		},
		{
			name:          "linked falls back on primary failure",
			linked:        true,
			primaryErr:    errors.New("rate limited"),
			wantPrimary:   true,
			wantSecondary: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			primary := &stubSearch{tracks: []domain.Track{{ID: "p1"}}, err: tc.primaryErr}
			secondary := &stubSearch{tracks: []domain.Track{{ID: "s1"}}}
			g := NewGateway(primary, secondary, &stubLinker{linked: tc.linked})

			tracks, err := g.Search(context.Background(), "calm")
			if err != nil {
				t.Fatalf("search: %v", err)
			}

			if (primary.gotQuery != "") != tc.wantPrimary {
				t.Fatalf("primary called=%v want %v", primary.gotQuery != "", tc.wantPrimary)
			}
			if (secondary.gotQuery != "") != tc.wantSecondary {
				t.Fatalf("secondary called=%v want %v", secondary.gotQuery != "", tc.wantSecondary)
			}

			wantID := "p1"
			if tc.wantSecondary {
				wantID = "s1"
			}
			if len(tracks) != 1 || tracks[0].ID != wantID {
				t.Fatalf("tracks: %+v want id %s", tracks, wantID)
			}
		})
	}
}

// --- Stubs ---

type stubSearch struct {
	tracks []domain.Track
	err    error

	gotQuery string
}

func (s *stubSearch) Search(ctx context.Context, query string) ([]domain.Track, error) {
	s.gotQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return s.tracks, nil
}

type stubLinker struct {
	linked bool
}

func (l *stubLinker) Linked(ctx context.Context) bool { return l.linked }

func (l *stubLinker) AuthURL(state string) string { return "" }

func (l *stubLinker) Exchange(ctx context.Context, code string) error { return nil }
