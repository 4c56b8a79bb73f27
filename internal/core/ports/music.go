package ports

import (
	"context"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
)

// RecommendationQuery carries the resolved session inputs for one
// recommendation fetch.
type RecommendationQuery struct {
	Emotion   string
	Language  string
	Wellbeing bool
}

// SearchGateway is the abstract contract over a track provider's
// search. Every payload is normalized into the canonical domain.Track
// before it leaves the gateway.
type SearchGateway interface {
	Search(ctx context.Context, query string) ([]domain.Track, error)
}

// RecommendationGateway turns a session's (emotion, language,
// wellbeing) triple into an ordered track list.
type RecommendationGateway interface {
	Recommendations(ctx context.Context, q RecommendationQuery) ([]domain.Track, error)
}
