// Package music composes the provider adapters into the single
// recommendation/search gateway the core consumes: Spotify when an
// account is linked, JioSaavn otherwise or when Spotify fails.
package music

import (
	"context"
	"fmt"
	"log"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
)

// Gateway routes queries to the primary or secondary provider.
type Gateway struct {
	primary   ports.SearchGateway
	secondary ports.SearchGateway
	linker    ports.AccountLinker
}

// compile-time interface assertions
var (
	_ ports.SearchGateway         = (*Gateway)(nil)
	_ ports.RecommendationGateway = (*Gateway)(nil)
)

// NewGateway constructs the composite gateway.
func NewGateway(primary, secondary ports.SearchGateway, linker ports.AccountLinker) *Gateway {
	return &Gateway{primary: primary, secondary: secondary, linker: linker}
}

// Recommendations builds the provider query from the session inputs.
// Wellbeing mode rewrites a negative emotion into its mood-repair term
// before the query is issued.
func (g *Gateway) Recommendations(ctx context.Context, q ports.RecommendationQuery) ([]domain.Track, error) {
	emotion := q.Emotion
	if q.Wellbeing {
		emotion = domain.WellbeingQuery(q.Emotion)
	}
	return g.Search(ctx, fmt.Sprintf("%s %s", emotion, q.Language))
}

// Search tries the primary provider for a linked account and falls
// back to the secondary catalog on any failure or when unlinked.
func (g *Gateway) Search(ctx context.Context, query string) ([]domain.Track, error) {
	if g.linker != nil && g.linker.Linked(ctx) {
		tracks, err := g.primary.Search(ctx, query)
		if err == nil {
			return tracks, nil
		}
		log.Printf("WARN music gateway: primary search failed, falling back: %v", err)
	}
	return g.secondary.Search(ctx, query)
}
