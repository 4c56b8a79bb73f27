package domain

import "strings"

// EmbedKind reports which resolution outcome produced an embed target.
type EmbedKind int

const (
	// EmbedTrack is a track-level embed for the primary provider.
	EmbedTrack EmbedKind = iota
	// EmbedCollection is a collection-level embed, degraded: the whole
	// album or playlist plays instead of one track.
	EmbedCollection
	// EmbedFrame is a direct URL rendered in a frame, used for the
	// secondary provider.
	EmbedFrame
)

func (k EmbedKind) String() string {
	switch k {
	case EmbedTrack:
		return "track"
	case EmbedCollection:
		return "collection"
	case EmbedFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// EmbedTarget is a resolved, provider-specific reference usable to
// render an in-app player.
type EmbedTarget struct {
	Kind     EmbedKind
	Provider Provider
	Src      string
}

const (
	spotifyEmbedBase = "https://open.spotify.com/embed"
	spotifyOpenBase  = "https://open.spotify.com"
)

// ResolveEmbed decides whether and how a track can be embedded for
// in-app playback. Decision order, first match wins:
//
//  1. track-scoped Spotify identifier -> track-level embed
//  2. collection-scoped Spotify identifier -> collection-level embed
//  3. secondary provider with a direct URL -> frame embed
//  4. none of the above -> NotEmbeddableError carrying the external
//     fallback link, or no link at all when the track has no identifier
//
// The outcome is always reported: a target with its Kind, or a
// NotEmbeddableError. Silently producing nothing is not possible.
func ResolveEmbed(t Track) (EmbedTarget, error) {
	if t.Provider == ProviderSpotify {
		if id := spotifyTrackID(t); id != "" {
			return EmbedTarget{
				Kind:     EmbedTrack,
				Provider: ProviderSpotify,
				Src:      spotifyEmbedBase + "/track/" + id,
			}, nil
		}
		if t.CollectionID != "" {
			return EmbedTarget{
				Kind:     EmbedCollection,
				Provider: ProviderSpotify,
				Src:      spotifyEmbedBase + "/album/" + t.CollectionID,
			}, nil
		}
	}
	if t.Provider == ProviderJioSaavn && t.URL != "" {
		return EmbedTarget{
			Kind:     EmbedFrame,
			Provider: ProviderJioSaavn,
			Src:      t.URL,
		}, nil
	}
	return EmbedTarget{}, &NotEmbeddableError{
		TrackKey:    t.Key(),
		ExternalURL: ExternalLink(t),
	}
}

// ExternalLink builds the externally-opened fallback link for a track
// from whatever identifier is present. Empty means the track has no
// playable link at all.
func ExternalLink(t Track) string {
	if t.URL != "" {
		return t.URL
	}
	if t.Provider == ProviderSpotify {
		if id := spotifyTrackID(t); id != "" {
			return spotifyOpenBase + "/track/" + id
		}
		if t.CollectionID != "" {
			return spotifyOpenBase + "/album/" + t.CollectionID
		}
	}
	return ""
}

// spotifyTrackID extracts the bare track identifier from either the ID
// field or a "spotify:track:<id>" URI.
func spotifyTrackID(t Track) string {
	if t.ID != "" {
		return t.ID
	}
	if rest, ok := strings.CutPrefix(t.URI, "spotify:track:"); ok && rest != "" {
		return rest
	}
	return ""
}
