package domain

// Provider identifies the external source a track came from.
type Provider string

const (
	// ProviderSpotify is the primary streaming provider.
	ProviderSpotify Provider = "spotify"
	// ProviderJioSaavn is the secondary catalog provider.
	ProviderJioSaavn Provider = "jiosaavn"
)

// Track is the canonical track shape in the domain layer. Every raw
// provider payload is normalized into this shape before it reaches the
// queue manager or the resolver. A Track is immutable once constructed.
type Track struct {
	ID           string
	Title        string
	Artist       string
	Album        string // optional
	Provider     Provider
	URI          string // track-scoped provider URI, e.g. "spotify:track:<id>"
	CollectionID string // album/playlist-scoped identifier when no track URI exists
	URL          string // direct playable or external link
	ArtworkURL   string // optional
}

// Key returns the composite playback key identifying a track within a
// queue: ID, else URI, else URL. An empty key means the track carries
// no identifier at all.
func (t Track) Key() string {
	if t.ID != "" {
		return t.ID
	}
	if t.URI != "" {
		return t.URI
	}
	return t.URL
}

// HasIdentifier reports whether the track carries any identifier usable
// as a queue key or an external link.
func (t Track) HasIdentifier() bool {
	return t.Key() != ""
}
