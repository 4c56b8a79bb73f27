package spotify

import (
	"strings"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
)

// mapTrackToDomain converts a raw Spotify track into the canonical
// domain Track. Artwork prefers the medium-sized image when the album
// carries more than one.
func mapTrackToDomain(st trackObject) domain.Track {
	var artistNames []string
	for _, a := range st.Artists {
		artistNames = append(artistNames, a.Name)
	}

	artworkURL := ""
	if len(st.Album.Images) > 1 {
		artworkURL = st.Album.Images[1].URL
	} else if len(st.Album.Images) > 0 {
		artworkURL = st.Album.Images[0].URL
	}

	return domain.Track{
		ID:           st.ID,
		Title:        st.Name,
		Artist:       strings.Join(artistNames, ", "),
		Album:        st.Album.Name,
		Provider:     domain.ProviderSpotify,
		URI:          st.URI,
		CollectionID: st.Album.ID,
		URL:          st.ExternalURLs.Spotify,
		ArtworkURL:   artworkURL,
	}
}

// mapSearchToDomain flattens a search response, dropping duplicate
// track IDs the way the API sometimes repeats remasters.
func mapSearchToDomain(sr searchResponse) []domain.Track {
	seen := make(map[string]struct{}, len(sr.Tracks.Items))
	tracks := make([]domain.Track, 0, len(sr.Tracks.Items))
	for _, item := range sr.Tracks.Items {
		if item.ID != "" {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
		}
		tracks = append(tracks, mapTrackToDomain(item))
	}
	return tracks
}
