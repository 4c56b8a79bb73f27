package rest

import (
	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/services"
)

type trackJSON struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Artist       string `json:"artist,omitempty"`
	Album        string `json:"album,omitempty"`
	Provider     string `json:"provider"`
	URI          string `json:"uri,omitempty"`
	CollectionID string `json:"collectionId,omitempty"`
	URL          string `json:"url,omitempty"`
	ArtworkURL   string `json:"artworkUrl,omitempty"`
}

func toTrackJSON(t domain.Track) trackJSON {
	return trackJSON{
		ID:           t.ID,
		Title:        t.Title,
		Artist:       t.Artist,
		Album:        t.Album,
		Provider:     string(t.Provider),
		URI:          t.URI,
		CollectionID: t.CollectionID,
		URL:          t.URL,
		ArtworkURL:   t.ArtworkURL,
	}
}

func toTrackListJSON(tracks []domain.Track) []trackJSON {
	out := make([]trackJSON, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, toTrackJSON(t))
	}
	return out
}

func fromTrackJSON(t trackJSON) domain.Track {
	return domain.Track{
		ID:           t.ID,
		Title:        t.Title,
		Artist:       t.Artist,
		Album:        t.Album,
		Provider:     domain.Provider(t.Provider),
		URI:          t.URI,
		CollectionID: t.CollectionID,
		URL:          t.URL,
		ArtworkURL:   t.ArtworkURL,
	}
}

func fromTrackListJSON(tracks []trackJSON) []domain.Track {
	out := make([]domain.Track, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, fromTrackJSON(t))
	}
	return out
}

type sessionJSON struct {
	ID               string      `json:"id"`
	State            string      `json:"state"`
	DetectedEmotion  string      `json:"detectedEmotion,omitempty"`
	WellbeingMode    bool        `json:"wellbeingMode"`
	SelectedLanguage string      `json:"selectedLanguage,omitempty"`
	Generation       uint64      `json:"generation"`
	Tracks           []trackJSON `json:"tracks"`
	Message          string      `json:"message,omitempty"`
}

func toSessionJSON(s domain.MoodSession) sessionJSON {
	return sessionJSON{
		ID:               s.ID,
		State:            s.State.String(),
		DetectedEmotion:  s.DetectedEmotion,
		WellbeingMode:    s.WellbeingMode,
		SelectedLanguage: s.SelectedLanguage,
		Generation:       s.Generation,
		Tracks:           toTrackListJSON(s.Tracks),
	}
}

type embedJSON struct {
	Kind     string `json:"kind"`
	Provider string `json:"provider"`
	Src      string `json:"src"`
}

type playerJSON struct {
	Tracks       []trackJSON `json:"tracks"`
	CurrentIndex int         `json:"currentIndex"`
	Visible      bool        `json:"visible"`
	Embed        *embedJSON  `json:"embed,omitempty"`
	ExternalURL  string      `json:"externalUrl,omitempty"`
	Outcome      string      `json:"outcome,omitempty"`
}

func toPlayerJSON(st services.PlayerState) playerJSON {
	out := playerJSON{
		Tracks:       toTrackListJSON(st.Queue.Tracks),
		CurrentIndex: st.Queue.CurrentIndex,
		Visible:      st.Visible,
		ExternalURL:  st.ExternalURL,
		Outcome:      st.Outcome,
	}
	if st.Embed != nil {
		out.Embed = &embedJSON{
			Kind:     st.Embed.Kind.String(),
			Provider: string(st.Embed.Provider),
			Src:      st.Embed.Src,
		}
	}
	return out
}
