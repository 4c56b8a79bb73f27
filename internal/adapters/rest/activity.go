package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
)

func (h *Handler) songHistory(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.activity.History(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": toTrackListJSON(tracks)})
}

func (h *Handler) likedSongs(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.activity.Liked(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": toTrackListJSON(tracks)})
}

func (h *Handler) likeSong(w http.ResponseWriter, r *http.Request) {
	var body trackJSON
	if !decodeBody(w, r, &body) {
		return
	}
	track := fromTrackJSON(body)
	if !track.HasIdentifier() {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "track has no identifier"})
		return
	}
	if err := h.activity.Like(r.Context(), track); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTrackJSON(track))
}

func (h *Handler) unlikeSong(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	key := chi.URLParam(r, "key")
	if err := h.activity.Unlike(r.Context(), domain.Provider(provider), key); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
