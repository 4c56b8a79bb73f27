package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Mukul7Raj/MoodTune/internal/core/services"
)

// search runs the debounced suggestion flow. A call superseded by a
// newer keystroke answers 204 so the client simply keeps its pending
// request open for the newest one.
func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter q is required"})
		return
	}

	tracks, err := h.suggester.Suggest(r.Context(), query)
	if err != nil {
		if errors.Is(err, services.ErrSuperseded) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": toTrackListJSON(tracks)})
}
