package rest

import (
	"net/http"

	"github.com/google/uuid"
)

func (h *Handler) spotifyLoginURL(w http.ResponseWriter, r *http.Request) {
	if h.linker == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "account linking is not configured"})
		return
	}
	state := uuid.NewString()
	respondJSON(w, http.StatusOK, map[string]string{
		"authUrl": h.linker.AuthURL(state),
		"state":   state,
	})
}

func (h *Handler) spotifyCallback(w http.ResponseWriter, r *http.Request) {
	if h.linker == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "account linking is not configured"})
		return
	}
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		// The user cancelled or the provider rejected the request.
		respondJSON(w, http.StatusOK, map[string]any{"linked": false, "reason": errParam})
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "missing authorization code"})
		return
	}
	if err := h.linker.Exchange(r.Context(), code); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"linked": true})
}

func (h *Handler) spotifyStatus(w http.ResponseWriter, r *http.Request) {
	linked := h.linker != nil && h.linker.Linked(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{"linked": linked})
}
