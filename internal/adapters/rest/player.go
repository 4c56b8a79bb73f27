package rest

import (
	"net/http"
	"time"
)

func (h *Handler) playerState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toPlayerJSON(h.player.State()))
}

func (h *Handler) playItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Track        trackJSON   `json:"track"`
		QueueContext []trackJSON `json:"queueContext"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	st, err := h.player.PlayItem(r.Context(), fromTrackJSON(body.Track), fromTrackListJSON(body.QueueContext))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPlayerJSON(st))
}

func (h *Handler) playerNext(w http.ResponseWriter, r *http.Request) {
	st, err := h.player.Next(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPlayerJSON(st))
}

func (h *Handler) playerPrevious(w http.ResponseWriter, r *http.Request) {
	st, err := h.player.Previous(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPlayerJSON(st))
}

func (h *Handler) playerClose(w http.ResponseWriter, r *http.Request) {
	if err := h.player.Close(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

type restoreJSON struct {
	TrackKey  string    `json:"trackKey,omitempty"`
	Visible   bool      `json:"visible"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Advised   bool      `json:"advised"`
}

func (h *Handler) playerRestore(w http.ResponseWriter, r *http.Request) {
	snap, advised, err := h.player.Restore(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, restoreJSON{
		TrackKey:  snap.TrackKey,
		Visible:   snap.Visible,
		Timestamp: snap.Timestamp,
		Advised:   advised,
	})
}
