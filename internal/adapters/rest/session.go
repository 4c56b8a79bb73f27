package rest

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/services"
)

type sessionResponse struct {
	sessionJSON
	LinkingRequired bool   `json:"linkingRequired,omitempty"`
	AuthURL         string `json:"authUrl,omitempty"`
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toSessionJSON(h.sessions.Session()))
}

func (h *Handler) detectEmotion(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.DetectEmotion(r.Context())
	h.respondSession(w, session, err)
}

func (h *Handler) resolveWellbeing(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OptIn bool `json:"optIn"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	session, err := h.sessions.ResolveWellbeing(r.Context(), body.OptIn)
	h.respondSession(w, session, err)
}

func (h *Handler) chooseLanguage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Language string `json:"language"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	session, err := h.sessions.ChooseLanguage(r.Context(), body.Language)
	h.respondSession(w, session, err)
}

func (h *Handler) declineLinking(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.DeclineLinking(r.Context())
	h.respondSession(w, session, err)
}

func (h *Handler) resetSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toSessionJSON(h.sessions.Reset()))
}

// respondSession maps the flow-level outcomes that still carry a valid
// session payload; everything else goes through the generic error path.
func (h *Handler) respondSession(w http.ResponseWriter, session domain.MoodSession, err error) {
	resp := sessionResponse{sessionJSON: toSessionJSON(session)}

	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, resp)
	case errors.Is(err, domain.ErrNoFaceDetected):
		resp.Message = "no face detected, please try again"
		respondJSON(w, http.StatusOK, resp)
	case errors.Is(err, services.ErrLinkingRequired):
		resp.LinkingRequired = true
		if h.linker != nil {
			resp.AuthURL = h.linker.AuthURL(uuid.NewString())
		}
		respondJSON(w, http.StatusOK, resp)
	case errors.Is(err, domain.ErrStaleResponse):
		resp.Message = "superseded by a newer session"
		respondJSON(w, http.StatusConflict, resp)
	default:
		respondError(w, err)
	}
}
