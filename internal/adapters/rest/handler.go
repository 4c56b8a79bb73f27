// Package rest exposes the HTTP API. Handlers translate between JSON
// and the core services; they hold no business rules of their own.
package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
	"github.com/Mukul7Raj/MoodTune/internal/core/services"
)

// Handler carries the wired services for all routes.
type Handler struct {
	sessions  *services.SessionMachine
	player    *services.Player
	suggester *services.Suggester
	linker    ports.AccountLinker
	activity  ports.ActivityStore
	lifecycle *LifecycleHub
}

// NewHandler constructs the API handler.
func NewHandler(sessions *services.SessionMachine, player *services.Player, suggester *services.Suggester, linker ports.AccountLinker, activity ports.ActivityStore, lifecycle *LifecycleHub) *Handler {
	return &Handler{
		sessions:  sessions,
		player:    player,
		suggester: suggester,
		linker:    linker,
		activity:  activity,
		lifecycle: lifecycle,
	}
}

// Router assembles the chi router with all API routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Post("/detect", h.detectEmotion)
			r.Post("/wellbeing", h.resolveWellbeing)
			r.Post("/language", h.chooseLanguage)
			r.Post("/linking/decline", h.declineLinking)
			r.Post("/reset", h.resetSession)
		})

		r.Route("/player", func(r chi.Router) {
			r.Get("/", h.playerState)
			r.Post("/play", h.playItem)
			r.Post("/next", h.playerNext)
			r.Post("/previous", h.playerPrevious)
			r.Post("/close", h.playerClose)
			r.Get("/restore", h.playerRestore)
		})

		r.Get("/search", h.search)

		r.Route("/songs", func(r chi.Router) {
			r.Get("/history", h.songHistory)
			r.Get("/liked", h.likedSongs)
			r.Post("/liked", h.likeSong)
			r.Delete("/liked/{provider}/{key}", h.unlikeSong)
		})

		r.Route("/spotify", func(r chi.Router) {
			r.Get("/login-url", h.spotifyLoginURL)
			r.Get("/callback", h.spotifyCallback)
			r.Get("/status", h.spotifyStatus)
		})

		r.Post("/lifecycle", h.lifecycleEvent)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("WARN rest: encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUnsupportedLanguage):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrQueueEmpty):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrStaleResponse):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDeviceUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrGateway):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrNotEmbeddable):
		status = http.StatusUnprocessableEntity
	}

	var devErr *domain.DeviceError
	if errors.As(err, &devErr) {
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}
