package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mukul7Raj/MoodTune/internal/adapters/camera"
	"github.com/Mukul7Raj/MoodTune/internal/adapters/classifier"
	"github.com/Mukul7Raj/MoodTune/internal/adapters/music"
	"github.com/Mukul7Raj/MoodTune/internal/adapters/rest"
	"github.com/Mukul7Raj/MoodTune/internal/adapters/saavn"
	"github.com/Mukul7Raj/MoodTune/internal/adapters/spotify"
	"github.com/Mukul7Raj/MoodTune/internal/adapters/sqlite"
	"github.com/Mukul7Raj/MoodTune/internal/config"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
	"github.com/Mukul7Raj/MoodTune/internal/core/services"
	"github.com/Mukul7Raj/MoodTune/internal/worker"
)

func main() {
	// 1. Configuration
	// Crash early if required config is missing.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// 2. Initialize "Driven" Adapters (The Tools)
	// -- Database Adapter
	store, err := sqlite.NewAdapter(cfg.DBPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer store.Close()

	// -- Provider Adapters
	// Spotify is optional; without credentials the app runs on the
	// open catalog alone.
	var linker ports.AccountLinker
	var spotifyClient *spotify.Client
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		sl := spotify.NewLinker(cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.SpotifyRedirectURL)
		linker = sl
		spotifyClient = spotify.NewClient(sl, cfg.SpotifyBaseURL)
	}
	saavnClient := saavn.NewClient(nil, cfg.SaavnBaseURL)

	var primary ports.SearchGateway = saavnClient
	if spotifyClient != nil {
		primary = spotifyClient
	}
	gateway := music.NewGateway(primary, saavnClient, linker)

	// -- Capture and Classification Adapters
	cam := camera.New(camera.Config{Device: cfg.CameraDevice})
	emotions := classifier.NewClient(cfg.ClassifierURL)

	// 3. Initialize Core Logic (The Driver)
	// Dependency injection: the agnostic services receive the
	// concrete adapters; the compiler checks every port.
	pool := worker.NewPool(store, 100)
	pool.Start(cfg.WorkerCount)
	defer pool.Stop()

	sessions := services.NewSessionMachine(cam, emotions, gateway, linker, pool, cfg.LinkingRequired)
	player := services.NewPlayer(store, pool)
	suggester := services.NewSuggester(gateway, time.Duration(cfg.SuggestDebounceMs)*time.Millisecond)

	// 4. Initialize "Driving" Adapter (The Interface)
	hub := rest.NewLifecycleHub()
	handler := rest.NewHandler(sessions, player, suggester, linker, store, hub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go player.Bind(ctx, hub)

	// 5. Start the Server
	log.Println("------------------------------------------------")
	log.Printf("🎶 MoodTune API is running on http://localhost:%s", cfg.Port)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
