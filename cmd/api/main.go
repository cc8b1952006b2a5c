package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/rpg-engine/internal/config"
	"github.com/jwebster45206/rpg-engine/internal/events"
	"github.com/jwebster45206/rpg-engine/internal/handlers"
	"github.com/jwebster45206/rpg-engine/internal/logger"
	"github.com/jwebster45206/rpg-engine/internal/middleware"
	"github.com/jwebster45206/rpg-engine/internal/storage"
	"github.com/jwebster45206/rpg-engine/pkg/dice"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting RPG Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"db_path", cfg.DBPath,
		"session_ttl", cfg.SessionTTL)

	seed := cfg.RNGSeed
	if seed == 0 {
		seed, err = dice.NewSeed()
		if err != nil {
			log.Error("Failed to seed random source", "error", err)
			os.Exit(1)
		}
	}
	log.Debug("Random source seeded", "seed", seed)
	seeder := dice.NewSeeder(seed)

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	store, err := storage.Open(storageCtx, cfg.DBPath, cfg.RedisURL, cfg.SessionTTL, log)
	if err != nil {
		log.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, log))

	broadcaster := events.NewBroadcaster(store.Client(), log)
	gameHandler := handlers.NewGameHandler(store, seeder.Roller, broadcaster, log)
	mux.Handle("/v1/games", gameHandler)
	mux.Handle("/v1/games/", gameHandler)

	mux.Handle("/v1/saves", handlers.NewSavesHandler(store, log))

	mux.Handle("/v1/events/games/", handlers.NewEventsHandler(store.Client(), log))

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     middleware.Logger(mux),
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the event stream stays open until the client leaves.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage", "error", err)
	}

	log.Info("Server exited")
}
