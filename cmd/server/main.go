package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	web "courtside/internal/adapters/http"
	playerStore "courtside/internal/adapters/storage/player"
	sessionStore "courtside/internal/adapters/storage/session"
	targetStore "courtside/internal/adapters/storage/target"
	"courtside/internal/application/scheduler"
	"courtside/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	deps := scheduler.Deps{
		Players:  playerStore.NewFileStore(filepath.Join(cfg.DataDir, "players.json")),
		Sessions: sessionStore.NewFileStore(filepath.Join(cfg.DataDir, "classes.json")),
		Targets:  targetStore.NewFileStore(filepath.Join(cfg.DataDir, "targets.json")),
	}

	engine, err := scheduler.New(context.Background(), deps)
	if err != nil {
		log.Fatalf("failed to load schedule data: %v", err)
	}

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      web.NewMux(engine),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	slog.Info("server_started", "addr", cfg.ListenAddr, "data_dir", cfg.DataDir, "version", version)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
