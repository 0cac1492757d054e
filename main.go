package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/daniyyer/kindle-dash/internal/config"
	"github.com/daniyyer/kindle-dash/internal/logger"
	"github.com/daniyyer/kindle-dash/internal/server"
)

func main() {
	ctx := context.Background()

	// Best-effort: a missing .env just means the environment is already set
	godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("failed to load configuration", err)
	}

	if level := logger.ParseLevel(cfg.LogLevel); level != -1 {
		log := logger.New(logger.Config{Level: level, Format: logger.TextFormat, Output: os.Stdout})
		logger.SetGlobalLogger(log)
	}

	srv, err := server.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize server", err)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		logger.Infof("received %s, shutting down", sig)
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", err)
		}
	}()

	sink := "local"
	if cfg.RemoteSink() {
		sink = "gcs"
	}
	logger.Info("dashboard service starting", map[string]interface{}{
		"port":     cfg.Port,
		"location": cfg.LocationName,
		"screen":   map[string]int{"width": cfg.ScreenWidth, "height": cfg.ScreenHeight},
		"sink":     sink,
	})

	if err := srv.Start(); err != nil {
		logger.Fatal("server exited", err)
	}
}
