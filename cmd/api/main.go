package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"yatube/cmd/app"
	"yatube/internal/config"
	handlers "yatube/internal/handler"
	"yatube/internal/logging"
	"yatube/internal/render"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	renderer, err := render.New(cfg.MinIO.PublicURL)
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	application, err := app.App(ctx, cfg, log)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer application.Close()

	handler := handlers.NewHandlers(application.Services, application.DB, application.Cache, renderer, cfg, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handler.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
