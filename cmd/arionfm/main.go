package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"arionfm/internal/likes"
	"arionfm/internal/store"
	"arionfm/shared/go/config"
	"arionfm/shared/go/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
	})
	logging.SetGlobalLogger(logger)

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal(err, "connect to database")
	}
	defer db.Close()

	dataStore := store.New(db)
	if err := bootstrapCatalog(ctx, dataStore); err != nil {
		logger.Fatal(err, "bootstrap catalog")
	}

	likeStore, err := likes.Open(cfg.Likes.Path)
	if err != nil {
		logger.Fatal(err, "open likes storage")
	}
	defer likeStore.Close()

	handler, registry, err := newHTTPHandler(ctx, cfg, dataStore, likeStore)
	if err != nil {
		logger.Fatal(err, "build http handler")
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		registry.Run(sweepCtx, cfg.Session.SweepInterval, cfg.Session.IdleTimeout)
	}()

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("arionfm listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err, "server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	stopSweep()
	<-sweepDone
}
