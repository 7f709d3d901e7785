package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"maxim-atlas/backend/internal/api"
	"maxim-atlas/backend/internal/constants"
	"maxim-atlas/backend/internal/session"
	"maxim-atlas/backend/internal/state"
	"maxim-atlas/backend/pkg/config"
	"maxim-atlas/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting maxim atlas server...",
		zap.String("env", cfg.Env),
		zap.String("graph_source", cfg.GraphSource),
	)

	src, closeSource, err := openSource(cfg)
	if err != nil {
		log.Fatal("Failed to set up graph source", zap.Error(err))
	}
	defer closeSource()

	holder := state.NewHolder()
	sessions := session.NewManager(cfg.SessionTimeout, logger.Named("session"))

	server := api.NewServer(holder, sessions, api.Options{
		StaticDir:      cfg.StaticDir,
		SearchDebounce: cfg.SearchDebounce,
		Production:     cfg.IsProduction(),
	}, logger.Named("http"))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// The graph loads in the background; until it is ready the API answers 503
	// and websocket clients are told it is loading. A failed load is kept in
	// the holder rather than stopping the server.
	g.Go(func() error {
		_ = holder.Load(gctx, src, cfg.GraphLoadTimeout, logger.Named("graph"))
		return nil
	})

	g.Go(func() error {
		return sessions.Run(gctx, constants.SessionCleanupInterval)
	})

	g.Go(func() error {
		log.Info("Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
	}

	log.Info("Server exited")
}
