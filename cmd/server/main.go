package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dataset-catalog-api/internal/airtable"
	"github.com/dataset-catalog-api/internal/api"
	"github.com/dataset-catalog-api/internal/cache"
	"github.com/dataset-catalog-api/internal/config"
	"github.com/dataset-catalog-api/internal/repository"
	"github.com/dataset-catalog-api/internal/service"
	"github.com/dataset-catalog-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting dataset catalog API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize backing-store client
	client := airtable.NewClient(&cfg.Store, log)

	// Initialize repositories
	repos := repository.New(client, cfg.Store.Tables)

	// Initialize lookup cache
	lookup := cache.New(repos.Lookup, cache.Tables{
		Categories:  cfg.Store.Tables.Categories,
		ContentHubs: cfg.Store.Tables.ContentHubs,
		Comments:    cfg.Store.Tables.Comments,
		Divisions:   cfg.Store.Tables.Divisions,
	}, cfg.Cache.TTL, log)

	// Initialize services
	services := service.NewServices(repos, lookup, log)

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
