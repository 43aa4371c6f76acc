package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"negar/internal/balance"
	"negar/internal/config"
	"negar/internal/db"
	"negar/internal/logger"
	"negar/internal/router"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger()
	log.Info().Msg("Starting negar backend")

	database := db.InitDB(cfg.DBUrl)
	defer database.Close()

	db.RunMigrations(database)

	fetcher := balance.NewFetcher(cfg.BillingURL, cfg.ChromePath, log)

	r := router.SetupRouter(database, fetcher, cfg, log)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	fetcher.Shutdown()
	log.Info().Msg("Server stopped")
}
