package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/NicolasGomez268/PuntoTecno/internal/config"
	"github.com/NicolasGomez268/PuntoTecno/internal/infra"
	"github.com/NicolasGomez268/PuntoTecno/internal/repository"
	"github.com/NicolasGomez268/PuntoTecno/internal/router"
	"github.com/NicolasGomez268/PuntoTecno/internal/service"
	"github.com/NicolasGomez268/PuntoTecno/internal/worker"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if cfg.Env == "development" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		// Price cache, rate limiting and notifications degrade gracefully.
		log.Warn().Err(err).Msg("redis unavailable, continuing without it")
		rdb = nil
	}

	var notifier service.Notifier
	var pool *worker.Pool
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if rdb != nil {
		notifier = worker.NewDispatcher(rdb, log)
		pool = worker.NewPool(rdb, repository.NewOrderRepository(db), infra.NewMailer(cfg), cfg, log)
		pool.Start(workerCtx)
	}

	engine := router.New(db, rdb, cfg, notifier, nil, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	stopWorkers()
	if pool != nil {
		pool.Wait()
	}
	log.Info().Msg("bye")
}
