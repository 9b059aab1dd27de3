// Command api is the EventSphere entry point. It wires configuration,
// storage and transport together and runs the HTTP server until signalled.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventsphere/eventsphere-api/internal/api"
	"github.com/eventsphere/eventsphere-api/internal/infrastructure/config"
	mongodb "github.com/eventsphere/eventsphere-api/internal/infrastructure/db/mongo"
	redisdb "github.com/eventsphere/eventsphere-api/internal/infrastructure/db/redis"
	"github.com/eventsphere/eventsphere-api/internal/infrastructure/storage"
	"github.com/eventsphere/eventsphere-api/pkg/logger"
)

// @title           EventSphere API
// @version         1.0
// @description     Two-sided event ticketing API: identity, auth, and the event lifecycle.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.NewIdentityRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("identity indexes failed")
	}
	if err := mongodb.NewEventRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("event indexes failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Upload storage ---
	uploads, err := storage.NewDiskStore(cfg.Upload.Dir, cfg.Upload.MaxBytes, log)
	if err != nil {
		log.Fatal().Err(err).Msg("upload storage failed")
	}

	// --- HTTP server ---
	e := api.NewRouter(cfg, db, rdb, uploads, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
