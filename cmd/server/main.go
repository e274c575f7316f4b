package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nbrain/onboarding-portal/internal/api"
	"github.com/nbrain/onboarding-portal/internal/core/service"
	"github.com/nbrain/onboarding-portal/internal/infrastructure/config"
	mongostore "github.com/nbrain/onboarding-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/nbrain/onboarding-portal/internal/infrastructure/db/redis"
	"github.com/nbrain/onboarding-portal/internal/infrastructure/queue"
	"github.com/nbrain/onboarding-portal/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
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

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// Indexes first: the partial unique slot index is what guarantees no
	// double-booking, so the server must not take traffic without it.
	credentialRepo := mongostore.NewCredentialRepository(db)
	appointmentRepo := mongostore.NewAppointmentRepository(db)
	if err := credentialRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("credential indexes failed")
	}
	if err := appointmentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("appointment indexes failed")
	}
	if err := mongostore.SeedCredentials(ctx, db, cfg.Seed.AdminEmail); err != nil {
		log.Fatal().Err(err).Msg("credential seeding failed")
	}

	// --- Activity audit pipeline ---
	activityService := service.NewActivityService(
		mongostore.NewActivityRepository(db),
		redisstore.NewDedupChecker(rdb),
		log,
	)
	dispatcher := queue.NewDispatcher(cfg.Schedule.Workers, activityService, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e, err := api.NewRouter(cfg, db, rdb, dispatcher, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
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
