package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opencampus/campus-cms/internal/api"
	"github.com/opencampus/campus-cms/internal/core/token"
	"github.com/opencampus/campus-cms/internal/infrastructure/config"
	mongodb "github.com/opencampus/campus-cms/internal/infrastructure/db/mongo"
	redisdb "github.com/opencampus/campus-cms/internal/infrastructure/db/redis"
	"github.com/opencampus/campus-cms/internal/infrastructure/media"
	"github.com/opencampus/campus-cms/internal/infrastructure/queue"
	"github.com/opencampus/campus-cms/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Campus CMS API
// @version      1.0
// @description  Content-management backend for a campus site: session and
// @description  credential management plus events, faculty, galleries,
// @description  feedback, newsletters and event registrations.
// @BasePath     /api/v1
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("configuration invalid")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  cfg.Token.AccessSecret,
		RefreshSecret: cfg.Token.RefreshSecret,
		AccessTTL:     cfg.Token.AccessTTL,
		RefreshTTL:    cfg.Token.RefreshTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token configuration invalid")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	mediaStore := media.NewCloudinaryStore(media.Config{
		CloudName: cfg.Media.CloudName,
		APIKey:    cfg.Media.APIKey,
		APISecret: cfg.Media.APISecret,
		Folder:    cfg.Media.Folder,
	})

	cleanup := queue.NewDispatcher(cfg.Media.CleanupWorkers, mediaStore, log)
	cleanup.Start(ctx)

	e := api.NewRouter(api.Deps{
		DB:         db,
		Redis:      redisClient,
		Issuer:     issuer,
		Media:      mediaStore,
		Cleanup:    cleanup,
		Log:        log,
		CORSOrigin: cfg.CORSOrigin,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
