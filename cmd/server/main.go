package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/startkit/accounts-api/internal/api"
	"github.com/startkit/accounts-api/internal/infrastructure/db/mongo"
	"github.com/startkit/accounts-api/internal/infrastructure/db/redis"
	"github.com/startkit/accounts-api/internal/pkg/config"
	"github.com/startkit/accounts-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title         Accounts API
// @version       0.1.0
// @description   User account CRUD with password authentication and bearer-token sessions.
// @BasePath      /api/v1
// @securityDefinitions.apikey BearerAuth
// @in            header
// @name          Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "accounts-api",
	})

	// Optionally overlay configuration from the Redis secret store, then
	// re-read the environment so the overlaid values take effect.
	var rdb *goredis.Client
	if cfg.SecretsFromRedis {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("secret store unreachable, using plain environment")
		} else {
			if _, err := redis.NewSecretLoader(rdb, log).Load(ctx); err != nil {
				log.Warn().Err(err).Msg("secret load failed, using plain environment")
			}
			if cfg, err = config.Load(ctx); err != nil {
				log.Fatal().Err(err).Msg("reload configuration")
			}
		}
	}

	generated, err := cfg.EnsureJWTSecret()
	if err != nil {
		log.Fatal().Err(err).Msg("signing secret")
	}
	if generated {
		log.Warn().Msg("JWT_SECRET not set; generated a random signing secret; all tokens become invalid on restart")
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	e := api.NewRouter(cfg, db, rdb, log)

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(cfg.Addr()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
