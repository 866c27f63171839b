// Command initdb prepares the database for first use: it creates the
// unique indexes backing identity constraints and seeds the initial
// superuser account unless one already exists.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/startkit/accounts-api/internal/core/domain"
	"github.com/startkit/accounts-api/internal/core/ports"
	"github.com/startkit/accounts-api/internal/core/service"
	"github.com/startkit/accounts-api/internal/infrastructure/db/mongo"
	"github.com/startkit/accounts-api/internal/pkg/config"
	"github.com/startkit/accounts-api/pkg/logger"
)

const (
	adminUsername = "admin"
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
	adminFullName = "System Administrator"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "initdb"})

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

	repo := mongo.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}
	log.Info().Msg("indexes ready")

	users := service.NewUserService(repo, log)

	if existing, err := users.GetByUsername(ctx, adminUsername); err == nil && existing != nil {
		log.Info().Str("username", adminUsername).Msg("superuser already exists")
		return
	} else if err != nil && err != domain.ErrUserNotFound {
		log.Fatal().Err(err).Msg("superuser lookup failed")
	}

	admin, err := users.Create(ctx, ports.CreateUserInput{
		Email:       adminEmail,
		Username:    adminUsername,
		Password:    adminPassword,
		FullName:    adminFullName,
		IsSuperuser: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("superuser creation failed")
	}

	log.Info().Int64("user_id", admin.ID).Str("username", admin.Username).Msg("superuser created")
	fmt.Println("superuser created:", admin.Username)
	fmt.Println("warning: change the default password")
}
