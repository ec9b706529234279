// Command seed loads the default industries and companies and exits.
package main

import (
	"context"
	"time"

	"github.com/gartstein/usermanagement/internal/usermanagement/config"
	"github.com/gartstein/usermanagement/internal/usermanagement/db"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/gartstein/usermanagement/internal/usermanagement/seed"
	"go.uber.org/zap"
)

// timeout bounds connecting and seeding together.
const timeout = 2 * time.Minute

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	repo, err := db.NewRepositoryWithRetry(ctx, &db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}, cfg.DBConnectTimeout, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer repo.Close()

	res, err := seed.NewSeeder(repo, logger).Run(models.WithActor(ctx, seed.Actor))
	if err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}
	logger.Info("done",
		zap.Int("industries", res.Industries),
		zap.Int("companies", res.Companies),
	)
}
