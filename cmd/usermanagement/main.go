package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gartstein/usermanagement/internal/usermanagement/config"
	"github.com/gartstein/usermanagement/internal/usermanagement/controller"
	"github.com/gartstein/usermanagement/internal/usermanagement/db"
	"github.com/gartstein/usermanagement/internal/usermanagement/events"
	"github.com/gartstein/usermanagement/internal/usermanagement/handlers"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/gartstein/usermanagement/internal/usermanagement/ratelimit"
	"github.com/gartstein/usermanagement/internal/usermanagement/security"
	"github.com/gartstein/usermanagement/internal/usermanagement/seed"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// eventPublisher is what the services need plus shutdown.
type eventPublisher interface {
	Produce(events.Event)
	Close()
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		// the logger level depends on the config, so fall back to a production one
		initLogger(false).Fatal("failed to load config", zap.Error(err))
	}

	logger := initLogger(cfg.IsDevelopment())
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	repo, err := db.NewRepositoryWithRetry(ctx, initDatabase(cfg), cfg.DBConnectTimeout, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	if cfg.SeedOnStart {
		res, err := seed.NewSeeder(repo, logger).Run(models.WithActor(ctx, seed.Actor))
		if err != nil {
			logger.Fatal("failed to seed database", zap.Error(err))
		}
		logger.Info("database seeded",
			zap.Int("industries", res.Industries),
			zap.Int("companies", res.Companies),
		)
	}

	producer := initProducer(cfg, logger)
	defer producer.Close()

	rdb := initRedis(cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	industrySvc := controller.NewIndustryService(repo, producer, logger)
	companySvc := controller.NewCompanyService(repo, producer, logger)
	userSvc := controller.NewUserService(repo, hasher, producer, logger)

	h := handlers.NewHandler(industrySvc, companySvc, userSvc, repo, cfg.AppName, logger)
	router := handlers.NewRouter(h, handlers.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		JWTSecret:          cfg.JWTSecret,
		AuthRequired:       cfg.AuthRequired,
		RateLimiter: ratelimit.New(rdb, cfg.RateLimitPerMinute, time.Minute,
			ratelimit.KeyByIPAndPath(), logger),
	})

	server := handlers.NewServer(cfg.HTTPPort, router, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger builds a production logger, or a development one with debug output.
func initLogger(development bool) *zap.Logger {
	build := zap.NewProduction
	if development {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.With(zap.String("service", "usermanagement"))
}

func initDatabase(cfg *config.Config) *db.Config {
	return &db.Config{
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		DBName:          cfg.DBName,
		SSLMode:         cfg.DBSSLMode,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}
}

// initProducer connects to kafka. Without brokers, or when kafka is not
// reachable, events are discarded so the API keeps serving.
func initProducer(cfg *config.Config, logger *zap.Logger) eventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no kafka brokers configured, events disabled")
		return events.NopProducer{Logger: logger}
	}
	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		logger.Warn("failed to initialize Kafka producer, events disabled", zap.Error(err))
		return events.NopProducer{Logger: logger}
	}
	return producer
}

// initRedis returns nil when no address is configured, which turns rate limiting off.
func initRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then stops the server.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Server stopped properly")
}
