// Command eventlog follows the event topic and writes every event to the log.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/usermanagement/internal/usermanagement/config"
	"github.com/gartstein/usermanagement/internal/usermanagement/events"
	"go.uber.org/zap"
)

const groupID = "usermanagement-eventlog"

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if len(cfg.KafkaBrokers) == 0 {
		logger.Fatal("KAFKA_BROKERS is not set")
	}

	consumer := events.NewConsumer(cfg.KafkaBrokers, groupID, cfg.Topic, logger)
	defer consumer.Close()

	consumer.RegisterHandler(func(_ context.Context, event events.Event) error {
		logger.Info("event received",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.ID.String()),
			zap.Time("occurred_at", event.OccurredAt),
			zap.Any("payload", event.Payload),
		)
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("following events", zap.String("topic", cfg.Topic))
	consumer.Run(ctx)
	logger.Info("Consumer stopped properly")
}
