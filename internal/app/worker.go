package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-payhr/internal/messaging/kafka"
	"go-payhr/internal/messaging/kafka/producer"
	"go-payhr/internal/shared/connection"

	"go.uber.org/zap"
)

const defaultOutboxPollInterval = 3 * time.Second

// RunWorker menjalankan outbox publisher sebagai proses terpisah dari
// API. Satu instance cukup; ListPending tidak di-lock antar instance,
// jadi menjalankan dua worker berarti duplikat kirim (consumer sudah
// wajib idempotent, tapi tidak perlu dipancing).
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	pollInterval := defaultOutboxPollInterval
	if raw := os.Getenv("OUTBOX_POLL_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			pollInterval = d
		} else {
			logger.Warn("invalid OUTBOX_POLL_INTERVAL, using default",
				zap.String("value", raw),
				zap.Duration("default", defaultOutboxPollInterval),
			)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(ctx, kafka.NewOutboxRepository(sqlDB), kafkaWriter, logger, pollInterval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("worker shutting down", zap.String("signal", sig.String()))
	cancel()

	return nil
}
