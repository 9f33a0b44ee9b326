package producer

import (
	"context"
	"time"

	"go-payhr/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Satu batch per tick; baris yang gagal dijadwal ulang lewat
// next_retry_at, bukan di-retry dalam loop yang sama.
const publishBatchSize = 50

// ProcessOutboxEvents polls the outbox table and publishes pending rows.
// Publish dan mark-sent tidak atomik, jadi consumer wajib idempotent
// (at-least-once delivery).
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	// Drain sekali di awal; backlog dari downtime tidak perlu
	// menunggu tick pertama.
	if err := drainPending(ctx, repo, writer, log); err != nil {
		log.Error("initial outbox drain failed", zap.Error(err))
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := drainPending(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

func drainPending(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, publishBatchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	logger.Info("processing pending outbox events", zap.Int("count", len(events)))

	var sent, failed int
	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			failed++
			logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// Event sudah terkirim; baris pending akan terkirim lagi
			// di tick berikutnya. Consumer menanggung deduplikasi.
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	logger.Info("outbox batch done", zap.Int("sent", sent), zap.Int("failed", failed))
	return nil
}
