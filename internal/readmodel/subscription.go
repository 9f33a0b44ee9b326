package readmodel

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ChangeMessage adalah bentuk wire satu CDC event di topic Kafka.
type ChangeMessage struct {
	Op    string          `json:"op"`
	Table string          `json:"table"`
	Row   json.RawMessage `json:"row"`
}

// RowDecoder mengubah payload baris mentah menjadi Row bertipe.
type RowDecoder func(raw json.RawMessage) (Row, error)

// Subscribe membuka langganan CDC untuk satu tabel dan mengirim event
// bertipe ke channel hasil. Channel ditutup saat ctx selesai; itulah
// teardown-nya, sehingga consumer lain dari channel tidak perlu
// koordinasi tambahan.
func Subscribe(
	ctx context.Context,
	reader *kafkago.Reader,
	table string,
	decode RowDecoder,
	logger *zap.Logger,
) <-chan Event {
	log := logger.Named("readmodel.subscription").With(zap.String("table", table))
	out := make(chan Event, 64)

	go func() {
		defer close(out)
		log.Info("change feed subscription started")

		for {
			msg, err := reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					log.Info("change feed subscription stopped")
					return
				}
				log.Error("fetch change message failed", zap.Error(err))
				continue
			}

			var change ChangeMessage
			if err := json.Unmarshal(msg.Value, &change); err != nil {
				log.Error("decode change message failed", zap.Error(err))
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			if change.Table != table {
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			row, err := decode(change.Row)
			if err != nil {
				log.Error("decode change row failed", zap.Error(err))
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			select {
			case out <- Event{Op: Op(change.Op), Row: row}:
			case <-ctx.Done():
				return
			}

			if err := reader.CommitMessages(ctx, msg); err != nil {
				log.Error("commit change message failed", zap.Error(err))
			}
		}
	}()

	return out
}
