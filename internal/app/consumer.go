package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-payhr/internal/attendance"
	"go-payhr/internal/events"
	"go-payhr/internal/leave"
	"go-payhr/internal/mailer"
	"go-payhr/internal/messaging/kafka/consumer"
	"go-payhr/internal/readmodel"
	"go-payhr/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Payslip email consumer ---
	emailReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.TopicEmailRequests,
		GroupID:        "go-payhr-payslip-email",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer emailReader.Close()

	dispatcher := mailer.NewDispatcher(nil, logger)
	go consumer.ConsumePayslipEmailRequested(ctx, emailReader, dispatcher, logger)

	// --- Read models dari change feed ---
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)

	// Filter dan fetcher menghitung tanggal per panggilan; pergantian
	// hari UTC ditangani supervisor lewat refetch, bukan restart.
	attendanceSync := startReadModel(ctx, readModelConfig{
		broker:  kafkaBroker,
		groupID: "go-payhr-readmodel-attendance",
		table:   events.TableAttendances,
		decode:  attendance.DecodeChangeRow,
		fetcher: attendance.TodayFetcher(attendanceRepo),
		filter:  attendance.TodayFilter(),
		logger:  logger,
	})
	defer attendanceSync.Close()

	leaveSync := startReadModel(ctx, readModelConfig{
		broker:  kafkaBroker,
		groupID: "go-payhr-readmodel-leave",
		table:   events.TableLeaves,
		decode:  leave.DecodeChangeRow,
		fetcher: leave.NewFetcher(leaveRepo),
		filter:  nil,
		logger:  logger,
	})
	defer leaveSync.Close()

	go superviseReadModels(ctx, logger,
		map[string]*readmodel.Synchronizer{
			"attendance": attendanceSync,
			"leave":      leaveSync,
		},
		map[string]bool{"attendance": true},
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}

type readModelConfig struct {
	broker  string
	groupID string
	table   string
	decode  readmodel.RowDecoder
	fetcher readmodel.Fetcher
	filter  readmodel.Filter
	logger  *zap.Logger
}

func startReadModel(ctx context.Context, cfg readModelConfig) *readmodel.Synchronizer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.broker},
		Topic:          events.TopicChanges,
		GroupID:        cfg.groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.LastOffset,
	})

	go func() {
		<-ctx.Done()
		reader.Close()
	}()

	feed := readmodel.Subscribe(ctx, reader, cfg.table, cfg.decode, cfg.logger)
	sync := readmodel.NewSynchronizer(cfg.fetcher, cfg.filter, feed, cfg.logger)
	sync.Start(ctx)
	return sync
}

// superviseReadModels melaporkan ukuran proyeksi secara berkala,
// mencoba refetch saat ada yang degraded, dan me-refetch model harian
// saat hari UTC berganti supaya baris kemarin terganti baseline baru.
func superviseReadModels(
	ctx context.Context,
	logger *zap.Logger,
	syncs map[string]*readmodel.Synchronizer,
	daily map[string]bool,
) {
	log := logger.Named("readmodel.supervisor")
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	day := time.Now().UTC().Format("2006-01-02")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rolled := false
			if d := time.Now().UTC().Format("2006-01-02"); d != day {
				day = d
				rolled = true
				log.Info("utc day rollover", zap.String("day", day))
			}

			for name, s := range syncs {
				state := s.State()
				log.Info("read model status",
					zap.String("model", name),
					zap.String("state", state.String()),
					zap.Int("rows", len(s.Rows())),
				)
				if state == readmodel.StateDegraded || (rolled && daily[name]) {
					if err := s.Refetch(ctx); err != nil {
						log.Warn("read model refetch failed",
							zap.String("model", name),
							zap.Error(err),
						)
					}
				}
			}
		}
	}
}
