package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-payhr/internal/events"
	"go-payhr/internal/mailer"
	"go-payhr/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayslipEmailRequested mengirim payslip lewat dispatcher untuk
// tiap event yang masuk. Error permanen (input/konfigurasi salah)
// di-commit supaya tidak retry selamanya; error transien dibiarkan
// untuk delivery ulang.
func ConsumePayslipEmailRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	dispatcher mailer.Dispatcher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip_email")
	log.Info("payslip email consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip email consumer stopped")
				return
			}
			log.Error("fetch payslip email message failed", zap.Error(err))
			continue
		}

		var event events.PayslipEmailRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payslip email event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		attachment, err := mailer.PayslipAttachment(event.MessageBody, event.PDFBase64, event.Filename)
		if err != nil {
			log.Error("build payslip attachment failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		result, err := dispatcher.Send(
			ctx,
			event.EmployeeEmail,
			event.Subject,
			mailer.PayslipHTML(event.MessageBody),
			[]mailer.Attachment{attachment},
		)
		if err != nil {
			log.Error("send payslip email failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			if isPermanentSendError(err) {
				_ = reader.CommitMessages(ctx, msg)
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payslip email message failed", zap.Error(err))
			continue
		}

		log.Info("payslip email sent",
			zap.String("employee_id", event.EmployeeID),
			zap.String("message_id", result.MessageID),
		)
	}
}

func isPermanentSendError(err error) bool {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	switch appErr.Code {
	case apperror.CodeInvalidInput, apperror.CodeConfigurationError:
		return true
	default:
		return false
	}
}
