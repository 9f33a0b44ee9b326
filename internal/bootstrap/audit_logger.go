package bootstrap

import (
	"context"
	"time"

	"go-payhr/internal/audit"

	"go.uber.org/zap"
)

// AuditLog adalah event operasional level server (start/stop), bukan
// mutasi domain.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	zap.L().Named("audit").Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}

// ServiceAuditLogger menulis event operasional ke audit log domain.
// Best-effort: kegagalan hanya dicatat, shutdown tetap jalan.
type ServiceAuditLogger struct {
	service audit.Service
}

func NewServiceAuditLogger(service audit.Service) *ServiceAuditLogger {
	return &ServiceAuditLogger{service: service}
}

func (l *ServiceAuditLogger) Log(ctx context.Context, entry AuditLog) {
	meta := entry.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	meta["message"] = entry.Message

	if err := l.service.Append(ctx, audit.Entry{
		Action:     entry.Action,
		EntityType: "server",
		UserRole:   "admin",
		Metadata:   meta,
	}); err != nil {
		zap.L().Named("audit").Warn("server audit append failed",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
	}
}
