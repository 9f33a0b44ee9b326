package audit

import (
	"context"
	"time"

	"go-payhr/internal/shared/apperror"
	"go-payhr/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Append(ctx context.Context, entry Entry) error
	GetAll(ctx context.Context, limit int) ([]AuditLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

// Append menulis satu entri audit, at-most-once, tanpa retry.
// Kegagalan dilaporkan ke caller tapi caller TIDAK boleh menjadikannya
// alasan rollback mutasi utama; retry diputuskan di layer atas.
func (s *service) Append(ctx context.Context, entry Entry) error {
	if entry.Action == "" {
		return apperror.RequiredField("action")
	}
	if entry.EntityType == "" {
		return apperror.RequiredField("entity_type")
	}

	row := &AuditLog{
		ID:         uuid.New(),
		UserRole:   entry.UserRole,
		UserName:   entry.UserName,
		UserEmail:  entry.UserEmail,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		Metadata:   Metadata(entry.Metadata),
		CreatedAt:  time.Now().UTC(),
	}

	if row.UserRole == "" {
		// Role dari request context kalau caller tidak mengisi;
		// default terakhir least privilege.
		row.UserRole = contextutil.GetUserRole(ctx)
	}
	if row.UserRole == "" {
		row.UserRole = "employee"
	}
	if row.Metadata == nil {
		row.Metadata = Metadata{}
	}
	if entry.UserID != "" {
		if uid, err := uuid.Parse(entry.UserID); err == nil {
			row.UserID = &uid
		}
	}
	if entry.EntityID != "" {
		eid := entry.EntityID
		row.EntityID = &eid
	}

	if err := s.repo.Create(ctx, row); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("append audit entry failed",
			zap.String("action", entry.Action),
			zap.String("entity_type", entry.EntityType),
			zap.Error(err),
		)
		return apperror.Wrap(err, apperror.CodeInternalError, "Failed to write audit entry", 500)
	}

	return nil
}

func (s *service) GetAll(ctx context.Context, limit int) ([]AuditLogResponse, error) {
	rows, err := s.repo.FindAll(ctx, limit)
	if err != nil {
		return nil, err
	}

	res := make([]AuditLogResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func mapToResponse(row AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:         row.ID.String(),
		UserRole:   row.UserRole,
		UserName:   row.UserName,
		UserEmail:  row.UserEmail,
		Action:     row.Action,
		EntityType: row.EntityType,
		EntityID:   row.EntityID,
		Metadata:   row.Metadata,
		CreatedAt:  row.CreatedAt.Format(time.RFC3339),
	}
	if row.UserID != nil {
		resp.UserID = row.UserID.String()
	}
	return resp
}
