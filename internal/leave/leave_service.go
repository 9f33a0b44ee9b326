package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-payhr/internal/audit"
	"go-payhr/internal/events"
	"go-payhr/internal/identity"
	leaveerrors "go-payhr/internal/leave/errors"
	"go-payhr/internal/messaging/kafka"
	"go-payhr/internal/shared/apperror"
	"go-payhr/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor *identity.Principal, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actor *identity.Principal) ([]LeaveResponse, error)
	Approve(ctx context.Context, actor *identity.Principal, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actor *identity.Principal, id, reason string) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	audit  audit.Service
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, auditSvc audit.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, audit: auditSvc, logger: l}
}

func (s *service) Create(ctx context.Context, actor *identity.Principal, req CreateLeaveRequest) (LeaveResponse, error) {
	if actor == nil {
		return LeaveResponse{}, apperror.ErrUnauthorized
	}
	employeeID, err := uuid.Parse(actor.ID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, actor.ID, startDate, endDate)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("employee_id", actor.ID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  totalDays,
		Reason:     req.Reason,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.emitRowChange(ctx, tx, events.OpInsert, "leave_requested", *l); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", actor.ID),
	)

	return mapToResponse(*l), nil
}

// GetAll adalah proxied read: query selalu jalan lewat handle
// service-role, otorisasi diputuskan di sini berdasarkan principal
// caller, bukan di lapisan data.
func (s *service) GetAll(ctx context.Context, actor *identity.Principal) ([]LeaveResponse, error) {
	if actor == nil {
		return nil, apperror.ErrUnauthorized
	}

	var (
		rows []LeaveWithEmployee
		err  error
	)
	if actor.CanViewAllData() {
		rows, err = s.repo.FindAll(ctx)
	} else {
		rows, err = s.repo.FindAllByEmployee(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	res := make([]LeaveResponse, len(rows))
	for i, r := range rows {
		res[i] = mapJoinedToResponse(r)
	}
	return res, nil
}

func (s *service) Approve(ctx context.Context, actor *identity.Principal, id string) (LeaveResponse, error) {
	return s.transition(ctx, actor, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, actor *identity.Principal, id, reason string) (LeaveResponse, error) {
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.transition(ctx, actor, id, StatusRejected, &reason)
}

func (s *service) transition(ctx context.Context, actor *identity.Principal, id, targetStatus string, rejectionReason *string) (LeaveResponse, error) {
	if actor == nil {
		return LeaveResponse{}, apperror.ErrUnauthorized
	}
	if !actor.CanManageEmployees() {
		return LeaveResponse{}, apperror.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	l.Status = targetStatus
	if targetStatus == StatusApproved {
		if approver, parseErr := uuid.Parse(actor.ID); parseErr == nil {
			l.ApprovedBy = &approver
		}
		l.ApprovedAt = &now
	}
	if targetStatus == StatusRejected {
		l.RejectionReason = rejectionReason
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("transition leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := s.emitRowChange(ctx, tx, events.OpUpdate, "leave_"+actionFor(targetStatus), *l); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	// Audit best-effort: keputusan sudah commit, kegagalan audit
	// dicatat tapi tidak membatalkan hasil.
	metadata := map[string]any{
		"leave_type": l.LeaveType,
		"start_date": l.StartDate.Format("2006-01-02"),
		"end_date":   l.EndDate.Format("2006-01-02"),
	}
	if rejectionReason != nil {
		metadata["reason"] = *rejectionReason
	}
	if auditErr := s.audit.Append(ctx, audit.Entry{
		UserID:     actor.ID,
		UserRole:   string(actor.Role),
		UserName:   actor.Name,
		UserEmail:  actor.Email,
		Action:     "leave_" + actionFor(targetStatus),
		EntityType: "leave_request",
		EntityID:   l.ID.String(),
		Metadata:   metadata,
	}); auditErr != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("audit append failed for leave transition",
			zap.String("leave_id", id),
			zap.Error(auditErr),
		)
	}

	s.logger.Info("transition leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

func (s *service) emitRowChange(ctx context.Context, tx *sql.Tx, op, eventType string, l LeaveRequest) error {
	payload, err := events.NewRowChange(op, events.TableLeaves, mapToResponse(l))
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.TopicChanges,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func actionFor(status string) string {
	if status == StatusApproved {
		return "approved"
	}
	return "rejected"
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return d, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		EmployeeID:      l.EmployeeID.String(),
		LeaveType:       l.LeaveType,
		StartDate:       l.StartDate.Format("2006-01-02"),
		EndDate:         l.EndDate.Format("2006-01-02"),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapJoinedToResponse(l LeaveWithEmployee) LeaveResponse {
	resp := mapToResponse(l.LeaveRequest)
	resp.EmployeeName = l.EmployeeName
	resp.EmployeeEmail = l.EmployeeEmail
	return resp
}
