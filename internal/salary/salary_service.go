package salary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-payhr/internal/audit"
	"go-payhr/internal/employee"
	"go-payhr/internal/events"
	"go-payhr/internal/identity"
	"go-payhr/internal/messaging/kafka"
	"go-payhr/internal/shared/apperror"
	"go-payhr/internal/shared/contextutil"
	"go-payhr/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	UpdateSalary(ctx context.Context, actor *identity.Principal, req UpdateSalaryRequest) error
	GetAdjustments(ctx context.Context, employeeID string) ([]SalaryAdjustmentResponse, error)
}

type service struct {
	employeeRepo employee.Repository
	repo         Repository
	auditSvc     audit.Service
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(employeeRepo employee.Repository, repo Repository, auditSvc audit.Service, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{
		employeeRepo: employeeRepo,
		repo:         repo,
		auditSvc:     auditSvc,
		outbox:       outbox,
		logger:       l,
	}
}

// classifyAdjustment: increase hanya jika new > prev; nilai sama
// terklasifikasi decrease dengan amount 0 (perbandingan non-strict).
func classifyAdjustment(newSalary, previousSalary int64) (string, int64) {
	if newSalary > previousSalary {
		return AdjustmentIncrease, newSalary - previousSalary
	}
	return AdjustmentDecrease, previousSalary - newSalary
}

// UpdateSalary adalah best-effort two-phase write, bukan transaksi.
// Langkah primer (angka gaji) fatal; pencatatan adjustment dan audit
// advisory — kegagalannya tidak boleh menutupi perubahan gaji yang
// sudah diterapkan.
func (s *service) UpdateSalary(ctx context.Context, actor *identity.Principal, req UpdateSalaryRequest) error {
	if req.EmployeeID == "" {
		return apperror.RequiredField("employeeId")
	}
	if req.NewSalary == nil {
		return apperror.RequiredField("newSalary")
	}
	if req.PreviousSalary == nil {
		return apperror.RequiredField("previousSalary")
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return apperror.InvalidField("employeeId")
	}

	newSalary := *req.NewSalary
	previousSalary := *req.PreviousSalary
	adjustmentType, amount := classifyAdjustment(newSalary, previousSalary)

	log := contextutil.GetLogger(ctx, s.logger)
	now := time.Now().UTC()

	steps := []workflow.Step{
		{
			Name:     "update_salary_figure",
			Severity: workflow.Fatal,
			Run: func(ctx context.Context) error {
				if err := s.employeeRepo.UpdateMonthlySalary(ctx, req.EmployeeID, newSalary); err != nil {
					return apperror.Wrap(err, apperror.CodeInternalError, "Failed to update employee salary", 500)
				}
				return nil
			},
		},
		{
			Name:     "record_salary_adjustment",
			Severity: workflow.Advisory,
			Run: func(ctx context.Context) error {
				return s.repo.Create(ctx, &SalaryAdjustment{
					ID:             uuid.New(),
					EmployeeID:     employeeID,
					AdjustmentType: adjustmentType,
					Amount:         amount,
					Reason:         req.Reason,
					EffectiveDate:  now.Truncate(24 * time.Hour),
					Status:         StatusApproved,
					ApprovedAt:     now,
				})
			},
		},
		{
			Name:     "append_audit_entry",
			Severity: workflow.Advisory,
			Run: func(ctx context.Context) error {
				entry := audit.Entry{
					Action:     "salary_updated",
					EntityType: "employee",
					EntityID:   req.EmployeeID,
					Metadata: map[string]any{
						"previous_salary": previousSalary,
						"new_salary":      newSalary,
						"adjustment_type": adjustmentType,
						"amount":          amount,
					},
				}
				if actor != nil {
					entry.UserID = actor.ID
					entry.UserRole = string(actor.Role)
					entry.UserName = actor.Name
					entry.UserEmail = actor.Email
				}
				return s.auditSvc.Append(ctx, entry)
			},
		},
		{
			Name:     "enqueue_payslip_email",
			Severity: workflow.Advisory,
			Run: func(ctx context.Context) error {
				return s.enqueuePayslipEmail(ctx, req.EmployeeID, newSalary)
			},
		},
	}

	return workflow.Run(ctx, log, steps)
}

// enqueuePayslipEmail menulis outbox event agar consumer mengirim
// payslip terbaru setelah gaji berubah. Tanpa baris employee (atau tanpa
// email) langkah ini diam-diam selesai; bukan alasan menahan mutasi.
func (s *service) enqueuePayslipEmail(ctx context.Context, employeeID string, newSalary int64) error {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp.Email == "" {
		return nil
	}

	payload, err := json.Marshal(events.PayslipEmailRequestedEvent{
		EmployeeID:    employeeID,
		EmployeeEmail: emp.Email,
		Subject:       "Your updated payslip",
		MessageBody: fmt.Sprintf(
			"Hi %s, your monthly salary has been updated to %d. Your payslip is attached.",
			emp.FullName, newSalary,
		),
	})
	if err != nil {
		return err
	}

	return s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   employeeID,
		EventType:     events.EventTypePayslipEmailRequested,
		Topic:         events.TopicEmailRequests,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAdjustments(ctx context.Context, employeeID string) ([]SalaryAdjustmentResponse, error) {
	var (
		rows []SalaryAdjustment
		err  error
	)
	if employeeID == "" {
		rows, err = s.repo.FindAll(ctx)
	} else {
		rows, err = s.repo.FindAllByEmployee(ctx, employeeID)
	}
	if err != nil {
		return nil, err
	}

	res := make([]SalaryAdjustmentResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func mapToResponse(adj SalaryAdjustment) SalaryAdjustmentResponse {
	return SalaryAdjustmentResponse{
		ID:             adj.ID.String(),
		EmployeeID:     adj.EmployeeID.String(),
		AdjustmentType: adj.AdjustmentType,
		Amount:         adj.Amount,
		Reason:         adj.Reason,
		EffectiveDate:  adj.EffectiveDate.Format("2006-01-02"),
		Status:         adj.Status,
		ApprovedAt:     adj.ApprovedAt.Format(time.RFC3339),
	}
}
