package attendance

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-payhr/internal/events"
	"go-payhr/internal/identity"
	"go-payhr/internal/messaging/kafka"
	"go-payhr/internal/shared/apperror"
	"go-payhr/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	statusPresent = "PRESENT"
	statusLate    = "LATE"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, actor *identity.Principal, date time.Time) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository) Service {
	return &service{db: db, repo: repo, outbox: outbox}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, apperror.InvalidField("employee id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, apperror.New(apperror.CodeConflict, "Already clocked in for today", http.StatusConflict)
	}

	status := statusPresent
	if now.Hour() > 9 || (now.Hour() == 9 && now.Minute() > 15) {
		status = statusLate
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(employeeID),
		AttendanceDate: today,
		TimeIn:         &now,
		Status:         status,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		// Race dua clock-in paralel kandas di unique index, bukan di
		// cek baca di atas.
		if isUniqueAttendanceViolation(err) {
			return AttendanceResponse{}, apperror.New(apperror.CodeConflict, "Already clocked in for today", http.StatusConflict)
		}
		return AttendanceResponse{}, err
	}

	if err := s.emitRowChange(ctx, tx, events.OpInsert, "attendance_clocked_in", *row); err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, apperror.New(apperror.CodeNotFound, "Clock in not found for today", http.StatusNotFound)
		}
		return AttendanceResponse{}, err
	}
	if row.TimeOut != nil {
		return AttendanceResponse{}, apperror.New(apperror.CodeConflict, "Already clocked out for today", http.StatusConflict)
	}

	row.TimeOut = &now
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}

	if err := s.emitRowChange(ctx, tx, events.OpUpdate, "attendance_clocked_out", *row); err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actor *identity.Principal, date time.Time) ([]AttendanceResponse, error) {
	if actor == nil {
		return nil, apperror.ErrUnauthorized
	}

	var (
		rows []Attendance
		err  error
	)
	if actor.CanViewAllData() {
		rows, err = s.repo.FindAllByDate(ctx, date)
	} else {
		rows, err = s.repo.FindAllByEmployee(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// emitRowChange menulis event CDC ke outbox dalam transaksi yang sama
// dengan mutasi absensi, supaya read model tidak pernah melihat baris
// yang transaksinya batal.
func (s *service) emitRowChange(ctx context.Context, tx *sql.Tx, op, eventType string, row Attendance) error {
	payload, err := events.NewRowChange(op, events.TableAttendances, mapToResponse(row))
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "attendance",
		AggregateID:   row.ID.String(),
		EventType:     eventType,
		Topic:         events.TopicChanges,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func isUniqueAttendanceViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_employee_date"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_employee_date")
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		Status:         a.Status,
		Notes:          a.Notes,
	}
	if a.TimeIn != nil {
		v := a.TimeIn.Format(time.RFC3339)
		resp.TimeIn = &v
	}
	if a.TimeOut != nil {
		v := a.TimeOut.Format(time.RFC3339)
		resp.TimeOut = &v
	}
	return resp
}
