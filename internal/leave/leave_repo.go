package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveWithEmployee, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveWithEmployee, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveWithEmployee, error) {
	return r.findJoined(ctx, nil)
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveWithEmployee, error) {
	return r.findJoined(ctx, &employeeID)
}

func (r *repository) findJoined(ctx context.Context, employeeID *string) ([]LeaveWithEmployee, error) {
	q := r.db.WithContext(ctx).
		Table("leave_requests AS l").
		Select("l.*, e.full_name AS employee_name, e.email AS employee_email").
		Joins("JOIN employees e ON e.id = l.employee_id").
		Where("l.deleted_at IS NULL").
		Order("l.start_date DESC")

	if employeeID != nil {
		q = q.Where("l.employee_id = ?", *employeeID)
	}

	var rows []LeaveWithEmployee
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}
