package salary

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, adj *SalaryAdjustment) error
	FindAllByEmployee(ctx context.Context, employeeID string) ([]SalaryAdjustment, error)
	FindAll(ctx context.Context) ([]SalaryAdjustment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, adj *SalaryAdjustment) error {
	return r.db.WithContext(ctx).Create(adj).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]SalaryAdjustment, error) {
	var rows []SalaryAdjustment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("approved_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context) ([]SalaryAdjustment, error) {
	var rows []SalaryAdjustment
	err := r.db.WithContext(ctx).
		Order("approved_at DESC").
		Find(&rows).Error
	return rows, err
}
