package salary

import (
	"time"

	"github.com/google/uuid"
)

const (
	AdjustmentIncrease = "increase"
	AdjustmentDecrease = "decrease"

	StatusApproved = "approved"
)

// SalaryAdjustment adalah artefak audit turunan dari perubahan gaji.
// Sekali dibuat tidak pernah dimutasi.
type SalaryAdjustment struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID     uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	AdjustmentType string    `gorm:"column:adjustment_type;type:varchar(10);not null"`
	Amount         int64     `gorm:"column:amount;type:bigint;not null"`
	Reason         string    `gorm:"column:reason;type:text"`
	EffectiveDate  time.Time `gorm:"column:effective_date;type:date;not null"`
	Status         string    `gorm:"column:status;type:varchar(20);not null;default:'approved'"`
	ApprovedAt     time.Time `gorm:"column:approved_at;type:timestamptz;not null"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (SalaryAdjustment) TableName() string {
	return "salary_adjustments"
}
