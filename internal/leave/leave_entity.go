package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_leave_requests_employee_dates"`

	LeaveType string    `gorm:"column:leave_type;type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index:idx_leave_requests_employee_dates"`
	TotalDays int       `gorm:"column:total_days;type:int;not null;default:1"`
	Reason    string    `gorm:"column:reason;type:text"`

	Status          string     `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index"`
	ApprovedBy      *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveWithEmployee adalah hasil join untuk listing; nama dan email
// karyawan ikut dibawa supaya klien tidak perlu lookup kedua.
type LeaveWithEmployee struct {
	LeaveRequest
	EmployeeName  string `gorm:"column:employee_name"`
	EmployeeEmail string `gorm:"column:employee_email"`
}
