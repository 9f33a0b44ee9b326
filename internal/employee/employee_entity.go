package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        *uuid.UUID     `gorm:"column:user_id;type:uuid;index"`
	FullName      string         `gorm:"column:full_name;type:varchar(255);not null"`
	Email         string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Position      string         `gorm:"column:position;type:varchar(100)"`
	MonthlySalary int64          `gorm:"column:monthly_salary;type:bigint;not null;default:0"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}
