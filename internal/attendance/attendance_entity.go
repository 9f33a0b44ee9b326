package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Satu baris per karyawan per hari; dibuat saat time-in pertama,
// time-out menyusul di hari yang sama. Flow normal tidak pernah
// menghapus baris (penghapusan hanya lewat aksi admin out-of-band).
type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	TimeIn         *time.Time `gorm:"column:time_in;type:timestamptz"`
	TimeOut        *time.Time `gorm:"column:time_out;type:timestamptz"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:'PRESENT'"`
	Notes          *string    `gorm:"column:notes;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
