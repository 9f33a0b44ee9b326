package auth

import (
	"time"

	"github.com/google/uuid"
)

// User adalah auth identity. Baris profil (tabel profiles) hidup
// terpisah dan boleh tertinggal sementara kalau penghapusan profil
// gagal setelah identity-nya dihapus.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Password  string    `gorm:"column:password;type:varchar(255);not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
