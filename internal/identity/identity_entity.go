package identity

import (
	"time"

	"github.com/google/uuid"
)

// Profile adalah baris profil milik satu auth identity.
// Primary key-nya sama dengan user id di tabel users.
type Profile struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	FullName  string    `gorm:"column:full_name;type:varchar(255);not null"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:'employee'"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
