package audit

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Metadata adalah payload bebas per action. Isi yang diharapkan per
// action adalah konvensi, bukan skema; disimpan sebagai jsonb.
type Metadata map[string]any

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src any) error {
	if src == nil {
		*m = Metadata{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported metadata source type")
	}

	return json.Unmarshal(raw, m)
}

// AuditLog bersifat append-only. Repository sengaja tidak punya
// Update/Delete; imutabilitas ditegakkan lewat permukaan API.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     *uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	UserRole   string     `gorm:"column:user_role;type:varchar(20);not null;default:'employee'"`
	UserName   string     `gorm:"column:user_name;type:varchar(255)"`
	UserEmail  string     `gorm:"column:user_email;type:varchar(255)"`
	Action     string     `gorm:"column:action;type:varchar(100);not null;index"`
	EntityType string     `gorm:"column:entity_type;type:varchar(50);not null;index"`
	EntityID   *string    `gorm:"column:entity_id;type:varchar(100)"`
	Metadata   Metadata   `gorm:"column:metadata;type:jsonb;not null;default:'{}'"`
	CreatedAt  time.Time  `gorm:"column:created_at;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
