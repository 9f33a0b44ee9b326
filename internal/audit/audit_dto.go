package audit

// Entry adalah input penulisan audit. Semua field selain Action dan
// EntityType opsional dengan default yang terdefinisi.
type Entry struct {
	UserID     string
	UserRole   string
	UserName   string
	UserEmail  string
	Action     string
	EntityType string
	EntityID   string
	Metadata   map[string]any
}

type AppendAuditLogRequest struct {
	UserID     string         `json:"userId"`
	UserRole   string         `json:"userRole"`
	UserName   string         `json:"userName"`
	UserEmail  string         `json:"userEmail"`
	Action     string         `json:"action" binding:"required"`
	EntityType string         `json:"entityType" binding:"required"`
	EntityID   string         `json:"entityId"`
	Metadata   map[string]any `json:"metadata"`
}

type AuditLogResponse struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id,omitempty"`
	UserRole   string         `json:"user_role"`
	UserName   string         `json:"user_name,omitempty"`
	UserEmail  string         `json:"user_email,omitempty"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   *string        `json:"entity_id"`
	Metadata   map[string]any `json:"metadata"`
	CreatedAt  string         `json:"created_at"`
}
