// internal/models/audit.go
package models

// AuditLog records every mutating API call (product CRUD, order placement, status changes).
type AuditLog struct {
	BaseModel
	UserID       *string `json:"user_id" gorm:"type:uuid;index"`
	Action       string  `json:"action" gorm:"size:100;not null;index"`
	ResourceType string  `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *string `json:"resource_id" gorm:"type:uuid;index"`
	NewValues    JSONB   `json:"new_values" gorm:"type:jsonb"`
	StatusCode   int     `json:"status_code"`
	IPAddress    string  `json:"ip_address" gorm:"size:45"`
	UserAgent    string  `json:"user_agent" gorm:"type:text"`
}
