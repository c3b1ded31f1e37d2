package models

import "time"

// AuditLog is an append-only record of a security-relevant action.
type AuditLog struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"user_id" gorm:"type:varchar(36);index"`
	Action     string    `json:"action" gorm:"type:varchar(255)"`
	EntityType string    `json:"entity_type" gorm:"type:varchar(50)"`
	EntityID   string    `json:"entity_id" gorm:"type:varchar(36)"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}
