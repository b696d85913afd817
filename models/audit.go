package models

import "time"

// AuditLog is an append-only trail of user-visible actions, kept for the
// compliance and government views.
type AuditLog struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index" json:"user_id"`
	Role      string    `gorm:"size:16" json:"role"`
	Action    string    `gorm:"size:255" json:"action"`
	IPAddress string    `gorm:"size:64" json:"ip_address"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
