package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RequestStatusCreated   = "created"
	RequestStatusCompleted = "completed"
)

// ServiceRequest is one fulfillment event: a citizen served a catalog
// service by a mitra. Price is snapshotted from the catalog at creation;
// later catalog edits never change what was charged.
type ServiceRequest struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	MitraID      string          `gorm:"size:36;index" json:"mitra_id"`
	ServiceID    string          `gorm:"size:36;index" json:"service_id"`
	CitizenName  string          `gorm:"size:128" json:"citizen_name"`
	CitizenPhone string          `gorm:"size:32" json:"citizen_phone"`
	IDNumber     string          `gorm:"size:32" json:"id_number"`
	Notes        string          `gorm:"size:255" json:"notes"`
	Price        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	Region       string          `gorm:"size:64;index" json:"region"`
	Status       string          `gorm:"size:16;index;default:created" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
