package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is one purchasable catalog entry. Price is what the platform
// charges the mitra's wallet; Commission is the mitra's advertised earning
// from the citizen, shown in the catalog but not posted by the ledger.
type Service struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`
	Name           string          `gorm:"size:128" json:"name"`
	Category       string          `gorm:"size:64;index" json:"category"`
	// Region scopes a catalog entry to one district; empty means nationwide.
	Region         string          `gorm:"size:64;index" json:"region"`
	Price          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	Commission     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"commission"`
	Description    string          `gorm:"size:255" json:"description"`
	ProcessingTime string          `gorm:"size:32" json:"processing_time"`
	CreatedAt      time.Time       `json:"created_at"`
}
