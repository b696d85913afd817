package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet caches the spendable prepaid balance of a mitra. The ledger is the
// source of truth; this row is a projection updated in the same transaction
// as every ledger append. Created lazily on first recharge.
type Wallet struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	UserID    string          `gorm:"uniqueIndex;size:36" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
