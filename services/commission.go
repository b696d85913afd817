package services

import (
	"vyaparkendra/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCommissionRate is the franchise share of platform revenue.
var DefaultCommissionRate = decimal.RequireFromString("0.10")

// CommissionEngine posts the regional franchise's cut of platform revenue
// whenever a paid service is rendered. Each call represents one distinct
// service event, so posting twice for two events is correct; only the
// arithmetic is idempotent.
type CommissionEngine struct {
	ledger *LedgerStore
	rate   decimal.Decimal
}

func NewCommissionEngine(ledger *LedgerStore, rate decimal.Decimal) *CommissionEngine {
	return &CommissionEngine{ledger: ledger, rate: rate}
}

// Amount computes the commission for a gross service price. Rounding is
// half-even to the paise, everywhere, so summing per-entry commissions
// always equals recomputing the total.
func (e *CommissionEngine) Amount(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(e.rate).RoundBank(2)
}

// Post appends one FRANCHISE_COMMISSION entry for a rendered service.
// A zero-price service still posts a zero-amount entry so the audit trail
// shows every service event.
func (e *CommissionEngine) Post(tx *gorm.DB, region, mitraID string, gross decimal.Decimal, reference string) (decimal.Decimal, error) {
	if gross.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	amount := e.Amount(gross)
	err := e.ledger.Append(tx, &models.LedgerEntry{
		Type:          models.EntryFranchiseCommission,
		DebitAccount:  models.AccountPlatformRevenue,
		CreditAccount: models.FranchiseAccount(region),
		Amount:        amount,
		Region:        region,
		MitraID:       mitraID,
		Reference:     reference,
	})
	if err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}
