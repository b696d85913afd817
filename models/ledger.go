package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger entry types. Recharge, ServiceDebit and FranchiseCommission are the
// movements this schema writes. EntryCredit and EntryDebit are kept so rows
// imported from the earlier mitra-payout schema stay queryable.
const (
	EntryRecharge            = "RECHARGE"
	EntryServiceDebit        = "SERVICE_DEBIT"
	EntryFranchiseCommission = "FRANCHISE_COMMISSION"
	EntryCredit              = "CREDIT"
	EntryDebit               = "DEBIT"
)

// Well-known account labels. Direction of a movement is encoded by the
// debit/credit account pair, never by the sign of the amount.
const (
	AccountBank            = "BANK"
	AccountPlatformRevenue = "PLATFORM_REVENUE"
)

func WalletAccount(userID string) string {
	return "WALLET:" + userID
}

func FranchiseAccount(region string) string {
	return "FRANCHISE:" + region
}

// LedgerEntry is one immutable monetary movement. Rows are only ever
// inserted; balances and revenue are derived by summation over them.
type LedgerEntry struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Type          string          `gorm:"size:32;index:idx_ledger_type_region" json:"type"`
	DebitAccount  string          `gorm:"size:64;index" json:"debit_account"`
	CreditAccount string          `gorm:"size:64;index" json:"credit_account"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Region        string          `gorm:"size:64;index:idx_ledger_type_region" json:"region"`
	MitraID       string          `gorm:"size:36;index" json:"mitra_id"`
	Reference     string          `gorm:"size:64" json:"reference"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
}
