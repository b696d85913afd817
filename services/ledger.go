package services

import (
	"fmt"
	"time"

	"vyaparkendra/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerStore is the append-only record of monetary movements. Entries are
// never updated or deleted; every aggregate the platform reports is a
// summation over them.
type LedgerStore struct {
	db *gorm.DB
}

func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// LedgerFilter narrows a sum or listing. Zero-valued fields are ignored.
type LedgerFilter struct {
	Types         []string
	DebitAccount  string
	CreditAccount string
	Region        string
	MitraID       string
	Since         time.Time
	Until         time.Time
}

func (f LedgerFilter) apply(q *gorm.DB) *gorm.DB {
	if len(f.Types) > 0 {
		q = q.Where("type IN ?", f.Types)
	}
	if f.DebitAccount != "" {
		q = q.Where("debit_account = ?", f.DebitAccount)
	}
	if f.CreditAccount != "" {
		q = q.Where("credit_account = ?", f.CreditAccount)
	}
	if f.Region != "" {
		q = q.Where("region = ?", f.Region)
	}
	if f.MitraID != "" {
		q = q.Where("mitra_id = ?", f.MitraID)
	}
	if !f.Since.IsZero() {
		q = q.Where("created_at >= ?", f.Since)
	}
	if !f.Until.IsZero() {
		q = q.Where("created_at < ?", f.Until)
	}
	return q
}

// Append inserts one immutable entry. When tx is non-nil the insert joins
// the caller's transaction so a movement and its balance update commit as
// one unit.
func (s *LedgerStore) Append(tx *gorm.DB, e *models.LedgerEntry) error {
	if tx == nil {
		tx = s.db
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("ledger: negative amount %s for %s", e.Amount, e.Type)
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return tx.Create(e).Error
}

// Sum returns the arithmetic total of matching amounts. An empty match set
// is zero, not an error.
func (s *LedgerStore) Sum(f LedgerFilter) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := f.apply(s.db.Model(&models.LedgerEntry{})).
		Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Recent lists the newest matching entries, newest first.
func (s *LedgerStore) Recent(f LedgerFilter, limit int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := f.apply(s.db.Model(&models.LedgerEntry{})).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
