package services

import (
	"context"
	"errors"
	"time"

	"vyaparkendra/helpers"
	"vyaparkendra/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const balanceCacheTTL = 60 * time.Second

// WalletService exposes a mitra's prepaid balance and the operations that
// change it. Every balance mutation appends its ledger entry in the same
// database transaction; the wallet row is only a cached projection.
type WalletService struct {
	db     *gorm.DB
	ledger *LedgerStore
	cache  *redis.Client
}

// NewWalletService builds a wallet service. cache may be nil, which
// disables the Redis balance cache.
func NewWalletService(db *gorm.DB, ledger *LedgerStore, cache *redis.Client) *WalletService {
	return &WalletService{db: db, ledger: ledger, cache: cache}
}

func balanceCacheKey(userID string) string {
	return "wallet:balance:" + userID
}

// Balance returns the spendable balance for a mitra. A mitra without a
// wallet row yet (nothing recharged) has a zero balance.
func (s *WalletService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	if s.cache != nil {
		var cached string
		found, err := helpers.GetCache(ctx, s.cache, balanceCacheKey(userID), &cached)
		if err == nil && found {
			if b, perr := decimal.NewFromString(cached); perr == nil {
				return b, nil
			}
		}
	}

	var wallet models.Wallet
	err := s.db.Where("user_id = ?", userID).First(&wallet).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		wallet.Balance = decimal.Zero
	case err != nil:
		return decimal.Zero, err
	}

	if s.cache != nil {
		_ = helpers.SetCache(ctx, s.cache, balanceCacheKey(userID), wallet.Balance.String(), balanceCacheTTL)
	}
	return wallet.Balance, nil
}

// DerivedBalance recomputes the balance purely from the ledger:
// sum(credits to this wallet) - sum(debits from this wallet). It is the
// reference the cached wallet row must always agree with.
func (s *WalletService) DerivedBalance(userID string) (decimal.Decimal, error) {
	account := models.WalletAccount(userID)
	credits, err := s.ledger.Sum(LedgerFilter{CreditAccount: account})
	if err != nil {
		return decimal.Zero, err
	}
	debits, err := s.ledger.Sum(LedgerFilter{DebitAccount: account})
	if err != nil {
		return decimal.Zero, err
	}
	return credits.Sub(debits), nil
}

// Recharge tops up a mitra's wallet from the bank settlement account and
// records the RECHARGE entry atomically with the balance update.
func (s *WalletService) Recharge(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrNotFound
		}
		return decimal.Zero, err
	}

	var newBalance decimal.Decimal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Upsert so two first recharges never race on the user_id unique
		// index: the loser of the insert lands on the increment instead.
		wallet := models.Wallet{ID: uuid.New().String(), UserID: userID, Balance: amount}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"balance":    gorm.Expr("balance + ?", amount),
				"updated_at": time.Now().UTC(),
			}),
		}).Create(&wallet).Error; err != nil {
			return err
		}

		// Re-read inside the transaction; the stored row is the balance we
		// report, not an earlier snapshot plus the amount.
		if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			return err
		}
		newBalance = wallet.Balance

		return s.ledger.Append(tx, &models.LedgerEntry{
			Type:          models.EntryRecharge,
			DebitAccount:  models.AccountBank,
			CreditAccount: models.WalletAccount(userID),
			Amount:        amount,
			Region:        user.Region,
			MitraID:       userID,
		})
	})
	if err != nil {
		return decimal.Zero, err
	}

	s.InvalidateBalance(ctx, userID)
	logrus.WithFields(logrus.Fields{
		"mitra_id": userID,
		"amount":   amount.String(),
		"balance":  newBalance.String(),
		"type":     models.EntryRecharge,
	}).Info("wallet recharged")
	return newBalance, nil
}

// Debit decrements the wallet inside the caller's transaction and appends
// the SERVICE_DEBIT entry. The check-then-decrement is a single conditional
// UPDATE so two concurrent debits can never overdraw the wallet; a zero
// affected-row count means the balance did not cover the amount.
// The caller must invalidate the balance cache after commit.
func (s *WalletService) Debit(tx *gorm.DB, userID, region string, amount decimal.Decimal, reference string) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	res := tx.Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientFunds
	}

	return s.ledger.Append(tx, &models.LedgerEntry{
		Type:          models.EntryServiceDebit,
		DebitAccount:  models.WalletAccount(userID),
		CreditAccount: models.AccountPlatformRevenue,
		Amount:        amount,
		Region:        region,
		MitraID:       userID,
		Reference:     reference,
	})
}

// InvalidateBalance drops the cached balance after a movement committed.
func (s *WalletService) InvalidateBalance(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	_ = helpers.DeleteCache(ctx, s.cache, balanceCacheKey(userID))
}

// Reconcile walks every wallet and repairs cached balances that drifted
// from the ledger. Drift is always a bug somewhere; it is logged loudly.
func (s *WalletService) Reconcile(ctx context.Context) error {
	var wallets []models.Wallet
	if err := s.db.Find(&wallets).Error; err != nil {
		return err
	}
	for _, w := range wallets {
		derived, err := s.DerivedBalance(w.UserID)
		if err != nil {
			return err
		}
		if derived.Equal(w.Balance) {
			continue
		}
		logrus.WithFields(logrus.Fields{
			"mitra_id": w.UserID,
			"cached":   w.Balance.String(),
			"derived":  derived.String(),
		}).Warn("wallet balance drift, repairing from ledger")
		if err := s.db.Model(&models.Wallet{}).
			Where("id = ?", w.ID).
			Update("balance", derived).Error; err != nil {
			return err
		}
		s.InvalidateBalance(ctx, w.UserID)
	}
	return nil
}
