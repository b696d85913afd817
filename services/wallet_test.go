package services

import (
	"context"
	"sync"
	"testing"

	"vyaparkendra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRechargeCreatesWalletLazily(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerStore(db)
	wallets := NewWalletService(db, ledger, nil)
	mitra := newMitra(t, db, "Pune")
	ctx := context.Background()

	// No wallet row yet: balance is zero, not an error.
	balance, err := wallets.Balance(ctx, mitra.ID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	newBalance, err := wallets.Recharge(ctx, mitra.ID, money("1000"))
	require.NoError(t, err)
	assert.True(t, newBalance.Equal(money("1000")))

	newBalance, err = wallets.Recharge(ctx, mitra.ID, money("250.50"))
	require.NoError(t, err)
	assert.True(t, newBalance.Equal(money("1250.50")))

	balance, err = wallets.Balance(ctx, mitra.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(money("1250.50")))

	var entries int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).
		Where("type = ?", models.EntryRecharge).
		Count(&entries).Error)
	assert.EqualValues(t, 2, entries)
}

func TestRechargeValidation(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db, NewLedgerStore(db), nil)
	mitra := newMitra(t, db, "Pune")
	ctx := context.Background()

	_, err := wallets.Recharge(ctx, mitra.ID, money("0"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = wallets.Recharge(ctx, mitra.ID, money("-10"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = wallets.Recharge(ctx, "no-such-user", money("100"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDebitInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerStore(db)
	wallets := NewWalletService(db, ledger, nil)
	mitra := newMitra(t, db, "Pune")
	ctx := context.Background()

	_, err := wallets.Recharge(ctx, mitra.ID, money("100"))
	require.NoError(t, err)

	err = wallets.Debit(db, mitra.ID, mitra.Region, money("300"), "req-1")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// The rejected debit must leave no trace: balance untouched, no entry.
	balance, err := wallets.Balance(ctx, mitra.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(money("100")))

	var debits int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).
		Where("type = ?", models.EntryServiceDebit).
		Count(&debits).Error)
	assert.Zero(t, debits)
}

func TestDebitRejectsNonPositive(t *testing.T) {
	db := newTestDB(t)
	wallets := NewWalletService(db, NewLedgerStore(db), nil)
	mitra := newMitra(t, db, "Pune")

	assert.ErrorIs(t, wallets.Debit(db, mitra.ID, mitra.Region, money("0"), "r"), ErrInvalidAmount)
	assert.ErrorIs(t, wallets.Debit(db, mitra.ID, mitra.Region, money("-1"), "r"), ErrInvalidAmount)
}

func TestLedgerReconstructsBalance(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerStore(db)
	wallets := NewWalletService(db, ledger, nil)
	mitra := newMitra(t, db, "Pune")
	ctx := context.Background()

	sequence := []struct {
		recharge bool
		amount   string
	}{
		{true, "1000"},
		{false, "300"},
		{true, "49.99"},
		{false, "120.01"},
		{false, "0.98"},
	}
	for _, step := range sequence {
		if step.recharge {
			_, err := wallets.Recharge(ctx, mitra.ID, money(step.amount))
			require.NoError(t, err)
		} else {
			require.NoError(t, wallets.Debit(db, mitra.ID, mitra.Region, money(step.amount), "req"))
		}
	}

	cached, err := wallets.Balance(ctx, mitra.ID)
	require.NoError(t, err)
	derived, err := wallets.DerivedBalance(mitra.ID)
	require.NoError(t, err)

	assert.True(t, cached.Equal(derived), "cached %s, derived %s", cached, derived)
	assert.True(t, cached.Equal(money("629.00")), "got %s", cached)
}

func TestConcurrentFirstRecharges(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerStore(db)
	wallets := NewWalletService(db, ledger, nil)
	mitra := newMitra(t, db, "Pune")
	ctx := context.Background()

	// All goroutines hit a user with no wallet row yet. Exactly one insert
	// may win; the rest must fold into increments, never a constraint error.
	const workers = 6
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = wallets.Recharge(ctx, mitra.ID, money("100"))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "recharge #%d", i)
	}

	var rows int64
	require.NoError(t, db.Model(&models.Wallet{}).
		Where("user_id = ?", mitra.ID).
		Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	balance, err := wallets.Balance(ctx, mitra.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(money("600")), "got %s", balance)

	derived, err := wallets.DerivedBalance(mitra.ID)
	require.NoError(t, err)
	assert.True(t, derived.Equal(money("600")))
}

func TestRechargeReturnsStoredBalance(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerStore(db)
	wallets := NewWalletService(db, ledger, nil)
	mitra := newMitra(t, db, "Pune")
	ctx := context.Background()

	_, err := wallets.Recharge(ctx, mitra.ID, money("500"))
	require.NoError(t, err)
	require.NoError(t, wallets.Debit(db, mitra.ID, mitra.Region, money("200"), "req"))

	// The reported balance is the row after the increment, so it reflects
	// every movement committed before it.
	returned, err := wallets.Recharge(ctx, mitra.ID, money("50"))
	require.NoError(t, err)
	assert.True(t, returned.Equal(money("350")), "got %s", returned)

	stored, err := wallets.Balance(ctx, mitra.ID)
	require.NoError(t, err)
	assert.True(t, stored.Equal(returned))
}

func TestReconcileRepairsDrift(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerStore(db)
	wallets := NewWalletService(db, ledger, nil)
	mitra := newMitra(t, db, "Pune")
	ctx := context.Background()

	_, err := wallets.Recharge(ctx, mitra.ID, money("500"))
	require.NoError(t, err)

	// Corrupt the cached projection behind the service's back.
	require.NoError(t, db.Model(&models.Wallet{}).
		Where("user_id = ?", mitra.ID).
		Update("balance", money("9999")).Error)

	require.NoError(t, wallets.Reconcile(ctx))

	balance, err := wallets.Balance(ctx, mitra.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(money("500")))
}
