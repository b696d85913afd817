package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"vyaparkendra/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPartner(t *testing.T, db *gorm.DB, endpoint string) models.NBFCPartner {
	t.Helper()
	partner := models.NBFCPartner{
		ID:             uuid.New().String(),
		Name:           "Bharat Capital",
		APIEndpoint:    endpoint,
		CommissionRate: decimal.RequireFromString("0.015"),
		Connector:      "webhook",
		IsActive:       true,
	}
	require.NoError(t, db.Create(&partner).Error)
	return partner
}

func TestScoreApplication(t *testing.T) {
	assert.Equal(t, 750, scoreApplication("27AAPFU0939F1ZV"))
	assert.Equal(t, 600, scoreApplication(""))
	assert.Equal(t, 600, scoreApplication("short"))
}

func TestLoanApplyNotifiesPartner(t *testing.T) {
	db := newTestDB(t)
	loans := NewLoanService(db)
	mitra := newMitra(t, db, "Pune")
	ctx := context.Background()

	var received atomic.Int32
	var lastPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastPayload))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	partner := newPartner(t, db, server.URL)

	loan, err := loans.Apply(ctx, LoanInput{
		MitraID:       mitra.ID,
		NBFCPartnerID: partner.ID,
		Applicant:     "Ravi Deshmukh",
		GSTIN:         "27AAPFU0939F1ZV",
		Amount:        money("50000"),
		TenureMonths:  12,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusSubmitted, loan.Status)
	assert.Equal(t, 750, loan.CreditScore)

	assert.EqualValues(t, 1, received.Load())
	assert.Equal(t, loan.ID, lastPayload["loan_id"])
	assert.Equal(t, "27AAPFU0939F1ZV", lastPayload["gstin"])

	var stored models.Loan
	require.NoError(t, db.First(&stored, "id = ?", loan.ID).Error)
	assert.NotNil(t, stored.NotifiedAt)
}

func TestLoanApplyValidation(t *testing.T) {
	db := newTestDB(t)
	loans := NewLoanService(db)
	mitra := newMitra(t, db, "Pune")
	ctx := context.Background()

	partner := newPartner(t, db, "http://127.0.0.1:0")
	require.NoError(t, db.Model(&models.NBFCPartner{}).
		Where("id = ?", partner.ID).
		Update("is_active", false).Error)

	_, err := loans.Apply(ctx, LoanInput{MitraID: mitra.ID, NBFCPartnerID: partner.ID, Amount: money("0")})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = loans.Apply(ctx, LoanInput{MitraID: mitra.ID, NBFCPartnerID: partner.ID, Amount: money("1000")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = loans.Apply(ctx, LoanInput{MitraID: mitra.ID, NBFCPartnerID: "no-such-partner", Amount: money("1000")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDispatchPendingRetriesFailedNotifications(t *testing.T) {
	db := newTestDB(t)
	loans := NewLoanService(db)
	mitra := newMitra(t, db, "Pune")
	ctx := context.Background()

	var failing atomic.Bool
	failing.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	partner := newPartner(t, db, server.URL)

	loan, err := loans.Apply(ctx, LoanInput{
		MitraID:       mitra.ID,
		NBFCPartnerID: partner.ID,
		Applicant:     "Sunita More",
		Amount:        money("25000"),
	})
	require.NoError(t, err)

	// First delivery failed; the loan stays queued.
	var stored models.Loan
	require.NoError(t, db.First(&stored, "id = ?", loan.ID).Error)
	assert.Nil(t, stored.NotifiedAt)

	failing.Store(false)
	require.NoError(t, loans.DispatchPending(ctx))

	require.NoError(t, db.First(&stored, "id = ?", loan.ID).Error)
	assert.NotNil(t, stored.NotifiedAt)

	// Acknowledged loans are not dispatched again.
	failing.Store(true)
	require.NoError(t, loans.DispatchPending(ctx))
	require.NoError(t, db.First(&stored, "id = ?", loan.ID).Error)
	assert.NotNil(t, stored.NotifiedAt)
}

func TestLoanStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	loans := NewLoanService(db)
	mitra := newMitra(t, db, "Pune")
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	partner := newPartner(t, db, server.URL)

	loan, err := loans.Apply(ctx, LoanInput{MitraID: mitra.ID, NBFCPartnerID: partner.ID, Amount: money("10000")})
	require.NoError(t, err)

	// submitted cannot jump straight to disbursed.
	assert.ErrorIs(t, loans.UpdateStatus(loan.ID, models.LoanStatusDisbursed), ErrInvalidState)

	require.NoError(t, loans.UpdateStatus(loan.ID, models.LoanStatusApproved))
	assert.ErrorIs(t, loans.UpdateStatus(loan.ID, models.LoanStatusRejected), ErrInvalidState)
	require.NoError(t, loans.UpdateStatus(loan.ID, models.LoanStatusDisbursed))

	// disbursed is terminal.
	assert.ErrorIs(t, loans.UpdateStatus(loan.ID, models.LoanStatusApproved), ErrInvalidState)

	assert.ErrorIs(t, loans.UpdateStatus("no-such-loan", models.LoanStatusApproved), ErrNotFound)
}

func TestLoanListings(t *testing.T) {
	db := newTestDB(t)
	loans := NewLoanService(db)
	first := newMitra(t, db, "Pune")
	second := newMitra(t, db, "Nagpur")
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	partner := newPartner(t, db, server.URL)

	a, err := loans.Apply(ctx, LoanInput{MitraID: first.ID, NBFCPartnerID: partner.ID, Amount: money("10000")})
	require.NoError(t, err)
	_, err = loans.Apply(ctx, LoanInput{MitraID: second.ID, NBFCPartnerID: partner.ID, Amount: money("20000")})
	require.NoError(t, err)

	mine, err := loans.ListByMitra(first.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.ID, mine[0].ID)

	submitted, err := loans.ListSubmitted()
	require.NoError(t, err)
	assert.Len(t, submitted, 2)

	require.NoError(t, loans.UpdateStatus(a.ID, models.LoanStatusApproved))
	submitted, err = loans.ListSubmitted()
	require.NoError(t, err)
	assert.Len(t, submitted, 1)
}
