package services

import (
	"context"
	"testing"

	"vyaparkendra/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardsEmptyPlatformReportsZeros(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerStore(db)
	dashboards := NewDashboardService(db, ledger, nil)
	ctx := context.Background()

	admin, err := dashboards.Admin(ctx)
	require.NoError(t, err)
	assert.Zero(t, admin.TotalUsers)
	assert.Zero(t, admin.TotalRequests)
	assert.True(t, admin.PlatformRevenue.IsZero())

	franchise, err := dashboards.Franchise(ctx, "Pune")
	require.NoError(t, err)
	assert.True(t, franchise.TotalCommission.IsZero())
	assert.True(t, franchise.RegionalVolume.IsZero())
	assert.Empty(t, franchise.Mitras)

	investor, err := dashboards.Investor(ctx)
	require.NoError(t, err)
	assert.True(t, investor.TotalRevenue.IsZero())
	assert.True(t, investor.MonthOverMonthGrowth.IsZero())

	govt, err := dashboards.Govt(ctx, "Pune")
	require.NoError(t, err)
	assert.True(t, govt.TotalRevenue.IsZero())
	assert.Zero(t, govt.TotalRequests)

	ca, err := dashboards.CA(ctx)
	require.NoError(t, err)
	assert.Zero(t, ca.PendingTaxRequests)
}

func TestDashboardRollups(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerStore(db)
	wallets := NewWalletService(db, ledger, nil)
	fulfillment := NewFulfillmentService(db, wallets, NewCommissionEngine(ledger, DefaultCommissionRate))
	dashboards := NewDashboardService(db, ledger, nil)
	ctx := context.Background()

	pune := newMitra(t, db, "Pune")
	nagpur := newMitra(t, db, "Nagpur")
	identity := newCatalogService(t, db, "PAN Card Application", "Identity", 300)
	tax := newCatalogService(t, db, "GST Return Filing", "GST", 500)

	for _, m := range []models.User{pune, nagpur} {
		_, err := wallets.Recharge(ctx, m.ID, money("2000"))
		require.NoError(t, err)
	}

	_, err := fulfillment.CreateServiceRequest(ctx, CreateRequestInput{MitraID: pune.ID, ServiceID: identity.ID})
	require.NoError(t, err)
	taxReq, err := fulfillment.CreateServiceRequest(ctx, CreateRequestInput{MitraID: pune.ID, ServiceID: tax.ID})
	require.NoError(t, err)
	_, err = fulfillment.CreateServiceRequest(ctx, CreateRequestInput{MitraID: nagpur.ID, ServiceID: identity.ID})
	require.NoError(t, err)

	admin, err := dashboards.Admin(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, admin.TotalUsers)
	assert.EqualValues(t, 2, admin.TotalMitras)
	assert.EqualValues(t, 3, admin.TotalRequests)
	assert.EqualValues(t, 2, admin.PendingKyc)
	assert.True(t, admin.PlatformRevenue.Equal(money("1100")), "got %s", admin.PlatformRevenue)

	franchise, err := dashboards.Franchise(ctx, "Pune")
	require.NoError(t, err)
	assert.True(t, franchise.TotalCommission.Equal(money("80")), "got %s", franchise.TotalCommission)
	assert.EqualValues(t, 1, franchise.TotalAgents)
	assert.EqualValues(t, 2, franchise.RegionalRequestCount)
	assert.True(t, franchise.RegionalVolume.Equal(money("800")), "got %s", franchise.RegionalVolume)
	require.Len(t, franchise.Mitras, 1)
	assert.Equal(t, pune.ID, franchise.Mitras[0].ID)
	assert.Len(t, franchise.RecentCommissions, 2)

	investor, err := dashboards.Investor(ctx)
	require.NoError(t, err)
	assert.True(t, investor.TotalRevenue.Equal(money("1100")))
	// All revenue is in the current month, previous month is zero.
	assert.True(t, investor.MonthOverMonthGrowth.Equal(decimal.NewFromInt(100)))

	govt, err := dashboards.Govt(ctx, "Pune")
	require.NoError(t, err)
	assert.True(t, govt.TotalRevenue.Equal(money("800")))
	assert.EqualValues(t, 2, govt.TotalRequests)

	ca, err := dashboards.CA(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, ca.PendingTaxRequests)

	// Completing the tax request drains the CA queue and nothing else.
	require.NoError(t, fulfillment.CompleteRequest(ctx, taxReq.ID, pune.ID))
	ca, err = dashboards.CA(ctx)
	require.NoError(t, err)
	assert.Zero(t, ca.PendingTaxRequests)

	// Reporting is read-only: a second read returns the same numbers.
	again, err := dashboards.Franchise(ctx, "Pune")
	require.NoError(t, err)
	assert.True(t, again.TotalCommission.Equal(franchise.TotalCommission))
	assert.Equal(t, franchise.RegionalRequestCount, again.RegionalRequestCount)
}

func TestDashboardMitraView(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerStore(db)
	wallets := NewWalletService(db, ledger, nil)
	fulfillment := NewFulfillmentService(db, wallets, NewCommissionEngine(ledger, DefaultCommissionRate))
	dashboards := NewDashboardService(db, ledger, nil)
	ctx := context.Background()

	mitra := newMitra(t, db, "Pune")
	svc := newCatalogService(t, db, "Ration Card", "Welfare", 100)
	_, err := wallets.Recharge(ctx, mitra.ID, money("500"))
	require.NoError(t, err)
	_, err = fulfillment.CreateServiceRequest(ctx, CreateRequestInput{MitraID: mitra.ID, ServiceID: svc.ID})
	require.NoError(t, err)

	stats, err := dashboards.Mitra(ctx, wallets, fulfillment, mitra.ID)
	require.NoError(t, err)
	assert.True(t, stats.Balance.Equal(money("400")))
	require.Len(t, stats.Requests, 1)
}

func TestDashboardCompliance(t *testing.T) {
	db := newTestDB(t)
	dashboards := NewDashboardService(db, NewLedgerStore(db), nil)
	audit := NewAuditTrail(db)
	ctx := context.Background()

	mitra := newMitra(t, db, "Pune")
	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", mitra.ID).
		Update("kyc_status", models.KycApproved).Error)
	newMitra(t, db, "Nagpur")

	audit.Record(mitra.ID, models.RoleMitra, "login", "10.0.0.1")

	stats, err := dashboards.Compliance(ctx, audit)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.PendingKyc)
	require.Len(t, stats.RecentAudit, 1)
	assert.Equal(t, "login", stats.RecentAudit[0].Action)
}

func TestGrowthPercent(t *testing.T) {
	cases := []struct {
		previous, current, want string
	}{
		{"0", "0", "0"},
		{"0", "50", "100"},
		{"100", "150", "50"},
		{"200", "100", "-50"},
		{"300", "300", "0"},
	}
	for _, c := range cases {
		got := growthPercent(money(c.previous), money(c.current))
		assert.True(t, got.Equal(money(c.want)), "prev %s cur %s: got %s", c.previous, c.current, got)
	}
}

func TestComplianceAuditByRegion(t *testing.T) {
	db := newTestDB(t)
	audit := NewAuditTrail(db)

	pune := newMitra(t, db, "Pune")
	nagpur := newMitra(t, db, "Nagpur")
	audit.Record(pune.ID, models.RoleMitra, "wallet_recharge", "10.0.0.1")
	audit.Record(nagpur.ID, models.RoleMitra, "wallet_recharge", "10.0.0.2")
	audit.Record(uuid.New().String(), models.RoleAdmin, "service_added", "10.0.0.3")

	logs, err := audit.RecentByRegion("Pune", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, pune.ID, logs[0].UserID)
}
