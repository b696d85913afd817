package services

import (
	"context"
	"time"

	"vyaparkendra/helpers"
	"vyaparkendra/models"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dashboardCacheTTL = 30 * time.Second

// DashboardService produces the read-only per-role rollups. Everything is
// derived by summation and counting; no method mutates state, and an empty
// platform reports zeros rather than errors. These are reporting views, so
// short-lived caching is acceptable.
type DashboardService struct {
	db     *gorm.DB
	ledger *LedgerStore
	cache  *redis.Client
}

func NewDashboardService(db *gorm.DB, ledger *LedgerStore, cache *redis.Client) *DashboardService {
	return &DashboardService{db: db, ledger: ledger, cache: cache}
}

type AdminStats struct {
	TotalUsers      int64           `json:"totalUsers"`
	TotalMitras     int64           `json:"totalMitras"`
	TotalRequests   int64           `json:"totalRequests"`
	PlatformRevenue decimal.Decimal `json:"platformRevenue"`
	PendingKyc      int64           `json:"pendingKyc"`
}

type MitraSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	KycStatus string `json:"kyc_status"`
}

type FranchiseStats struct {
	Region               string               `json:"district"`
	TotalCommission      decimal.Decimal      `json:"totalCommission"`
	TotalAgents          int64                `json:"totalAgents"`
	RegionalRequestCount int64                `json:"regionalRequestCount"`
	RegionalVolume       decimal.Decimal      `json:"regionalVolume"`
	Mitras               []MitraSummary       `json:"mitras"`
	RecentCommissions    []models.LedgerEntry `json:"recentCommissions"`
}

type InvestorStats struct {
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	MonthOverMonthGrowth decimal.Decimal `json:"monthOverMonthGrowth"`
}

type MitraStats struct {
	Balance  decimal.Decimal         `json:"balance"`
	Requests []models.ServiceRequest `json:"requests"`
}

type CAStats struct {
	PendingTaxRequests int64 `json:"pendingTaxRequests"`
}

type ComplianceStats struct {
	PendingKyc  int64             `json:"pendingKyc"`
	RecentAudit []models.AuditLog `json:"recentAudit"`
}

type GovtStats struct {
	Region        string          `json:"region"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalRequests int64           `json:"totalRequests"`
}

// platformRevenue is the sum of every wallet debit credited to the
// platform revenue account.
func (s *DashboardService) platformRevenue() (decimal.Decimal, error) {
	return s.ledger.Sum(LedgerFilter{
		Types:         []string{models.EntryServiceDebit},
		CreditAccount: models.AccountPlatformRevenue,
	})
}

func (s *DashboardService) Admin(ctx context.Context) (*AdminStats, error) {
	const cacheKey = "dashboard:admin"
	if s.cache != nil {
		var cached AdminStats
		if found, err := helpers.GetCache(ctx, s.cache, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	var stats AdminStats
	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.RoleMitra).
		Count(&stats.TotalMitras).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ServiceRequest{}).Count(&stats.TotalRequests).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ? AND kyc_status = ?", models.RoleMitra, models.KycPending).
		Count(&stats.PendingKyc).Error; err != nil {
		return nil, err
	}
	revenue, err := s.platformRevenue()
	if err != nil {
		return nil, err
	}
	stats.PlatformRevenue = revenue

	if s.cache != nil {
		_ = helpers.SetCache(ctx, s.cache, cacheKey, stats, dashboardCacheTTL)
	}
	return &stats, nil
}

func (s *DashboardService) Franchise(ctx context.Context, region string) (*FranchiseStats, error) {
	stats := FranchiseStats{Region: region}

	commission, err := s.ledger.Sum(LedgerFilter{
		Types:  []string{models.EntryFranchiseCommission},
		Region: region,
	})
	if err != nil {
		return nil, err
	}
	stats.TotalCommission = commission

	if err := s.db.Model(&models.User{}).
		Where("role = ? AND region = ?", models.RoleMitra, region).
		Count(&stats.TotalAgents).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ServiceRequest{}).
		Where("region = ?", region).
		Count(&stats.RegionalRequestCount).Error; err != nil {
		return nil, err
	}

	row := s.db.Model(&models.ServiceRequest{}).
		Where("region = ?", region).
		Select("COALESCE(SUM(price), 0)").Row()
	if err := row.Scan(&stats.RegionalVolume); err != nil {
		return nil, err
	}

	var mitras []models.User
	if err := s.db.Where("role = ? AND region = ?", models.RoleMitra, region).
		Order("created_at DESC").
		Find(&mitras).Error; err != nil {
		return nil, err
	}
	stats.Mitras = make([]MitraSummary, 0, len(mitras))
	for _, m := range mitras {
		stats.Mitras = append(stats.Mitras, MitraSummary{ID: m.ID, Name: m.Name, KycStatus: m.KycStatus})
	}

	recent, err := s.ledger.Recent(LedgerFilter{
		Types:  []string{models.EntryFranchiseCommission},
		Region: region,
	}, 10)
	if err != nil {
		return nil, err
	}
	stats.RecentCommissions = recent
	return &stats, nil
}

func (s *DashboardService) Investor(ctx context.Context) (*InvestorStats, error) {
	const cacheKey = "dashboard:investor"
	if s.cache != nil {
		var cached InvestorStats
		if found, err := helpers.GetCache(ctx, s.cache, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	total, err := s.platformRevenue()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevStart := monthStart.AddDate(0, -1, 0)

	current, err := s.ledger.Sum(LedgerFilter{
		Types:         []string{models.EntryServiceDebit},
		CreditAccount: models.AccountPlatformRevenue,
		Since:         monthStart,
	})
	if err != nil {
		return nil, err
	}
	previous, err := s.ledger.Sum(LedgerFilter{
		Types:         []string{models.EntryServiceDebit},
		CreditAccount: models.AccountPlatformRevenue,
		Since:         prevStart,
		Until:         monthStart,
	})
	if err != nil {
		return nil, err
	}

	stats := InvestorStats{TotalRevenue: total, MonthOverMonthGrowth: growthPercent(previous, current)}
	if s.cache != nil {
		_ = helpers.SetCache(ctx, s.cache, cacheKey, stats, dashboardCacheTTL)
	}
	return &stats, nil
}

func growthPercent(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	return current.Sub(previous).
		Div(previous).
		Mul(decimal.NewFromInt(100)).
		RoundBank(2)
}

func (s *DashboardService) Mitra(ctx context.Context, wallets *WalletService, fulfillment *FulfillmentService, mitraID string) (*MitraStats, error) {
	balance, err := wallets.Balance(ctx, mitraID)
	if err != nil {
		return nil, err
	}
	requests, err := fulfillment.RequestsByMitra(mitraID)
	if err != nil {
		return nil, err
	}
	return &MitraStats{Balance: balance, Requests: requests}, nil
}

// CA sees the open requests in tax-adjacent categories.
func (s *DashboardService) CA(ctx context.Context) (*CAStats, error) {
	var stats CAStats
	err := s.db.Model(&models.ServiceRequest{}).
		Joins("JOIN services ON services.id = service_requests.service_id").
		Where("service_requests.status = ?", models.RequestStatusCreated).
		Where("services.category LIKE ? OR services.category LIKE ? OR services.category LIKE ?",
			"%GST%", "%Tax%", "%ITR%").
		Count(&stats.PendingTaxRequests).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *DashboardService) Compliance(ctx context.Context, audit *AuditTrail) (*ComplianceStats, error) {
	var stats ComplianceStats
	if err := s.db.Model(&models.User{}).
		Where("role = ? AND kyc_status = ?", models.RoleMitra, models.KycPending).
		Count(&stats.PendingKyc).Error; err != nil {
		return nil, err
	}
	recent, err := audit.Recent(20)
	if err != nil {
		return nil, err
	}
	stats.RecentAudit = recent
	return &stats, nil
}

// Govt is the franchise view without the mitra roster: region-scoped
// revenue and request volume only.
func (s *DashboardService) Govt(ctx context.Context, region string) (*GovtStats, error) {
	stats := GovtStats{Region: region}

	revenue, err := s.ledger.Sum(LedgerFilter{
		Types:  []string{models.EntryServiceDebit},
		Region: region,
	})
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue

	if err := s.db.Model(&models.ServiceRequest{}).
		Where("region = ?", region).
		Count(&stats.TotalRequests).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
