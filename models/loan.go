package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LoanStatusSubmitted = "submitted"
	LoanStatusApproved  = "approved"
	LoanStatusRejected  = "rejected"
	LoanStatusDisbursed = "disbursed"
)

// Loan is an application record a mitra files on behalf of an applicant.
// It is workflow only: creating or settling a loan never touches the ledger.
type Loan struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	MitraID       string          `gorm:"size:36;index" json:"mitra_id"`
	NBFCPartnerID string          `gorm:"size:36;index" json:"nbfc_partner_id"`
	Applicant     string          `gorm:"size:128" json:"applicant"`
	Phone         string          `gorm:"size:32" json:"phone"`
	GSTIN         string          `gorm:"size:20" json:"gstin"`
	CreditScore   int             `json:"credit_score"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Purpose       string          `gorm:"size:255" json:"purpose"`
	TenureMonths  int             `json:"tenure_months"`
	Income        decimal.Decimal `gorm:"type:numeric(18,2)" json:"income"`
	Status        string          `gorm:"size:16;index;default:submitted" json:"status"`
	// NotifiedAt is set once the partner's endpoint acknowledged the
	// application; nil rows are retried by the background notifier.
	NotifiedAt *time.Time `json:"notified_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type NBFCPartner struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`
	Name           string          `gorm:"size:128" json:"name"`
	APIEndpoint    string          `gorm:"size:255" json:"api_endpoint"`
	CommissionRate decimal.Decimal `gorm:"type:numeric(6,4)" json:"commission_rate"`
	Connector      string          `gorm:"size:32;default:webhook" json:"connector"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}
