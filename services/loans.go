package services

import (
	"context"
	"errors"
	"time"

	"vyaparkendra/models"
	"vyaparkendra/partners"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LoanService handles loan applications. Loans never touch the ledger;
// they are pure workflow records routed to an NBFC partner.
type LoanService struct {
	db *gorm.DB
}

func NewLoanService(db *gorm.DB) *LoanService {
	return &LoanService{db: db}
}

type LoanInput struct {
	MitraID       string
	NBFCPartnerID string
	Applicant     string
	Phone         string
	GSTIN         string
	Amount        decimal.Decimal
	Purpose       string
	TenureMonths  int
	Income        decimal.Decimal
}

// scoreApplication is the placeholder scoring rule: a well-formed 15-digit
// GSTIN scores 750, everything else 600.
func scoreApplication(gstin string) int {
	if len(gstin) == 15 {
		return 750
	}
	return 600
}

// Apply files a loan application and queues the partner notification.
func (s *LoanService) Apply(ctx context.Context, in LoanInput) (*models.Loan, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var partner models.NBFCPartner
	err := s.db.Where("id = ? AND is_active = true", in.NBFCPartnerID).First(&partner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	loan := &models.Loan{
		ID:            uuid.New().String(),
		MitraID:       in.MitraID,
		NBFCPartnerID: partner.ID,
		Applicant:     in.Applicant,
		Phone:         in.Phone,
		GSTIN:         in.GSTIN,
		CreditScore:   scoreApplication(in.GSTIN),
		Amount:        in.Amount,
		Purpose:       in.Purpose,
		TenureMonths:  in.TenureMonths,
		Income:        in.Income,
		Status:        models.LoanStatusSubmitted,
	}
	if err := s.db.Create(loan).Error; err != nil {
		return nil, err
	}

	// Notify inline once; the background dispatcher retries failures.
	if err := s.notify(ctx, partner, loan); err != nil {
		logrus.WithFields(logrus.Fields{
			"loan_id": loan.ID,
			"partner": partner.Name,
		}).WithError(err).Warn("partner notification failed, will retry")
	}
	return loan, nil
}

func (s *LoanService) notify(ctx context.Context, partner models.NBFCPartner, loan *models.Loan) error {
	connector := partners.Get(partner.Connector)
	if err := connector.Submit(ctx, partner, *loan); err != nil {
		return err
	}
	now := time.Now().UTC()
	return s.db.Model(&models.Loan{}).
		Where("id = ?", loan.ID).
		Update("notified_at", &now).Error
}

// DispatchPending retries partner notifications for loans that were never
// acknowledged. Run from the maintenance scheduler.
func (s *LoanService) DispatchPending(ctx context.Context) error {
	var loans []models.Loan
	if err := s.db.Where("notified_at IS NULL AND status = ?", models.LoanStatusSubmitted).
		Find(&loans).Error; err != nil {
		return err
	}
	for i := range loans {
		var partner models.NBFCPartner
		if err := s.db.Where("id = ?", loans[i].NBFCPartnerID).First(&partner).Error; err != nil {
			continue
		}
		if err := s.notify(ctx, partner, &loans[i]); err != nil {
			logrus.WithFields(logrus.Fields{
				"loan_id": loans[i].ID,
				"partner": partner.Name,
			}).WithError(err).Warn("partner notification retry failed")
		}
	}
	return nil
}

func (s *LoanService) ListByMitra(mitraID string) ([]models.Loan, error) {
	var loans []models.Loan
	err := s.db.Where("mitra_id = ?", mitraID).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

func (s *LoanService) ListSubmitted() ([]models.Loan, error) {
	var loans []models.Loan
	err := s.db.Where("status = ?", models.LoanStatusSubmitted).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

var loanTransitions = map[string][]string{
	models.LoanStatusSubmitted: {models.LoanStatusApproved, models.LoanStatusRejected},
	models.LoanStatusApproved:  {models.LoanStatusDisbursed},
}

// UpdateStatus moves a loan along submitted -> approved|rejected ->
// disbursed. Anything else is ErrInvalidState.
func (s *LoanService) UpdateStatus(loanID, status string) error {
	var loan models.Loan
	err := s.db.Where("id = ?", loanID).First(&loan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	allowed := false
	for _, next := range loanTransitions[loan.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidState
	}

	if err := s.db.Model(&models.Loan{}).
		Where("id = ?", loanID).
		Update("status", status).Error; err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"loan_id": loanID,
		"from":    loan.Status,
		"to":      status,
	}).Info("loan status updated")
	return nil
}
