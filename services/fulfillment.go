package services

import (
	"context"
	"errors"

	"vyaparkendra/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FulfillmentService orchestrates the paid service-request lifecycle:
// debit the mitra's wallet, post the franchise commission and insert the
// request as one transaction, then a single terminal completion later.
type FulfillmentService struct {
	db          *gorm.DB
	wallets     *WalletService
	commissions *CommissionEngine
}

func NewFulfillmentService(db *gorm.DB, wallets *WalletService, commissions *CommissionEngine) *FulfillmentService {
	return &FulfillmentService{db: db, wallets: wallets, commissions: commissions}
}

type CreateRequestInput struct {
	MitraID      string
	ServiceID    string
	CitizenName  string
	CitizenPhone string
	IDNumber     string
	Notes        string
}

// CreateServiceRequest charges the wallet, posts the commission and
// records the request, all or nothing. An InsufficientFunds debit rolls
// everything back; no request or commission entry survives it.
func (s *FulfillmentService) CreateServiceRequest(ctx context.Context, in CreateRequestInput) (*models.ServiceRequest, error) {
	var mitra models.User
	err := s.db.Where("id = ? AND role = ?", in.MitraID, models.RoleMitra).First(&mitra).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	var svc models.Service
	err = s.db.Where("id = ?", in.ServiceID).First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if svc.Price.IsNegative() {
		return nil, ErrInvalidAmount
	}

	req := &models.ServiceRequest{
		ID:           uuid.New().String(),
		MitraID:      mitra.ID,
		ServiceID:    svc.ID,
		CitizenName:  in.CitizenName,
		CitizenPhone: in.CitizenPhone,
		IDNumber:     in.IDNumber,
		Notes:        in.Notes,
		Price:        svc.Price,
		Region:       mitra.Region,
		Status:       models.RequestStatusCreated,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Free catalog entries skip the debit; the zero-amount commission
		// entry is still posted so every service event is on the ledger.
		if svc.Price.IsPositive() {
			if err := s.wallets.Debit(tx, mitra.ID, mitra.Region, svc.Price, req.ID); err != nil {
				return err
			}
		}
		if _, err := s.commissions.Post(tx, mitra.Region, mitra.ID, svc.Price, req.ID); err != nil {
			return err
		}
		return tx.Create(req).Error
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			logrus.WithFields(logrus.Fields{
				"mitra_id":   mitra.ID,
				"service_id": svc.ID,
				"price":      svc.Price.String(),
			}).Info("service request rejected, insufficient funds")
		}
		return nil, err
	}

	s.wallets.InvalidateBalance(ctx, mitra.ID)
	logrus.WithFields(logrus.Fields{
		"request_id": req.ID,
		"mitra_id":   mitra.ID,
		"service_id": svc.ID,
		"region":     mitra.Region,
		"price":      svc.Price.String(),
	}).Info("service request created")
	return req, nil
}

// CompleteRequest transitions a request created -> completed exactly once.
// Completion is not a monetary event; the debit and commission were posted
// at creation. A second completion fails with ErrInvalidState.
func (s *FulfillmentService) CompleteRequest(ctx context.Context, requestID, mitraID string) error {
	res := s.db.Model(&models.ServiceRequest{}).
		Where("id = ? AND mitra_id = ? AND status = ?", requestID, mitraID, models.RequestStatusCreated).
		Update("status", models.RequestStatusCompleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var req models.ServiceRequest
		err := s.db.Where("id = ? AND mitra_id = ?", requestID, mitraID).First(&req).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return ErrInvalidState
	}

	logrus.WithFields(logrus.Fields{
		"request_id": requestID,
		"mitra_id":   mitraID,
	}).Info("service request completed")
	return nil
}

// RequestsByMitra lists a mitra's requests, newest first.
func (s *FulfillmentService) RequestsByMitra(mitraID string) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := s.db.Where("mitra_id = ?", mitraID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}
