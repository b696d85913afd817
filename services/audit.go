package services

import (
	"vyaparkendra/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditTrail records user-visible actions. Writes are best effort: a failed
// audit insert is logged but never fails the action it describes.
type AuditTrail struct {
	db *gorm.DB
}

func NewAuditTrail(db *gorm.DB) *AuditTrail {
	return &AuditTrail{db: db}
}

func (a *AuditTrail) Record(userID, role, action, ip string) {
	entry := models.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Role:      role,
		Action:    action,
		IPAddress: ip,
	}
	if err := a.db.Create(&entry).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"action":  action,
		}).WithError(err).Error("audit log write failed")
	}
}

func (a *AuditTrail) Recent(limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := a.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// RecentByRegion lists the latest actions of users in one region, for the
// government compliance view.
func (a *AuditTrail) RecentByRegion(region string, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := a.db.Model(&models.AuditLog{}).
		Select("audit_logs.*").
		Joins("JOIN users ON users.id = audit_logs.user_id").
		Where("users.region = ?", region).
		Order("audit_logs.created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
