package tasks

import (
	"time"

	"vyaparkendra/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PruneAuditLogs deletes audit rows older than the retention window.
// The monetary ledger is never pruned; only the activity trail is.
func PruneAuditLogs(db *gorm.DB, retention time.Duration) {
	cutoff := time.Now().Add(-retention)
	result := db.Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	if result.Error != nil {
		logrus.WithError(result.Error).Error("failed to prune audit logs")
		return
	}
	logrus.WithFields(logrus.Fields{
		"deleted": result.RowsAffected,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("pruned old audit logs")
}
