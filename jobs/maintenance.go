package jobs

import (
	"context"
	"time"

	"vyaparkendra/services"
	tasks "vyaparkendra/task"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const auditRetention = 90 * 24 * time.Hour

// StartMaintenance runs the recurring housekeeping loops: wallet balance
// reconciliation against the ledger, retrying NBFC partner notifications
// that were never acknowledged, and audit log pruning.
func StartMaintenance(db *gorm.DB, wallets *services.WalletService, loans *services.LoanService) {
	tickerReconcile := time.NewTicker(5 * time.Minute)
	go func() {
		for {
			<-tickerReconcile.C
			if err := wallets.Reconcile(context.Background()); err != nil {
				logrus.WithError(err).Error("wallet reconciliation failed")
			}
		}
	}()

	tickerLoans := time.NewTicker(2 * time.Minute)
	go func() {
		for {
			<-tickerLoans.C
			if err := loans.DispatchPending(context.Background()); err != nil {
				logrus.WithError(err).Error("loan notification dispatch failed")
			}
		}
	}()

	tickerPrune := time.NewTicker(24 * time.Hour)
	go func() {
		for {
			<-tickerPrune.C
			tasks.PruneAuditLogs(db, auditRetention)
		}
	}()
}
