package services

import (
	"rentaj/services/logger"
)

// ReconcilerService adapts the status reconciliation for the cron scheduler.
type ReconcilerService struct {
	log logger.Logger
}

func NewReconcilerService(log logger.Logger) *ReconcilerService {
	return &ReconcilerService{log: log}
}

func (s *ReconcilerService) ReconcileCarStatuses() (int, error) {
	released, err := ReconcileCarStatuses()
	if err != nil {
		s.log.Error("car status reconciliation failed: %v", err)
		return 0, err
	}
	if released > 0 {
		s.log.Info("released %d cars back to the available pool", released)
	}
	return released, nil
}
