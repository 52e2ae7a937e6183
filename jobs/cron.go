package jobs

import (
	"log"
	"time"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// CarStatusReconciler brings car statuses back in line with their bookings.
type CarStatusReconciler interface {
	ReconcileCarStatuses() (int, error)
}

var carStatusReconciler CarStatusReconciler

// SetCarStatusReconciler installs the reconciler implementation.
func SetCarStatusReconciler(reconciler CarStatusReconciler) {
	carStatusReconciler = reconciler
}

// StatusNotifier broadcasts the reconciliation result to websocket clients.
type StatusNotifier func(m *melody.Melody, released int)

var statusNotifier StatusNotifier

// SetStatusNotifier installs the broadcast hook.
func SetStatusNotifier(notifier StatusNotifier) {
	statusNotifier = notifier
}

// InitCronJobs schedules the nightly car status reconciliation.
func InitCronJobs(c *cron.Cron, m *melody.Melody) error {
	// Runs at midnight every day
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		log.Printf("Running car status reconciliation at: %v", now)
		if carStatusReconciler == nil {
			log.Printf("CarStatusReconciler is not set")
			return
		}
		released, err := carStatusReconciler.ReconcileCarStatuses()
		if err != nil {
			log.Printf("Car status reconciliation failed: %v", err)
			return
		}
		log.Printf("Car status reconciliation released %d cars", released)
		if statusNotifier != nil {
			statusNotifier(m, released)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
