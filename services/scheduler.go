// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartMaintenanceScheduler runs the periodic housekeeping jobs: idle
// cart sweeping and the stats reconciliation pass that re-derives every
// user's totals from retained order history.
func StartMaintenanceScheduler(progression *ProgressionService, carts *CartStore) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every hour: discard carts nobody touched for a day
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if removed := carts.SweepIdle(24 * time.Hour); removed > 0 {
				log.Printf("🧹 Swept %d idle carts", removed)
			}
		}),
	)

	// Daily: reconcile stats from order history. Scoring is
	// deterministic, so this converges after any partial failure.
	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			all, err := progression.Store.ListAllUserStats(ctx)
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, stats := range all {
				if _, err := progression.RecomputeStats(ctx, stats.UserID); err != nil {
					log.Printf("[Scheduler] Failed to reconcile stats for %s: %v", stats.UserID, err)
				}
			}
			log.Printf("✅ Reconciled stats for %d users", len(all))
		}),
	)
}
