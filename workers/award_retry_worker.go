// workers/award_retry_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"moodbrew-order-system/services"
	"moodbrew-order-system/store"
)

const awardRetryBatchSize = 100

// PollPendingAwards drains the queue of scoring deltas whose stats
// write failed. Scoring is deterministic, so each retained order is
// replayed for the exact deltas the original write would have applied.
// Awards that fail again stay queued for the next tick.
func PollPendingAwards(ctx context.Context, st store.Store, progression *services.ProgressionService, pollInterval time.Duration) {
	log.Println("Starting pending-award retry polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Pending-award polling stopped.")
			return
		case <-ticker.C:
			awards, err := st.ListPendingAwards(ctx, awardRetryBatchSize)
			if err != nil {
				log.Printf("❌ Error listing pending awards: %v", err)
				continue
			}
			if len(awards) == 0 {
				continue
			}

			log.Printf("📥 Replaying %d pending award(s)...", len(awards))

			var replayed, failed int
			for _, award := range awards {
				if err := progression.ReplayAward(ctx, award); err != nil {
					failed++
					log.Printf("⚠️ Replay failed for award %s (user=%s order=%s): %v",
						award.ID, award.UserID, award.OrderID, err)
					continue
				}
				replayed++
			}

			log.Printf("✅ Award retry pass done: %d replayed, %d still queued.", replayed, failed)
		}
	}
}
