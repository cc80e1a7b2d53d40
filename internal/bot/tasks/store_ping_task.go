package tasks

import (
	"context"
	"fmt"
	"time"
)

const storePingTimeout = 10 * time.Second

// newStorePingTask checks that the key-value store answers and logs the latency.
func newStorePingTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", StorePingTask)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, storePingTimeout)
		defer cancel()

		startTime := time.Now()
		err := deps.Store.Ping(ctx)
		duration := time.Since(startTime)

		if err != nil {
			log.ErrorContext(ctx, "Store ping failed", "error", err, "duration", duration)
			return fmt.Errorf("store ping failed: %w", err)
		}

		log.DebugContext(ctx, "Store ping succeeded", "duration", duration)
		return nil
	}
}
