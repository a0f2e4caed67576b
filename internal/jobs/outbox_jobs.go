package jobs

import (
	"context"
	"time"

	"incubator-portal-backend/internal/logger"
)

const outboxBatchSize = 50

// DeliverOutbox retries pending mail outbox messages. Messages that keep
// failing back off quadratically until the retry cap moves them to the
// failed status for manual inspection.
func (jr *JobRunner) DeliverOutbox() {
	jr.runWithRecovery("DeliverOutbox", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		msgs, err := jr.outbox.ListDue(ctx, now, outboxBatchSize)
		if err != nil {
			logger.Error("Failed to list due outbox messages", "error", err)
			return
		}
		if len(msgs) == 0 {
			logger.Debug("No outbox messages due")
			return
		}

		maxRetries := jr.config.Scheduler.MaxDeliveryRetries
		sent, failed := 0, 0
		for i := range msgs {
			msg := &msgs[i]

			if err := jr.services.Email.Deliver(ctx, msg); err != nil {
				attempts := msg.Attempts + 1
				final := attempts >= maxRetries
				backoff := time.Duration(attempts*attempts) * 5 * time.Minute

				if markErr := jr.outbox.MarkAttemptFailed(ctx, msg.ID, attempts, err.Error(), now.Add(backoff), final); markErr != nil {
					logger.Error("Failed to record outbox delivery failure",
						"message_id", msg.ID,
						"error", markErr)
				}
				logger.Warn("Outbox delivery attempt failed",
					"message_id", msg.ID,
					"to", msg.To,
					"attempts", attempts,
					"final", final,
					"error", err)
				failed++
				continue
			}

			if err := jr.outbox.MarkSent(ctx, msg.ID, time.Now().UTC()); err != nil {
				logger.Error("Failed to mark outbox message sent",
					"message_id", msg.ID,
					"error", err)
			}
			sent++
		}

		logger.Info("Outbox delivery pass finished", "sent", sent, "failed", failed)
	})
}
