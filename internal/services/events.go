package services

import (
	"context"
	"time"

	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/feed-system/social-demo/pkg/queue"
)

// PublishTimeout bounds how long a mutation waits on the event producer.
const PublishTimeout = 2 * time.Second

// publishEvent sends an event for a mutation that has already been applied.
// Failures are logged and never surface to the caller.
func publishEvent(ctx context.Context, producer queue.Publisher, log *logger.Logger, t queue.EventType, actorID string, data interface{}) {
	event, err := queue.NewEvent(t, actorID, data)
	if err != nil {
		log.WithError(err).WithField("event_type", t).Error("Failed to build event")
		return
	}
	// the mutation is committed, so the event goes out even if the caller gave up
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), PublishTimeout)
	defer cancel()

	if err := producer.Publish(publishCtx, actorID, event); err != nil {
		log.WithError(err).WithField("event_type", t).Error("Failed to publish event")
	}
}
