package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/feed-system/social-demo/internal/services"
	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/feed-system/social-demo/pkg/queue"
	"github.com/sourcegraph/conc/pool"
)

// EventSource is satisfied by *queue.KafkaConsumer.
type EventSource interface {
	Subscribe(ctx context.Context, handler func(queue.Message) error, onError func(error)) error
}

// ActivityWorker turns the event stream into per-user activity counters.
type ActivityWorker struct {
	activityService *services.ActivityService
	consumer        EventSource
	concurrency     int
	logger          *logger.Logger
}

func NewActivityWorker(activityService *services.ActivityService, consumer EventSource, concurrency int, logger *logger.Logger) *ActivityWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ActivityWorker{
		activityService: activityService,
		consumer:        consumer,
		concurrency:     concurrency,
		logger:          logger,
	}
}

// Start consumes until ctx is done or the source fails, then waits for the
// events already handed to the pool.
func (w *ActivityWorker) Start(ctx context.Context) error {
	w.logger.WithField("concurrency", w.concurrency).Info("Starting activity worker...")

	p := pool.New().WithMaxGoroutines(w.concurrency)

	err := w.consumer.Subscribe(ctx, func(msg queue.Message) error {
		// Go blocks while the pool is full, which throttles the reader
		p.Go(func() {
			if err := w.HandleEvent(context.WithoutCancel(ctx), msg.Event); err != nil {
				w.logger.WithError(err).WithFields(map[string]interface{}{
					"event_type": msg.Event.Type,
					"key":        msg.Key,
				}).Error("Failed to handle event")
			}
		})
		return nil
	}, func(err error) {
		w.logger.WithError(err).Warn("Skipping message")
	})

	p.Wait()
	w.logger.Info("Activity worker stopped")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (w *ActivityWorker) HandleEvent(ctx context.Context, event queue.Event) error {
	if event.ActorID == "" {
		w.logger.WithField("event_type", event.Type).Warn("Event has no actor, ignoring")
		return nil
	}

	w.logger.WithFields(map[string]interface{}{
		"event_type": event.Type,
		"actor_id":   event.ActorID,
		"timestamp":  event.Timestamp,
	}).Debug("Processing event")

	if err := w.activityService.Record(ctx, event); err != nil {
		return fmt.Errorf("failed to record %s for %s: %w", event.Type, event.ActorID, err)
	}
	return nil
}
