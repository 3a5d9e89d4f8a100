package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/feed-system/social-demo/pkg/cache"
	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/feed-system/social-demo/pkg/queue"
)

// ActivityService keeps per-user counters of the events a user caused, fed
// by the activity worker. Counters expire ttl after the user's last event.
type ActivityService struct {
	cache  *cache.RedisClient
	ttl    time.Duration
	logger *logger.Logger
}

func NewActivityService(cache *cache.RedisClient, ttl time.Duration, logger *logger.Logger) *ActivityService {
	return &ActivityService{
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func activityKey(userID string) string {
	return fmt.Sprintf("activity:%s", userID)
}

func (s *ActivityService) Record(ctx context.Context, event queue.Event) error {
	if event.ActorID == "" {
		return errors.New("event has no actor")
	}
	if event.Type == "" {
		return errors.New("event has no type")
	}

	n, err := s.cache.HIncrByWithTTL(ctx, activityKey(event.ActorID), string(event.Type), 1, s.ttl)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    event.ActorID,
		"event_type": event.Type,
		"count":      n,
	}).Debug("Activity recorded")

	return nil
}

// Get returns the counters for userID; a user with no recent activity gets
// an empty map.
func (s *ActivityService) Get(ctx context.Context, userID string) (map[queue.EventType]int64, error) {
	fields, err := s.cache.HGetAll(ctx, activityKey(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	counts := make(map[queue.EventType]int64, len(fields))
	for field, value := range fields {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			s.logger.WithError(err).WithField("field", field).Warn("Skipping malformed activity counter")
			continue
		}
		counts[queue.EventType(field)] = n
	}
	return counts, nil
}

func (s *ActivityService) Reset(ctx context.Context, userID string) error {
	if err := s.cache.Delete(ctx, activityKey(userID)); err != nil {
		return fmt.Errorf("failed to reset activity: %w", err)
	}
	return nil
}
