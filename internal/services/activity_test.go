package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/feed-system/social-demo/pkg/cache"
	"github.com/feed-system/social-demo/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestActivityService(t *testing.T) (*ActivityService, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := cache.NewRedisClient(mr.Addr(), "", 0, 4, 0)
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	log, _ := testLogger()
	return NewActivityService(client, time.Hour, log), mr
}

func TestActivityServiceRecordAndGet(t *testing.T) {
	s, mr := newTestActivityService(t)
	ctx := context.Background()

	for _, typ := range []queue.EventType{queue.EventPostLiked, queue.EventPostLiked, queue.EventMessageSent} {
		event, err := queue.NewEvent(typ, "u1", nil)
		require.NoError(t, err)
		require.NoError(t, s.Record(ctx, event))
	}

	counts, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[queue.EventType]int64{
		queue.EventPostLiked:   2,
		queue.EventMessageSent: 1,
	}, counts)
	assert.Equal(t, time.Hour, mr.TTL("activity:u1"))

	require.NoError(t, s.Reset(ctx, "u1"))
	counts, err = s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestActivityServiceRejectsAnonymousEvents(t *testing.T) {
	s, _ := newTestActivityService(t)

	assert.Error(t, s.Record(context.Background(), queue.Event{Type: queue.EventPostLiked}))
	assert.Error(t, s.Record(context.Background(), queue.Event{ActorID: "u1"}))
}

func TestActivityServiceSkipsMalformedCounters(t *testing.T) {
	s, mr := newTestActivityService(t)
	mr.HSet("activity:u1", "post_liked", "3", "bogus", "x")

	counts, err := s.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, map[queue.EventType]int64{queue.EventPostLiked: 3}, counts)
}
