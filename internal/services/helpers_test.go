package services

import (
	"testing"
	"time"

	"github.com/feed-system/social-demo/internal/models"
	"github.com/feed-system/social-demo/internal/repository"
	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/feed-system/social-demo/pkg/queue/mock"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus/hooks/test"
)

var t0 = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func testFixtures() *repository.Fixtures {
	return &repository.Fixtures{
		Users: []models.User{
			{ID: models.CurrentUserID, Username: "alex_rivera", Bio: "Product designer", FollowersCount: 10, FollowingCount: 3},
			{ID: "u1", Username: "Maya.Chen", Bio: "Frontend engineer who loves React", FollowersCount: 10},
			{ID: "u2", Username: "sam", Bio: "street PHOTOGRAPHER", FollowersCount: 0},
			{ID: "u3", Username: "lina", Bio: "travel writer"},
			{ID: "u4", Username: "jordan", Bio: "backend developer"},
			{ID: "u5", Username: "priya", Bio: "baker"},
			{ID: "u6", Username: "tom", Bio: "runner"},
		},
		Posts: []models.Post{
			{ID: "1", UserID: "u1", Content: "older", Likes: []string{}, CreatedAt: t0},
			{ID: "2", UserID: "u2", Content: "newest", Likes: []string{"u1"}, CreatedAt: t0.Add(2 * time.Hour)},
			{ID: "3", UserID: "u1", Content: "middle", Likes: []string{}, CreatedAt: t0.Add(time.Hour)},
		},
		Comments: []models.Comment{
			{ID: "c1", PostID: "1", UserID: "u2", Content: "late", CreatedAt: t0.Add(time.Hour)},
			{ID: "c2", PostID: "1", UserID: "u1", Content: "early", CreatedAt: t0},
			{ID: "c3", PostID: "2", UserID: "u1", Content: "other post", CreatedAt: t0},
		},
		Messages: []models.Message{
			{ID: "m1", SenderID: "u1", ReceiverID: models.CurrentUserID, Content: "hi", Timestamp: t0.Add(2 * time.Minute), Read: false},
			{ID: "m2", SenderID: models.CurrentUserID, ReceiverID: "u1", Content: "hello", Timestamp: t0, Read: false},
			{ID: "m3", SenderID: "u1", ReceiverID: models.CurrentUserID, Content: "there?", Timestamp: t0.Add(time.Minute), Read: false},
			{ID: "m4", SenderID: "u2", ReceiverID: models.CurrentUserID, Content: "yo", Timestamp: t0, Read: true},
			{ID: "m5", SenderID: "u3", ReceiverID: "u4", Content: "not ours", Timestamp: t0, Read: false},
		},
	}
}

func testLogger() (*logger.Logger, *test.Hook) {
	l, hook := test.NewNullLogger()
	return &logger.Logger{Logger: l}, hook
}

// anyPublisher accepts any number of events.
func anyPublisher(t *testing.T) *mock.MockPublisher {
	ctrl := gomock.NewController(t)
	p := mock.NewMockPublisher(ctrl)
	p.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return p
}
