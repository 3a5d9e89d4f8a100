package services

import (
	"context"
	"testing"
	"time"

	"github.com/feed-system/social-demo/internal/models"
	"github.com/feed-system/social-demo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessageService(t *testing.T) *MessageService {
	t.Helper()
	log, _ := testLogger()
	store := repository.NewStore(testFixtures())
	return NewMessageService(repository.NewMessageRepository(store), nil, anyPublisher(t), log)
}

func messageIDs(messages []models.Message) []string {
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	return ids
}

func conversationsByPartner(convs []models.Conversation) map[string]models.Conversation {
	out := make(map[string]models.Conversation, len(convs))
	for _, c := range convs {
		out[c.PartnerID] = c
	}
	return out
}

func countUnread(messages []models.Message, userID, partnerID string) int {
	n := 0
	for _, m := range messages {
		if m.ReceiverID == userID && m.SenderID == partnerID && !m.Read {
			n++
		}
	}
	return n
}

func TestMessageServiceGetMessagesChronological(t *testing.T) {
	s := newTestMessageService(t)
	ctx := context.Background()

	forward, err := s.GetMessages(ctx, models.CurrentUserID, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m2", "m3", "m1"}, messageIDs(forward))

	for i := 1; i < len(forward); i++ {
		assert.False(t, forward[i].Timestamp.Before(forward[i-1].Timestamp))
	}

	backward, err := s.GetMessages(ctx, "u1", models.CurrentUserID)
	require.NoError(t, err)
	assert.ElementsMatch(t, messageIDs(forward), messageIDs(backward))
}

func TestMessageServiceSendMessage(t *testing.T) {
	s := newTestMessageService(t)
	ctx := context.Background()

	msg, err := s.SendMessage(ctx, models.CurrentUserID, "u2", "hey")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.Read)
	assert.Equal(t, "hey", msg.Content)

	created, err := s.Create(ctx, &models.SendMessageRequest{SenderID: "u2", ReceiverID: models.CurrentUserID, Content: "back"})
	require.NoError(t, err)
	assert.NotEqual(t, msg.ID, created.ID)

	thread, err := s.GetMessages(ctx, "u2", models.CurrentUserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"m4", msg.ID, created.ID}, messageIDs(thread))
}

func TestMessageServiceMarkAsRead(t *testing.T) {
	s := newTestMessageService(t)

	msg, err := s.MarkAsRead(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, msg.Read)

	_, err = s.MarkAsRead(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessageServiceGetConversations(t *testing.T) {
	s := newTestMessageService(t)
	ctx := context.Background()

	convs, err := s.GetConversations(ctx, models.CurrentUserID)
	require.NoError(t, err)
	require.Len(t, convs, 2)

	byPartner := conversationsByPartner(convs)
	assert.Equal(t, "m1", byPartner["u1"].LastMessage.ID)
	assert.Equal(t, 2, byPartner["u1"].UnreadCount)
	assert.Equal(t, "m4", byPartner["u2"].LastMessage.ID)
	assert.Equal(t, 0, byPartner["u2"].UnreadCount)

	defaulted, err := s.GetConversations(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, convs, defaulted)
}

func TestMessageServiceUnreadCountMatchesMessages(t *testing.T) {
	s := newTestMessageService(t)
	ctx := context.Background()

	all, err := s.GetAll(ctx)
	require.NoError(t, err)

	convs, err := s.GetConversations(ctx, models.CurrentUserID)
	require.NoError(t, err)
	for _, c := range convs {
		assert.Equal(t, countUnread(all, models.CurrentUserID, c.PartnerID), c.UnreadCount, "partner %s", c.PartnerID)
	}

	require.NoError(t, s.MarkConversationAsRead(ctx, models.CurrentUserID, "u1"))

	convs, err = s.GetConversations(ctx, models.CurrentUserID)
	require.NoError(t, err)
	assert.Equal(t, 0, conversationsByPartner(convs)["u1"].UnreadCount)

	// the partner's view of what the current user sent is unchanged
	partnerView, err := s.GetConversations(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, conversationsByPartner(partnerView)[models.CurrentUserID].UnreadCount)
}

func TestAggregateConversationsTieKeepsFirstSeen(t *testing.T) {
	messages := []models.Message{
		{ID: "a", SenderID: "p", ReceiverID: "me", Timestamp: t0},
		{ID: "b", SenderID: "me", ReceiverID: "p", Timestamp: t0},
		{ID: "c", SenderID: "x", ReceiverID: "y", Timestamp: t0.Add(time.Hour)},
	}

	convs := aggregateConversations(messages, "me")
	require.Len(t, convs, 1)
	assert.Equal(t, "a", convs[0].LastMessage.ID)
	assert.Equal(t, 1, convs[0].UnreadCount)
}

func TestAggregateConversationsNoMessages(t *testing.T) {
	convs := aggregateConversations(nil, "me")
	assert.NotNil(t, convs)
	assert.Empty(t, convs)
}

func TestMessageServiceUpdateAndDelete(t *testing.T) {
	s := newTestMessageService(t)
	ctx := context.Background()

	msg, err := s.Update(ctx, "m2", &models.MessagePatch{Content: ptr("edited")})
	require.NoError(t, err)
	assert.Equal(t, "edited", msg.Content)
	assert.Equal(t, "u1", msg.ReceiverID)

	_, err = s.Update(ctx, "missing", &models.MessagePatch{})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "m2"))
	_, err = s.GetByID(ctx, "m2")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "m2"), ErrNotFound)
}
