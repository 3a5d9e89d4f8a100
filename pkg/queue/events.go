package queue

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventPostCreated      EventType = "post_created"
	EventPostUpdated      EventType = "post_updated"
	EventPostDeleted      EventType = "post_deleted"
	EventPostLiked        EventType = "post_liked"
	EventPostUnliked      EventType = "post_unliked"
	EventUserFollowed     EventType = "user_followed"
	EventUserUnfollowed   EventType = "user_unfollowed"
	EventUserUpdated      EventType = "user_updated"
	EventMessageSent      EventType = "message_sent"
	EventMessageUpdated   EventType = "message_updated"
	EventMessageDeleted   EventType = "message_deleted"
	EventMessageRead      EventType = "message_read"
	EventConversationRead EventType = "conversation_read"
	EventCommentCreated   EventType = "comment_created"
	EventCommentUpdated   EventType = "comment_updated"
	EventCommentDeleted   EventType = "comment_deleted"
)

// Event is the envelope written to the topic. ActorID is the user the event
// is attributed to and doubles as the partition key.
type Event struct {
	Type      EventType       `json:"type"`
	ActorID   string          `json:"actor_id"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func NewEvent(t EventType, actorID string, data interface{}) (Event, error) {
	event := Event{Type: t, ActorID: actorID, Timestamp: time.Now().UTC()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Event{}, err
		}
		event.Data = raw
	}
	return event, nil
}

type PostEventData struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

type LikeEventData struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
	Likes  int    `json:"likes"`
}

type FollowEventData struct {
	TargetID       string `json:"target_id"`
	FollowersCount int    `json:"followers_count"`
}

type MessageEventData struct {
	MessageID  string `json:"message_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
}

type ConversationEventData struct {
	PartnerID string `json:"partner_id"`
	Marked    int    `json:"marked"`
}

type CommentEventData struct {
	CommentID string `json:"comment_id"`
	PostID    string `json:"post_id"`
}
