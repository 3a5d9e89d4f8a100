package models

import "time"

type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}

// Between reports whether the message was exchanged by a and b, in either
// direction.
func (m Message) Between(a, b string) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

// Counterpart returns the other participant from userID's point of view, or
// false when userID took no part in the message.
func (m Message) Counterpart(userID string) (string, bool) {
	switch userID {
	case m.SenderID:
		return m.ReceiverID, true
	case m.ReceiverID:
		return m.SenderID, true
	}
	return "", false
}

type SendMessageRequest struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

type MessagePatch struct {
	Content *string `json:"content"`
	Read    *bool   `json:"read"`
}

func (p MessagePatch) Apply(m *Message) {
	if p.Content != nil {
		m.Content = *p.Content
	}
	if p.Read != nil {
		m.Read = *p.Read
	}
}

// Conversation is derived from the message collection on every read and is
// never stored.
type Conversation struct {
	PartnerID   string  `json:"partner_id"`
	LastMessage Message `json:"last_message"`
	UnreadCount int     `json:"unread_count"`
}
