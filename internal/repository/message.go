package repository

import "github.com/feed-system/social-demo/internal/models"

type MessageRepository struct {
	messages *table[models.Message]
}

func NewMessageRepository(s *Store) *MessageRepository {
	return &MessageRepository{messages: s.messages}
}

func (r *MessageRepository) List() []models.Message {
	return r.messages.all()
}

func (r *MessageRepository) GetByID(id string) (*models.Message, bool) {
	msg, ok := r.messages.get(id)
	if !ok {
		return nil, false
	}
	return &msg, true
}

// GetBetween returns the messages exchanged by a and b in either direction,
// in collection order.
func (r *MessageRepository) GetBetween(a, b string) []models.Message {
	return r.messages.filter(func(m *models.Message) bool { return m.Between(a, b) })
}

func (r *MessageRepository) Create(msg models.Message) models.Message {
	return r.messages.append(msg)
}

func (r *MessageRepository) Update(id string, fn func(*models.Message)) (*models.Message, bool) {
	msg, ok := r.messages.update(id, fn)
	if !ok {
		return nil, false
	}
	return &msg, true
}

// MarkRead flags every message from senderID to receiverID as read and
// returns how many were unread before.
func (r *MessageRepository) MarkRead(senderID, receiverID string) int {
	return r.messages.updateWhere(
		func(m *models.Message) bool {
			return m.SenderID == senderID && m.ReceiverID == receiverID && !m.Read
		},
		func(m *models.Message) { m.Read = true },
	)
}

func (r *MessageRepository) Delete(id string) bool {
	return r.messages.remove(id)
}
