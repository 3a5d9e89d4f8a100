package services

import (
	"context"
	"slices"
	"time"

	"github.com/feed-system/social-demo/internal/models"
	"github.com/feed-system/social-demo/internal/repository"
	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/feed-system/social-demo/pkg/queue"
	"github.com/google/uuid"
)

type MessageService struct {
	messageRepo *repository.MessageRepository
	latency     *Latency
	producer    queue.Publisher
	logger      *logger.Logger
}

func NewMessageService(messageRepo *repository.MessageRepository, latency *Latency, producer queue.Publisher, logger *logger.Logger) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		latency:     latency,
		producer:    producer,
		logger:      logger,
	}
}

// GetConversations summarises every conversation userID takes part in. An
// empty userID means the current user. The result is recomputed from the
// message collection on each call.
func (s *MessageService) GetConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	if userID == "" {
		userID = models.CurrentUserID
	}
	return aggregateConversations(s.messageRepo.List(), userID), nil
}

// aggregateConversations folds messages into one summary per counterpart in
// a single pass. The latest timestamp wins; on a tie the message seen first
// stays. Summaries come out in the order their partner was first seen.
func aggregateConversations(messages []models.Message, userID string) []models.Conversation {
	index := make(map[string]int)
	conversations := make([]models.Conversation, 0)

	for _, msg := range messages {
		partnerID, ok := msg.Counterpart(userID)
		if !ok {
			continue
		}

		i, seen := index[partnerID]
		if !seen {
			i = len(conversations)
			index[partnerID] = i
			conversations = append(conversations, models.Conversation{
				PartnerID:   partnerID,
				LastMessage: msg,
			})
		} else if msg.Timestamp.After(conversations[i].LastMessage.Timestamp) {
			conversations[i].LastMessage = msg
		}

		if msg.ReceiverID == userID && !msg.Read {
			conversations[i].UnreadCount++
		}
	}

	return conversations
}

// GetMessages returns the messages between two users in either direction,
// oldest first.
func (s *MessageService) GetMessages(ctx context.Context, userID1, userID2 string) ([]models.Message, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	messages := s.messageRepo.GetBetween(userID1, userID2)
	slices.SortStableFunc(messages, func(a, b models.Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return messages, nil
}

func (s *MessageService) SendMessage(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	msg := s.messageRepo.Create(models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  time.Now().UTC(),
		Read:       false,
	})

	publishEvent(ctx, s.producer, s.logger, queue.EventMessageSent, senderID, queue.MessageEventData{
		MessageID:  msg.ID,
		SenderID:   senderID,
		ReceiverID: receiverID,
	})

	s.logger.WithFields(map[string]interface{}{
		"message_id":  msg.ID,
		"sender_id":   senderID,
		"receiver_id": receiverID,
	}).Info("Message sent successfully")

	return &msg, nil
}

// Create is SendMessage taking a request body.
func (s *MessageService) Create(ctx context.Context, req *models.SendMessageRequest) (*models.Message, error) {
	return s.SendMessage(ctx, req.SenderID, req.ReceiverID, req.Content)
}

func (s *MessageService) MarkAsRead(ctx context.Context, messageID string) (*models.Message, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	msg, ok := s.messageRepo.Update(messageID, func(m *models.Message) { m.Read = true })
	if !ok {
		return nil, notFound("message", messageID)
	}

	publishEvent(ctx, s.producer, s.logger, queue.EventMessageRead, msg.ReceiverID, queue.MessageEventData{
		MessageID:  msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
	})

	s.logger.WithField("message_id", messageID).Info("Message marked as read")
	return msg, nil
}

// MarkConversationAsRead marks what partnerID sent to userID as read.
// Messages userID sent are untouched.
func (s *MessageService) MarkConversationAsRead(ctx context.Context, userID, partnerID string) error {
	if err := s.latency.Wait(ctx); err != nil {
		return err
	}

	marked := s.messageRepo.MarkRead(partnerID, userID)

	publishEvent(ctx, s.producer, s.logger, queue.EventConversationRead, userID, queue.ConversationEventData{
		PartnerID: partnerID,
		Marked:    marked,
	})

	s.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"partner_id": partnerID,
		"marked":     marked,
	}).Info("Conversation marked as read")

	return nil
}

func (s *MessageService) GetByID(ctx context.Context, id string) (*models.Message, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	msg, ok := s.messageRepo.GetByID(id)
	if !ok {
		return nil, notFound("message", id)
	}
	return msg, nil
}

func (s *MessageService) GetAll(ctx context.Context) ([]models.Message, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return s.messageRepo.List(), nil
}

func (s *MessageService) Update(ctx context.Context, id string, patch *models.MessagePatch) (*models.Message, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	msg, ok := s.messageRepo.Update(id, patch.Apply)
	if !ok {
		return nil, notFound("message", id)
	}

	publishEvent(ctx, s.producer, s.logger, queue.EventMessageUpdated, msg.SenderID, queue.MessageEventData{
		MessageID:  msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
	})

	s.logger.WithField("message_id", id).Info("Message updated successfully")
	return msg, nil
}

func (s *MessageService) Delete(ctx context.Context, id string) error {
	if err := s.latency.Wait(ctx); err != nil {
		return err
	}

	if !s.messageRepo.Delete(id) {
		return notFound("message", id)
	}

	publishEvent(ctx, s.producer, s.logger, queue.EventMessageDeleted, models.CurrentUserID, queue.MessageEventData{
		MessageID: id,
	})

	s.logger.WithField("message_id", id).Info("Message deleted successfully")
	return nil
}
