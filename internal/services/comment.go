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

type CommentService struct {
	commentRepo *repository.CommentRepository
	latency     *Latency
	producer    queue.Publisher
	logger      *logger.Logger
}

func NewCommentService(commentRepo *repository.CommentRepository, latency *Latency, producer queue.Publisher, logger *logger.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		latency:     latency,
		producer:    producer,
		logger:      logger,
	}
}

// GetByPostID returns the post's comments in reading order, oldest first.
func (s *CommentService) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	comments := s.commentRepo.GetByPostID(postID)
	slices.SortStableFunc(comments, func(a, b models.Comment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return comments, nil
}

// Create adds a comment authored by the current user. The post is not
// checked for existence.
func (s *CommentService) Create(ctx context.Context, req *models.CreateCommentRequest) (*models.Comment, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	comment := s.commentRepo.Create(models.Comment{
		ID:        uuid.NewString(),
		PostID:    req.PostID,
		UserID:    models.CurrentUserID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	})

	publishEvent(ctx, s.producer, s.logger, queue.EventCommentCreated, comment.UserID, queue.CommentEventData{
		CommentID: comment.ID,
		PostID:    comment.PostID,
	})

	s.logger.WithFields(map[string]interface{}{
		"comment_id": comment.ID,
		"post_id":    comment.PostID,
	}).Info("Comment created successfully")

	return &comment, nil
}

func (s *CommentService) Update(ctx context.Context, id string, patch *models.CommentPatch) (*models.Comment, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	comment, ok := s.commentRepo.Update(id, patch.Apply)
	if !ok {
		return nil, notFound("comment", id)
	}

	publishEvent(ctx, s.producer, s.logger, queue.EventCommentUpdated, models.CurrentUserID, queue.CommentEventData{
		CommentID: comment.ID,
		PostID:    comment.PostID,
	})

	s.logger.WithField("comment_id", id).Info("Comment updated successfully")
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	if err := s.latency.Wait(ctx); err != nil {
		return err
	}

	if !s.commentRepo.Delete(id) {
		return notFound("comment", id)
	}

	publishEvent(ctx, s.producer, s.logger, queue.EventCommentDeleted, models.CurrentUserID, queue.CommentEventData{
		CommentID: id,
	})

	s.logger.WithField("comment_id", id).Info("Comment deleted successfully")
	return nil
}

func (s *CommentService) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	comment, ok := s.commentRepo.GetByID(id)
	if !ok {
		return nil, notFound("comment", id)
	}
	return comment, nil
}

func (s *CommentService) GetAll(ctx context.Context) ([]models.Comment, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return s.commentRepo.List(), nil
}
