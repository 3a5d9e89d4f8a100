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

type PostService struct {
	postRepo *repository.PostRepository
	latency  *Latency
	producer queue.Publisher
	logger   *logger.Logger
}

func NewPostService(postRepo *repository.PostRepository, latency *Latency, producer queue.Publisher, logger *logger.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		latency:  latency,
		producer: producer,
		logger:   logger,
	}
}

// GetAll returns every post, newest first.
func (s *PostService) GetAll(ctx context.Context) ([]models.Post, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return newestFirst(s.postRepo.List()), nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	post, ok := s.postRepo.GetByID(id)
	if !ok {
		return nil, notFound("post", id)
	}
	return post, nil
}

func (s *PostService) GetByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return newestFirst(s.postRepo.GetByUserID(userID)), nil
}

// GetFeed is not personalised: every user sees all posts, newest first.
func (s *PostService) GetFeed(ctx context.Context, userID string) ([]models.Post, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return newestFirst(s.postRepo.List()), nil
}

// Create publishes a post as the current user. Content is stored as given.
func (s *PostService) Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	post := models.Post{
		ID:        uuid.NewString(),
		UserID:    models.CurrentUserID,
		Content:   req.Content,
		Likes:     []string{},
		Comments:  []string{},
		CreatedAt: time.Now().UTC(),
	}
	if req.ImageURL != "" {
		url := req.ImageURL
		post.ImageURL = &url
	}

	created := s.postRepo.Create(post)

	publishEvent(ctx, s.producer, s.logger, queue.EventPostCreated, created.UserID, queue.PostEventData{
		PostID: created.ID,
		UserID: created.UserID,
	})

	s.logger.WithFields(map[string]interface{}{
		"post_id": created.ID,
		"user_id": created.UserID,
	}).Info("Post created successfully")

	return &created, nil
}

func (s *PostService) Update(ctx context.Context, id string, patch *models.PostPatch) (*models.Post, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	post, ok := s.postRepo.Update(id, patch.Apply)
	if !ok {
		return nil, notFound("post", id)
	}

	publishEvent(ctx, s.producer, s.logger, queue.EventPostUpdated, models.CurrentUserID, queue.PostEventData{
		PostID: post.ID,
		UserID: post.UserID,
	})

	s.logger.WithField("post_id", id).Info("Post updated successfully")
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.latency.Wait(ctx); err != nil {
		return err
	}

	if !s.postRepo.Delete(id) {
		return notFound("post", id)
	}

	publishEvent(ctx, s.producer, s.logger, queue.EventPostDeleted, models.CurrentUserID, queue.PostEventData{
		PostID: id,
	})

	s.logger.WithField("post_id", id).Info("Post deleted successfully")
	return nil
}

// ToggleLike adds userID to the post's likes, or removes it if already
// present. An empty userID means the current user.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	if userID == "" {
		userID = models.CurrentUserID
	}

	var liked bool
	post, ok := s.postRepo.Update(postID, func(p *models.Post) {
		if i := slices.Index(p.Likes, userID); i != -1 {
			p.Likes = slices.Delete(p.Likes, i, i+1)
			return
		}
		p.Likes = append(p.Likes, userID)
		liked = true
	})
	if !ok {
		return nil, notFound("post", postID)
	}

	eventType := queue.EventPostUnliked
	if liked {
		eventType = queue.EventPostLiked
	}
	publishEvent(ctx, s.producer, s.logger, eventType, userID, queue.LikeEventData{
		PostID: postID,
		UserID: userID,
		Likes:  len(post.Likes),
	})

	s.logger.WithFields(map[string]interface{}{
		"post_id": postID,
		"user_id": userID,
		"liked":   liked,
	}).Info("Post like toggled successfully")

	return post, nil
}

// newestFirst sorts in place by CreatedAt descending, keeping collection
// order for equal timestamps.
func newestFirst(posts []models.Post) []models.Post {
	slices.SortStableFunc(posts, func(a, b models.Post) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return posts
}
