package services

import (
	"context"
	"strings"

	"github.com/feed-system/social-demo/internal/models"
	"github.com/feed-system/social-demo/internal/repository"
	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/feed-system/social-demo/pkg/queue"
)

// SuggestionLimit caps GetSuggestions.
const SuggestionLimit = 5

type UserService struct {
	userRepo *repository.UserRepository
	latency  *Latency
	producer queue.Publisher
	logger   *logger.Logger

	// currentID is fixed at construction; the record itself is always read
	// from the store so follows and profile edits show up immediately.
	currentID string
}

// NewUserService takes the first user in the store as the current user.
func NewUserService(userRepo *repository.UserRepository, latency *Latency, producer queue.Publisher, logger *logger.Logger) *UserService {
	s := &UserService{
		userRepo: userRepo,
		latency:  latency,
		producer: producer,
		logger:   logger,
	}
	if user, ok := userRepo.First(); ok {
		s.currentID = user.ID
	} else {
		logger.Warn("No users loaded; current user is unset")
	}
	return s
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return s.userRepo.List(), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	user, ok := s.userRepo.GetByID(id)
	if !ok {
		return nil, notFound("user", id)
	}
	return user, nil
}

func (s *UserService) GetCurrentUser(ctx context.Context) (*models.User, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	if s.currentID == "" {
		return nil, notFound("user", models.CurrentUserID)
	}
	user, ok := s.userRepo.GetByID(s.currentID)
	if !ok {
		return nil, notFound("user", s.currentID)
	}
	return user, nil
}

// SearchUsers matches query case-insensitively against username or bio. An
// empty query matches nobody.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	if query == "" {
		return []models.User{}, nil
	}

	q := strings.ToLower(query)
	return s.userRepo.Filter(func(u *models.User) bool {
		return strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.Bio), q)
	}), nil
}

// FollowUser increments the target's follower count. The acting user's
// following count is left as is.
func (s *UserService) FollowUser(ctx context.Context, userID string) (*models.User, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	user, ok := s.userRepo.Update(userID, func(u *models.User) {
		u.FollowersCount++
	})
	if !ok {
		return nil, notFound("user", userID)
	}

	publishEvent(ctx, s.producer, s.logger, queue.EventUserFollowed, models.CurrentUserID, queue.FollowEventData{
		TargetID:       user.ID,
		FollowersCount: user.FollowersCount,
	})

	s.logger.WithFields(map[string]interface{}{
		"target_id":       user.ID,
		"followers_count": user.FollowersCount,
	}).Info("User followed successfully")

	return user, nil
}

// UnfollowUser decrements the target's follower count, never below zero.
func (s *UserService) UnfollowUser(ctx context.Context, userID string) (*models.User, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	user, ok := s.userRepo.Update(userID, func(u *models.User) {
		u.FollowersCount = max(0, u.FollowersCount-1)
	})
	if !ok {
		return nil, notFound("user", userID)
	}

	publishEvent(ctx, s.producer, s.logger, queue.EventUserUnfollowed, models.CurrentUserID, queue.FollowEventData{
		TargetID:       user.ID,
		FollowersCount: user.FollowersCount,
	})

	s.logger.WithFields(map[string]interface{}{
		"target_id":       user.ID,
		"followers_count": user.FollowersCount,
	}).Info("User unfollowed successfully")

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, patch *models.UserPatch) (*models.User, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	user, ok := s.userRepo.Update(id, patch.Apply)
	if !ok {
		return nil, notFound("user", id)
	}

	publishEvent(ctx, s.producer, s.logger, queue.EventUserUpdated, id, nil)

	s.logger.WithField("user_id", id).Info("User updated successfully")
	return user, nil
}

// GetSuggestions returns up to SuggestionLimit users other than the current
// user, in fixture order.
func (s *UserService) GetSuggestions(ctx context.Context) ([]models.User, error) {
	if err := s.latency.Wait(ctx); err != nil {
		return nil, err
	}

	users := s.userRepo.Filter(func(u *models.User) bool { return u.ID != s.currentID })
	if len(users) > SuggestionLimit {
		users = users[:SuggestionLimit]
	}
	return users, nil
}
