package repository

import "github.com/feed-system/social-demo/internal/models"

type UserRepository struct {
	users *table[models.User]
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{users: s.users}
}

func (r *UserRepository) List() []models.User {
	return r.users.all()
}

func (r *UserRepository) GetByID(id string) (*models.User, bool) {
	user, ok := r.users.get(id)
	if !ok {
		return nil, false
	}
	return &user, true
}

// First returns the first user in fixture order.
func (r *UserRepository) First() (*models.User, bool) {
	user, ok := r.users.first()
	if !ok {
		return nil, false
	}
	return &user, true
}

func (r *UserRepository) Filter(match func(*models.User) bool) []models.User {
	return r.users.filter(match)
}

func (r *UserRepository) Update(id string, fn func(*models.User)) (*models.User, bool) {
	user, ok := r.users.update(id, fn)
	if !ok {
		return nil, false
	}
	return &user, true
}
