package repository

import "github.com/feed-system/social-demo/internal/models"

type PostRepository struct {
	posts *table[models.Post]
}

func NewPostRepository(s *Store) *PostRepository {
	return &PostRepository{posts: s.posts}
}

// List returns every post in collection order.
func (r *PostRepository) List() []models.Post {
	return r.posts.all()
}

func (r *PostRepository) GetByID(id string) (*models.Post, bool) {
	post, ok := r.posts.get(id)
	if !ok {
		return nil, false
	}
	return &post, true
}

func (r *PostRepository) GetByUserID(userID string) []models.Post {
	return r.posts.filter(func(p *models.Post) bool { return p.UserID == userID })
}

// Create inserts at the head of the collection.
func (r *PostRepository) Create(post models.Post) models.Post {
	return r.posts.prepend(post)
}

func (r *PostRepository) Update(id string, fn func(*models.Post)) (*models.Post, bool) {
	post, ok := r.posts.update(id, fn)
	if !ok {
		return nil, false
	}
	return &post, true
}

func (r *PostRepository) Delete(id string) bool {
	return r.posts.remove(id)
}
