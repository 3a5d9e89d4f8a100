package repository

import "github.com/feed-system/social-demo/internal/models"

type CommentRepository struct {
	comments *table[models.Comment]
}

func NewCommentRepository(s *Store) *CommentRepository {
	return &CommentRepository{comments: s.comments}
}

func (r *CommentRepository) List() []models.Comment {
	return r.comments.all()
}

func (r *CommentRepository) GetByID(id string) (*models.Comment, bool) {
	comment, ok := r.comments.get(id)
	if !ok {
		return nil, false
	}
	return &comment, true
}

func (r *CommentRepository) GetByPostID(postID string) []models.Comment {
	return r.comments.filter(func(c *models.Comment) bool { return c.PostID == postID })
}

func (r *CommentRepository) Create(comment models.Comment) models.Comment {
	return r.comments.append(comment)
}

func (r *CommentRepository) Update(id string, fn func(*models.Comment)) (*models.Comment, bool) {
	comment, ok := r.comments.update(id, fn)
	if !ok {
		return nil, false
	}
	return &comment, true
}

func (r *CommentRepository) Delete(id string) bool {
	return r.comments.remove(id)
}
