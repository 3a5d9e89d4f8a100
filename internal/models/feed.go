package models

import (
	"slices"
	"time"
)

type Post struct {
	ID       string   `json:"id"`
	UserID   string   `json:"user_id"`
	Content  string   `json:"content"`
	ImageURL *string  `json:"image_url"`
	Likes    []string `json:"likes"`
	// Comments lists comment ids. It is informational; the comment
	// collection is authoritative.
	Comments  []string  `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

func (p Post) Clone() Post {
	if p.ImageURL != nil {
		url := *p.ImageURL
		p.ImageURL = &url
	}
	p.Likes = cloneIDs(p.Likes)
	p.Comments = cloneIDs(p.Comments)
	return p
}

// LikedBy reports whether userID is in the like set.
func (p Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

type CreatePostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type PostPatch struct {
	Content  *string   `json:"content"`
	ImageURL *string   `json:"image_url"`
	Likes    *[]string `json:"likes"`
	Comments *[]string `json:"comments"`
}

func (p PostPatch) Apply(post *Post) {
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.ImageURL != nil {
		post.ImageURL = nullable(*p.ImageURL)
	}
	if p.Likes != nil {
		post.Likes = cloneIDs(*p.Likes)
	}
	if p.Comments != nil {
		post.Comments = cloneIDs(*p.Comments)
	}
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

type CommentPatch struct {
	Content *string `json:"content"`
}

func (p CommentPatch) Apply(c *Comment) {
	if p.Content != nil {
		c.Content = *p.Content
	}
}

// cloneIDs copies ids and never returns nil, so empty sets encode as [].
func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
