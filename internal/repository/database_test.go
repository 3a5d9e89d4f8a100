package repository

import (
	"testing"
	"time"

	"github.com/feed-system/social-demo/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPostRowConversion(t *testing.T) {
	url := "https://images.example.com/p.jpg"
	post := models.Post{
		ID:        "p1",
		UserID:    "u1",
		Content:   "hello",
		ImageURL:  &url,
		Likes:     []string{"u2"},
		Comments:  nil,
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	row := newPostRow(3, post)
	assert.Equal(t, 3, row.Position)

	back := row.model()
	assert.Equal(t, post.ID, back.ID)
	assert.Equal(t, url, *back.ImageURL)
	assert.Equal(t, []string{"u2"}, back.Likes)
	assert.Equal(t, []string{}, back.Comments, "NULL arrays load as empty sets")
	assert.True(t, post.CreatedAt.Equal(back.CreatedAt))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "fixture_users", userRow{}.TableName())
	assert.Equal(t, "fixture_posts", postRow{}.TableName())
	assert.Equal(t, "fixture_comments", commentRow{}.TableName())
	assert.Equal(t, "fixture_messages", messageRow{}.TableName())
}
