package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/feed-system/social-demo/internal/config"
	"github.com/feed-system/social-demo/internal/models"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Database holds the Postgres copy of the fixture set. It is only read once
// at start-up; the running services never write back to it.
type Database struct {
	*gorm.DB
}

func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	return &Database{db}, nil
}

func (db *Database) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&userRow{},
		&postRow{},
		&commentRow{},
		&messageRow{},
	)
}

func (db *Database) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// LoadFixtures reads all four fixture tables. Users keep their insertion
// order (the first one is the current user); the other collections are
// ordered by position as well so the store matches the seeded files.
func (db *Database) LoadFixtures(ctx context.Context) (*Fixtures, error) {
	var (
		users    []userRow
		posts    []postRow
		comments []commentRow
		messages []messageRow
	)

	tx := db.WithContext(ctx)
	if err := tx.Order("position ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if err := tx.Order("position ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	if err := tx.Order("position ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	if err := tx.Order("position ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	f := &Fixtures{
		Users:    make([]models.User, 0, len(users)),
		Posts:    make([]models.Post, 0, len(posts)),
		Comments: make([]models.Comment, 0, len(comments)),
		Messages: make([]models.Message, 0, len(messages)),
	}
	for _, r := range users {
		f.Users = append(f.Users, r.model())
	}
	for _, r := range posts {
		f.Posts = append(f.Posts, r.model())
	}
	for _, r := range comments {
		f.Comments = append(f.Comments, r.model())
	}
	for _, r := range messages {
		f.Messages = append(f.Messages, r.model())
	}
	return f, nil
}

// SeedFixtures upserts f into the fixture tables in a single transaction.
func (db *Database) SeedFixtures(ctx context.Context, f *Fixtures) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := func() *gorm.DB { return tx.Clauses(clause.OnConflict{UpdateAll: true}) }

		for i, u := range f.Users {
			if err := upsert().Create(newUserRow(i, u)).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.ID, err)
			}
		}
		for i, p := range f.Posts {
			if err := upsert().Create(newPostRow(i, p)).Error; err != nil {
				return fmt.Errorf("failed to seed post %s: %w", p.ID, err)
			}
		}
		for i, c := range f.Comments {
			if err := upsert().Create(newCommentRow(i, c)).Error; err != nil {
				return fmt.Errorf("failed to seed comment %s: %w", c.ID, err)
			}
		}
		for i, m := range f.Messages {
			if err := upsert().Create(newMessageRow(i, m)).Error; err != nil {
				return fmt.Errorf("failed to seed message %s: %w", m.ID, err)
			}
		}
		return nil
	})
}

type userRow struct {
	ID             string  `gorm:"primaryKey"`
	Position       int     `gorm:"not null;index"`
	Username       string  `gorm:"not null"`
	Bio            string  `gorm:"type:text"`
	Avatar         *string `gorm:"type:text"`
	FollowersCount int     `gorm:"not null;default:0"`
	FollowingCount int     `gorm:"not null;default:0"`
}

func (userRow) TableName() string {
	return "fixture_users"
}

func newUserRow(pos int, u models.User) *userRow {
	return &userRow{
		ID:             u.ID,
		Position:       pos,
		Username:       u.Username,
		Bio:            u.Bio,
		Avatar:         u.Avatar,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
	}
}

func (r userRow) model() models.User {
	return models.User{
		ID:             r.ID,
		Username:       r.Username,
		Bio:            r.Bio,
		Avatar:         r.Avatar,
		FollowersCount: r.FollowersCount,
		FollowingCount: r.FollowingCount,
	}
}

type postRow struct {
	ID        string         `gorm:"primaryKey"`
	Position  int            `gorm:"not null;index"`
	UserID    string         `gorm:"not null;index"`
	Content   string         `gorm:"type:text;not null"`
	ImageURL  *string        `gorm:"type:text"`
	Likes     pq.StringArray `gorm:"type:text[]"`
	Comments  pq.StringArray `gorm:"type:text[]"`
	CreatedAt time.Time
}

func (postRow) TableName() string {
	return "fixture_posts"
}

func newPostRow(pos int, p models.Post) *postRow {
	return &postRow{
		ID:        p.ID,
		Position:  pos,
		UserID:    p.UserID,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Likes:     pq.StringArray(p.Likes),
		Comments:  pq.StringArray(p.Comments),
		CreatedAt: p.CreatedAt,
	}
}

func (r postRow) model() models.Post {
	return models.Post{
		ID:        r.ID,
		UserID:    r.UserID,
		Content:   r.Content,
		ImageURL:  r.ImageURL,
		Likes:     []string(r.Likes),
		Comments:  []string(r.Comments),
		CreatedAt: r.CreatedAt.UTC(),
	}.Clone()
}

type commentRow struct {
	ID        string `gorm:"primaryKey"`
	Position  int    `gorm:"not null;index"`
	PostID    string `gorm:"not null;index"`
	UserID    string `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (commentRow) TableName() string {
	return "fixture_comments"
}

func newCommentRow(pos int, c models.Comment) *commentRow {
	return &commentRow{
		ID:        c.ID,
		Position:  pos,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (r commentRow) model() models.Comment {
	return models.Comment{
		ID:        r.ID,
		PostID:    r.PostID,
		UserID:    r.UserID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type messageRow struct {
	ID         string    `gorm:"primaryKey"`
	Position   int       `gorm:"not null;index"`
	SenderID   string    `gorm:"not null;index"`
	ReceiverID string    `gorm:"not null;index"`
	Content    string    `gorm:"type:text;not null"`
	Timestamp  time.Time `gorm:"not null"`
	Read       bool      `gorm:"not null;default:false"`
}

func (messageRow) TableName() string {
	return "fixture_messages"
}

func newMessageRow(pos int, m models.Message) *messageRow {
	return &messageRow{
		ID:         m.ID,
		Position:   pos,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Timestamp:  m.Timestamp,
		Read:       m.Read,
	}
}

func (r messageRow) model() models.Message {
	return models.Message{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Content:    r.Content,
		Timestamp:  r.Timestamp.UTC(),
		Read:       r.Read,
	}
}
