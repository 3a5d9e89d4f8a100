package repository

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/feed-system/social-demo/internal/models"
)

//go:embed fixtures/*.json
var embedded embed.FS

// Fixtures is the static data a Store starts from.
type Fixtures struct {
	Users    []models.User    `json:"users"`
	Posts    []models.Post    `json:"posts"`
	Comments []models.Comment `json:"comments"`
	Messages []models.Message `json:"messages"`
}

// LoadEmbeddedFixtures reads the fixture set compiled into the binary.
func LoadEmbeddedFixtures() (*Fixtures, error) {
	sub, err := fs.Sub(embedded, "fixtures")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded fixtures: %w", err)
	}
	return LoadFixturesFS(sub)
}

// LoadFixturesDir reads users.json, posts.json, comments.json and
// messages.json from dir.
func LoadFixturesDir(dir string) (*Fixtures, error) {
	return LoadFixturesFS(os.DirFS(dir))
}

func LoadFixturesFS(fsys fs.FS) (*Fixtures, error) {
	var f Fixtures
	files := []struct {
		name string
		dest interface{}
	}{
		{"users.json", &f.Users},
		{"posts.json", &f.Posts},
		{"comments.json", &f.Comments},
		{"messages.json", &f.Messages},
	}

	for _, file := range files {
		data, err := fs.ReadFile(fsys, file.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", file.name, err)
		}
		if err := json.Unmarshal(data, file.dest); err != nil {
			return nil, fmt.Errorf("failed to decode fixture %s: %w", file.name, err)
		}
	}

	return &f, nil
}
