package main

import (
	"context"
	"log"
	"time"

	"github.com/feed-system/social-demo/internal/config"
	"github.com/feed-system/social-demo/internal/repository"
	"github.com/feed-system/social-demo/pkg/logger"
)

// seed writes the fixture set into Postgres so the API can start with
// fixtures.source: database.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)

	fixtures, err := repository.LoadEmbeddedFixtures()
	if cfg.Fixtures.Source == config.FixtureSourceFile {
		fixtures, err = repository.LoadFixturesDir(cfg.Fixtures.Dir)
	}
	if err != nil {
		logger.WithError(err).Fatal("Failed to load fixtures")
	}

	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.SeedFixtures(ctx, fixtures); err != nil {
		logger.WithError(err).Fatal("Failed to seed fixtures")
	}

	logger.WithFields(map[string]interface{}{
		"users":    len(fixtures.Users),
		"posts":    len(fixtures.Posts),
		"comments": len(fixtures.Comments),
		"messages": len(fixtures.Messages),
	}).Info("Fixtures seeded successfully")
}
