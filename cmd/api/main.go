package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feed-system/social-demo/internal/config"
	"github.com/feed-system/social-demo/internal/handlers"
	"github.com/feed-system/social-demo/internal/repository"
	"github.com/feed-system/social-demo/internal/services"
	"github.com/feed-system/social-demo/pkg/cache"
	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/feed-system/social-demo/pkg/queue"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting social demo API server...")

	ctx := context.Background()

	fixtures, err := loadFixtures(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load fixtures")
	}
	logger.WithFields(map[string]interface{}{
		"source":   cfg.Fixtures.Source,
		"users":    len(fixtures.Users),
		"posts":    len(fixtures.Posts),
		"comments": len(fixtures.Comments),
		"messages": len(fixtures.Messages),
	}).Info("Fixtures loaded")

	store := repository.NewStore(fixtures)

	var producer queue.Publisher = queue.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaProducer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	var activityService *services.ActivityService
	if cfg.Redis.Enabled {
		redisClient := cache.NewRedisClient(
			cfg.Redis.Addr(),
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
			cfg.Redis.MinIdleConns,
		)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx); err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		activityService = services.NewActivityService(redisClient, cfg.Activity.TTL, logger)
	}

	latency := services.NewLatency(cfg.Latency.Min, cfg.Latency.Max)

	postService := services.NewPostService(repository.NewPostRepository(store), latency, producer, logger)
	userService := services.NewUserService(repository.NewUserRepository(store), latency, producer, logger)
	messageService := services.NewMessageService(repository.NewMessageRepository(store), latency, producer, logger)
	commentService := services.NewCommentService(repository.NewCommentRepository(store), latency, producer, logger)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(
		handlers.NewPostHandler(postService, commentService, logger),
		handlers.NewUserHandler(userService, activityService, logger),
		handlers.NewMessageHandler(messageService, logger),
		handlers.NewCommentHandler(commentService, logger),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func loadFixtures(ctx context.Context, cfg *config.Config) (*repository.Fixtures, error) {
	switch cfg.Fixtures.Source {
	case config.FixtureSourceEmbedded:
		return repository.LoadEmbeddedFixtures()
	case config.FixtureSourceFile:
		return repository.LoadFixturesDir(cfg.Fixtures.Dir)
	case config.FixtureSourceDatabase:
		db, err := repository.NewDatabase(&cfg.Database)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.LoadFixtures(ctx)
	default:
		return nil, fmt.Errorf("unknown fixture source %q", cfg.Fixtures.Source)
	}
}
