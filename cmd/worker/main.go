package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/feed-system/social-demo/internal/config"
	"github.com/feed-system/social-demo/internal/services"
	"github.com/feed-system/social-demo/internal/workers"
	"github.com/feed-system/social-demo/pkg/cache"
	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/feed-system/social-demo/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting social demo activity worker...")

	if !cfg.Kafka.Enabled || !cfg.Redis.Enabled {
		logger.Fatal("The activity worker needs both kafka.enabled and redis.enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	consumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID)
	defer consumer.Close()

	activityService := services.NewActivityService(redisClient, cfg.Activity.TTL, logger)
	worker := workers.NewActivityWorker(activityService, consumer, cfg.Activity.Concurrency, logger)

	if err := worker.Start(ctx); err != nil {
		logger.WithError(err).Error("Activity worker stopped with error")
	}

	logger.Info("Worker exited")
}
