package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"newsquiz/internal/adapter"
	"newsquiz/internal/cache"
	"newsquiz/internal/config"
	"newsquiz/internal/domain"
	"newsquiz/internal/logger"
	"newsquiz/internal/notify"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	invalidator, err := notify.NewCDNInvalidator(cfg.CDN, log)
	if err != nil {
		log.Fatal("Failed to initialize CDN invalidator", zap.Error(err))
	}

	var notifier domain.Notifier
	if webhook := notify.NewWebhookNotifier(cfg.Notify); webhook != nil {
		notifier = webhook
	} else {
		log.Warn("Notification webhook is not configured. Only invalidations will run.")
	}
	trigger := notify.NewTrigger(invalidator, notifier, nil, log)

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	subscriber := adapter.NewRedisEventSubscriber(redisClient, cfg.API.EventChannel, cfg.Notify.BatchWindow, log)
	err = subscriber.Run(ctx, func(ctx context.Context, events []domain.QuizEvent) {
		result, err := trigger.Handle(ctx, events)
		if err != nil {
			log.Error("Auto-deploy failed", zap.Error(err), zap.Int("events", len(events)))
			return
		}
		log.Info(result.Message, zap.Strings("quizzes", result.Quizzes))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Event subscription ended", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Invalidation trigger stopped")
}
