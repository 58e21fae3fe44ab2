package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"newsquiz/internal/adapter"
	"newsquiz/internal/cache"
	"newsquiz/internal/config"
	"newsquiz/internal/handler"
	"newsquiz/internal/logger"
	"newsquiz/internal/middleware"
	"newsquiz/internal/repository"
	"newsquiz/internal/service"
	"newsquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize Redis Client
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")

	store := adapter.NewRedisStoreAdapter(redisClient)
	quizRepository := repository.NewQuizStoreRepository(store, cfg.API.EventChannel, nil, appLogger)

	// Initialize services
	quizService := service.NewQuizService(quizRepository, validation.NewValidator(), cfg.API.CacheTTL, appLogger)

	// Drop cached reads when any process writes a quiz
	evictCtx, stopEvict := context.WithCancel(context.Background())
	defer stopEvict()
	subscriber := adapter.NewRedisEventSubscriber(redisClient, cfg.API.EventChannel, cfg.API.EvictWindow, appLogger)
	go func() {
		if err := subscriber.Run(evictCtx, quizService.Evict); err != nil && evictCtx.Err() == nil {
			appLogger.Error("Quiz event subscription stopped", zap.Error(err))
		}
	}()

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := store.Ping(c.UserContext()); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, fmt.Sprintf("store unavailable: %v", err))
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API group
	quizHandler.RegisterRoutes(app.Group("/api"), middleware.NewValidationMiddleware())

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	stopEvict()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
