package main

import (
	"context"
	"encoding/json"
	"fmt" // For initial error printing before logger is up
	"os"
	"os/signal"
	"syscall"

	"newsquiz/internal/adapter"
	"newsquiz/internal/adapter/bigkinds"
	"newsquiz/internal/adapter/llm"
	"newsquiz/internal/cache"
	"newsquiz/internal/config"
	"newsquiz/internal/logger"
	"newsquiz/internal/prompt"
	"newsquiz/internal/quizgen"
	"newsquiz/internal/repository"
	"newsquiz/internal/service"
	"newsquiz/internal/validation"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		// Logger might not be initialized yet, so use fmt for this critical error
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Quiz generation starting up...",
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model),
		zap.Int("max_retries", cfg.Pipeline.MaxRetries),
	)

	// Article source
	scraper := bigkinds.NewDetailPageScraper(cfg.BigKinds.DetailURL, cfg.BigKinds.ScrapeTimeout, cfg.BigKinds.ScrapeRPS, log)
	source := bigkinds.NewClient(cfg.BigKinds, scraper, nil, cfg.Location(), log)

	// Model backend
	generator, err := llm.NewGenerator(cfg.LLM, log)
	if err != nil {
		log.Error("Failed to initialize text generator", zap.Error(err))
		return 1
	}

	// Model stages
	prompts := prompt.NewLoader(cfg.Prompts.Dir)
	params := quizgen.GenerationParams{
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		TopP:        cfg.LLM.TopP,
	}
	screener := quizgen.NewScreener(prompts, generator, params, cfg.Pipeline.BodyExcerpt, log)
	drafter := quizgen.NewGenerator(prompts, generator, params, log)
	parser := quizgen.NewParser(log)

	// Quiz store
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Error("Failed to connect to Redis", zap.Error(err))
		return 1
	}
	defer redisClient.Close()
	store := adapter.NewRedisStoreAdapter(redisClient)
	repo := repository.NewQuizStoreRepository(store, cfg.API.EventChannel, nil, log)

	pipeline := service.NewPipelineService(
		source,
		screener,
		drafter,
		parser,
		validation.NewValidator(),
		repo,
		service.PipelineOptions{
			ArticleCount: cfg.BigKinds.ArticleCount,
			MaxRetries:   cfg.Pipeline.MaxRetries,
			Location:     cfg.Location(),
		},
		nil,
		log,
	)

	report, runErr := pipeline.Run(ctx)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Error("Failed to encode run report", zap.Error(err))
		return 1
	}
	fmt.Println(string(out))

	if runErr != nil {
		return 1
	}
	return 0
}
