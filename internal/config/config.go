package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	BigKinds BigKindsConfig
	LLM      LLMConfig
	Pipeline PipelineConfig
	Prompts  PromptsConfig
	CDN      CDNConfig
	Notify   NotifyConfig
	API      APIConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Level string
	Env   string
}

// BigKindsConfig configures the news search API used as the article source.
type BigKindsConfig struct {
	APIKey        string
	URL           string
	DetailURL     string
	Provider      string
	Category      string
	ArticleCount  int
	WindowDays    int
	Timeout       time.Duration
	ScrapeTimeout time.Duration
	ScrapeRPS     float64
}

// LLMConfig selects and tunes the generative text backend.
type LLMConfig struct {
	Provider     string // anthropic, ollama, openai
	Model        string
	APIKey       string
	BaseURL      string
	MaxTokens    int
	Temperature  float64
	TopP         float64
	Timeout      time.Duration
	MaxAttempts  int
	RetryBackoff time.Duration
}

type PipelineConfig struct {
	MaxRetries   int
	BodyExcerpt  int
	TimeLocation string
}

type PromptsConfig struct {
	Dir string
}

type CDNConfig struct {
	InvalidationURL string
	DistributionID  string
	Token           string
	Timeout         time.Duration
}

type NotifyConfig struct {
	WebhookURL  string
	Timeout     time.Duration
	BatchWindow time.Duration
}

type APIConfig struct {
	CacheTTL     time.Duration
	EventChannel string
	// EvictWindow batches change events before cached reads are dropped.
	EvictWindow time.Duration
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.SetDefault("bigkinds.url", "https://tools.kinds.or.kr/search/news")
	viper.SetDefault("bigkinds.detail_url", "https://www.bigkinds.or.kr/v2/news/newsDetailView.do")
	viper.SetDefault("bigkinds.provider", "서울경제")
	viper.SetDefault("bigkinds.category", "경제")
	viper.SetDefault("bigkinds.article_count", 12)
	viper.SetDefault("bigkinds.window_days", 7)
	viper.SetDefault("bigkinds.timeout", 15)
	viper.SetDefault("bigkinds.scrape_timeout", 10)
	viper.SetDefault("bigkinds.scrape_rps", 2.0)

	viper.SetDefault("llm.provider", "anthropic")
	viper.SetDefault("llm.model", "claude-3-haiku-20240307")
	viper.SetDefault("llm.max_tokens", 8000)
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.top_p", 0.9)
	viper.SetDefault("llm.timeout", 300)
	viper.SetDefault("llm.max_attempts", 3)
	viper.SetDefault("llm.retry_backoff", 2)

	viper.SetDefault("pipeline.max_retries", 2)
	viper.SetDefault("pipeline.body_excerpt", 1000)
	viper.SetDefault("pipeline.time_location", "Asia/Seoul")

	viper.SetDefault("prompts.dir", "./prompts")

	viper.SetDefault("cdn.timeout", 10)
	viper.SetDefault("notify.timeout", 10)
	viper.SetDefault("notify.batch_window", 5)

	viper.SetDefault("api.cache_ttl", 300)
	viper.SetDefault("api.event_channel", "newsquiz:quiz-events")
	viper.SetDefault("api.evict_window_ms", 200)
}

// LoadConfig reads config.yaml (optional) and the environment into a Config.
// It is called once per process; the result is passed explicitly to every component.
func LoadConfig() (*Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		BigKinds: BigKindsConfig{
			APIKey:        viper.GetString("bigkinds.api_key"),
			URL:           viper.GetString("bigkinds.url"),
			DetailURL:     viper.GetString("bigkinds.detail_url"),
			Provider:      viper.GetString("bigkinds.provider"),
			Category:      viper.GetString("bigkinds.category"),
			ArticleCount:  viper.GetInt("bigkinds.article_count"),
			WindowDays:    viper.GetInt("bigkinds.window_days"),
			Timeout:       viper.GetDuration("bigkinds.timeout") * time.Second,
			ScrapeTimeout: viper.GetDuration("bigkinds.scrape_timeout") * time.Second,
			ScrapeRPS:     viper.GetFloat64("bigkinds.scrape_rps"),
		},
		LLM: LLMConfig{
			Provider:     viper.GetString("llm.provider"),
			Model:        viper.GetString("llm.model"),
			APIKey:       viper.GetString("llm.api_key"),
			BaseURL:      viper.GetString("llm.base_url"),
			MaxTokens:    viper.GetInt("llm.max_tokens"),
			Temperature:  viper.GetFloat64("llm.temperature"),
			TopP:         viper.GetFloat64("llm.top_p"),
			Timeout:      viper.GetDuration("llm.timeout") * time.Second,
			MaxAttempts:  viper.GetInt("llm.max_attempts"),
			RetryBackoff: viper.GetDuration("llm.retry_backoff") * time.Second,
		},
		Pipeline: PipelineConfig{
			MaxRetries:   viper.GetInt("pipeline.max_retries"),
			BodyExcerpt:  viper.GetInt("pipeline.body_excerpt"),
			TimeLocation: viper.GetString("pipeline.time_location"),
		},
		Prompts: PromptsConfig{
			Dir: viper.GetString("prompts.dir"),
		},
		CDN: CDNConfig{
			InvalidationURL: viper.GetString("cdn.invalidation_url"),
			DistributionID:  viper.GetString("cdn.distribution_id"),
			Token:           viper.GetString("cdn.token"),
			Timeout:         viper.GetDuration("cdn.timeout") * time.Second,
		},
		Notify: NotifyConfig{
			WebhookURL:  viper.GetString("notify.webhook_url"),
			Timeout:     viper.GetDuration("notify.timeout") * time.Second,
			BatchWindow: viper.GetDuration("notify.batch_window") * time.Second,
		},
		API: APIConfig{
			CacheTTL:     viper.GetDuration("api.cache_ttl") * time.Second,
			EventChannel: viper.GetString("api.event_channel"),
			EvictWindow:  viper.GetDuration("api.evict_window_ms") * time.Millisecond,
		},
	}

	// Secrets come from the environment
	if key := os.Getenv("BIGKINDS_API_KEY"); key != "" {
		config.BigKinds.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && config.LLM.Provider == "anthropic" {
		config.LLM.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && config.LLM.Provider == "openai" {
		config.LLM.APIKey = key
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT: %v", err)
		}
		config.Server.Port = p
	}

	return config, nil
}

// Location returns the time zone used to stamp quiz dates, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Pipeline.TimeLocation)
	if err != nil {
		return time.UTC
	}
	return loc
}
