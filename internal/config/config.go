package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Logger      LoggerConfig
	DB          DBConfig
	Redis       RedisConfig
	LLM         LLMConfig
	Generation  GenerationConfig
	OCR         OCRConfig
	Cache       CacheConfig
	JWT         JWTConfig
	GoogleOAuth GoogleOAuthConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type DBConfig struct {
	DSN string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// LLMConfig configures the completion backend. The credential is injected
// here at startup; it is never read from process globals at call time.
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type GenerationConfig struct {
	MinQuestions   int
	MaxQuestions   int
	MaxFiles       int
	MaxFileSizeMB  int
	MaxPromptChars int
}

type OCRConfig struct {
	Language string
}

type CacheConfig struct {
	QuizViewTTL time.Duration
	StatsTTL    time.Duration
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func LoadConfig() (*Config, error) {
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
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file is acceptable; env vars and defaults still apply.
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimitMB:  viper.GetInt("server.body_limit_mb"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		DB: DBConfig{
			DSN: viper.GetString("db.dsn"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			BaseURL: viper.GetString("llm.base_url"),
			APIKey:  viper.GetString("llm.api_key"),
			Model:   viper.GetString("llm.model"),
			Timeout: viper.GetDuration("llm.timeout") * time.Second,
		},
		Generation: GenerationConfig{
			MinQuestions:   viper.GetInt("generation.min_questions"),
			MaxQuestions:   viper.GetInt("generation.max_questions"),
			MaxFiles:       viper.GetInt("generation.max_files"),
			MaxFileSizeMB:  viper.GetInt("generation.max_file_size_mb"),
			MaxPromptChars: viper.GetInt("generation.max_prompt_chars"),
		},
		OCR: OCRConfig{
			Language: viper.GetString("ocr.language"),
		},
		Cache: CacheConfig{
			QuizViewTTL: viper.GetDuration("cache.quiz_view_ttl") * time.Second,
			StatsTTL:    viper.GetDuration("cache.stats_ttl") * time.Second,
		},
		JWT: JWTConfig{
			SecretKey:       viper.GetString("jwt.secret_key"),
			AccessTokenTTL:  viper.GetDuration("jwt.access_token_ttl") * time.Second,
			RefreshTokenTTL: viper.GetDuration("jwt.refresh_token_ttl") * time.Second,
		},
		GoogleOAuth: GoogleOAuthConfig{
			ClientID:     viper.GetString("google_oauth.client_id"),
			ClientSecret: viper.GetString("google_oauth.client_secret"),
			RedirectURL:  viper.GetString("google_oauth.redirect_url"),
		},
	}

	// Environment variable overrides for deployment
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		config.DB.DSN = dsn
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if apiKey := os.Getenv("OPENROUTER_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.body_limit_mb", 100)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("llm.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("llm.model", "mistralai/mistral-7b-instruct")
	viper.SetDefault("llm.timeout", 60)
	viper.SetDefault("generation.min_questions", 5)
	viper.SetDefault("generation.max_questions", 500)
	viper.SetDefault("generation.max_files", 10)
	viper.SetDefault("generation.max_file_size_mb", 10)
	viper.SetDefault("generation.max_prompt_chars", 20000)
	viper.SetDefault("ocr.language", "eng")
	viper.SetDefault("cache.quiz_view_ttl", 600)
	viper.SetDefault("cache.stats_ttl", 120)
	viper.SetDefault("jwt.access_token_ttl", 900)
	viper.SetDefault("jwt.refresh_token_ttl", 604800)
}

// validate rejects configurations the server cannot start with. A missing
// completion-backend credential is a startup error, not a runtime one.
func (c *Config) validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key (or OPENROUTER_API_KEY) is not configured")
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("db.dsn (or DATABASE_DSN) is not configured")
	}
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key (or JWT_SECRET_KEY) is not configured")
	}
	if c.Generation.MinQuestions <= 0 || c.Generation.MaxQuestions < c.Generation.MinQuestions {
		return fmt.Errorf("invalid generation question bounds: min=%d max=%d",
			c.Generation.MinQuestions, c.Generation.MaxQuestions)
	}
	return nil
}
