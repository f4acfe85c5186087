package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Embedding  EmbeddingConfig
	RAG        RAGConfig
	Cache      CacheConfig
	Validation ValidationConfig
	Feedback   FeedbackConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type EmbeddingConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	Dimension int
	Timeout   time.Duration
}

// RAGConfig holds the retrieval and ranking tuning knobs. Weights for
// hybrid fusion must sum to 1, as must the rerank coefficients.
type RAGConfig struct {
	SemanticWeight float64
	LexicalWeight  float64
	RerankAlpha    float64
	RerankBeta     float64
	RerankGamma    float64
	RerankWindow   int
	DefaultTopK    int
	HybridTopK     int
	MaxTopK        int
}

type CacheConfig struct {
	Backend  string // "memory" or "redis"
	Capacity int
	TTL      time.Duration
}

type ValidationConfig struct {
	SimilarityThreshold float64
	RepetitionThreshold float64
	MinGeneratedChars   int
}

type FeedbackConfig struct {
	Window          time.Duration
	RefreshInterval time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// .env file is optional, continue with environment variables

	readTimeout := getEnvInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getEnvInt("SERVER_WRITE_TIMEOUT", 30)

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cv_generator"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Embedding: EmbeddingConfig{
			BaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081/v1"),
			APIKey:    getEnv("EMBEDDING_API_KEY", ""),
			Model:     getEnv("EMBEDDING_MODEL", "all-MiniLM-L6-v2"),
			Dimension: getEnvInt("EMBEDDING_DIMENSION", 384),
			Timeout:   time.Duration(getEnvInt("EMBEDDING_TIMEOUT", 30)) * time.Second,
		},
		RAG: RAGConfig{
			SemanticWeight: getEnvFloat("RAG_SEMANTIC_WEIGHT", 0.7),
			LexicalWeight:  getEnvFloat("RAG_LEXICAL_WEIGHT", 0.3),
			RerankAlpha:    getEnvFloat("RAG_RERANK_ALPHA", 0.5),
			RerankBeta:     getEnvFloat("RAG_RERANK_BETA", 0.3),
			RerankGamma:    getEnvFloat("RAG_RERANK_GAMMA", 0.2),
			RerankWindow:   getEnvInt("RAG_RERANK_WINDOW", 20),
			DefaultTopK:    getEnvInt("RAG_DEFAULT_TOP_K", 3),
			HybridTopK:     getEnvInt("RAG_HYBRID_TOP_K", 5),
			MaxTopK:        getEnvInt("RAG_MAX_TOP_K", 50),
		},
		Cache: CacheConfig{
			Backend:  getEnv("CACHE_BACKEND", "memory"),
			Capacity: getEnvInt("CACHE_CAPACITY", 512),
			TTL:      time.Duration(getEnvInt("CACHE_TTL_SECONDS", 3600)) * time.Second,
		},
		Validation: ValidationConfig{
			SimilarityThreshold: getEnvFloat("VALIDATION_THRESHOLD", 0.3),
			RepetitionThreshold: getEnvFloat("REPETITION_THRESHOLD", 0.5),
			MinGeneratedChars:   getEnvInt("VALIDATION_MIN_CHARS", 50),
		},
		Feedback: FeedbackConfig{
			Window:          time.Duration(getEnvInt("FEEDBACK_WINDOW_HOURS", 2160)) * time.Hour,
			RefreshInterval: time.Duration(getEnvInt("FEEDBACK_REFRESH_SECONDS", 300)) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.RAG.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *RAGConfig) validate() error {
	if c.SemanticWeight < 0 || c.LexicalWeight < 0 {
		return fmt.Errorf("fusion weights must be non-negative")
	}
	if math.Abs(c.SemanticWeight+c.LexicalWeight-1.0) > 1e-6 {
		return fmt.Errorf("fusion weights must sum to 1, got %.3f", c.SemanticWeight+c.LexicalWeight)
	}
	if c.RerankAlpha < 0 || c.RerankBeta < 0 || c.RerankGamma < 0 {
		return fmt.Errorf("rerank coefficients must be non-negative")
	}
	if math.Abs(c.RerankAlpha+c.RerankBeta+c.RerankGamma-1.0) > 1e-6 {
		return fmt.Errorf("rerank coefficients must sum to 1, got %.3f", c.RerankAlpha+c.RerankBeta+c.RerankGamma)
	}
	if c.RerankWindow <= 0 {
		return fmt.Errorf("rerank window must be positive")
	}
	if c.DefaultTopK <= 0 || c.HybridTopK <= 0 || c.MaxTopK <= 0 {
		return fmt.Errorf("top-k defaults must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
