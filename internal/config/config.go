package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the engine.
type Config struct {
	App      AppConfig
	Engine   EngineConfig
	Models   ModelConfig
	Rules    RulesConfig
	Audit    AuditConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
}

// AppConfig identifies the running process.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// EngineConfig tunes the triage pipeline.
type EngineConfig struct {
	// ConfidenceThreshold is the category-confidence floor below which a
	// record is flagged for human review.
	ConfidenceThreshold float64
	// CriticalConfidenceThreshold is the category confidence at which an
	// emergency-category prediction is promoted to Critical without an
	// override.
	CriticalConfidenceThreshold float64
	// SpamRepetitionLimit is the number of occurrences of one emergency
	// keyword beyond which its matches are discounted.
	SpamRepetitionLimit int
	// MinContextWords is the number of non-keyword words required before a
	// repeated keyword is honored.
	MinContextWords int
	// BatchWorkers bounds concurrent ticket processing in batch mode.
	BatchWorkers int
}

// ModelConfig locates persisted scorer artifacts.
type ModelConfig struct {
	CategoryPath  string
	SentimentPath string
}

// RulesConfig locates the optional YAML rule tables.
type RulesConfig struct {
	Path string
}

// AuditConfig controls audit sink wiring.
type AuditConfig struct {
	LogPath      string
	RedisChannel string
}

// PostgresConfig holds DB connection values for the audit store.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	threshold := getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.55)
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("CONFIDENCE_THRESHOLD must be in [0,1], got %v", threshold)
	}
	criticalThreshold := getEnvAsFloat("CRITICAL_CONFIDENCE_THRESHOLD", 0.85)
	if criticalThreshold < 0 || criticalThreshold > 1 {
		return nil, fmt.Errorf("CRITICAL_CONFIDENCE_THRESHOLD must be in [0,1], got %v", criticalThreshold)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "triage-engine"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Engine: EngineConfig{
			ConfidenceThreshold:         threshold,
			CriticalConfidenceThreshold: criticalThreshold,
			SpamRepetitionLimit:         getEnvAsInt("SPAM_REPETITION_LIMIT", 3),
			MinContextWords:             getEnvAsInt("MIN_CONTEXT_WORDS", 3),
			BatchWorkers:                getEnvAsInt("BATCH_WORKERS", 4),
		},
		Models: ModelConfig{
			CategoryPath:  getEnv("CATEGORY_MODEL_PATH", "models/category_model.json"),
			SentimentPath: getEnv("SENTIMENT_MODEL_PATH", "models/sentiment_model.json"),
		},
		Rules: RulesConfig{
			Path: os.Getenv("RULES_PATH"),
		},
		Audit: AuditConfig{
			LogPath:      getEnv("AUDIT_LOG_PATH", "logs/system_audit.log"),
			RedisChannel: os.Getenv("AUDIT_REDIS_CHANNEL"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
