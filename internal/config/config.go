package config

import (
	"os"
	"strconv"
	"time"

	"floorcast/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Retry     RetryConfig
	Engine    EngineConfig
	Bootstrap BootstrapConfig
	Workers   WorkerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	Host    string
	Port    int
	User    string
	Name    string
	SSLMode string
}

// RetryConfig bounds transient-failure retries at the store layer
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	BackoffBase  float64
}

// EngineConfig holds the statistical tunables of the projection engine
type EngineConfig struct {
	MinGamesPlayed int

	OpponentFactorMin float64
	OpponentFactorMax float64
	OpponentMinSample int
	OpponentTarget    float64
	// UseEmpiricalBayes selects variance-based opponent shrinkage over
	// the heuristic sample-size blend
	UseEmpiricalBayes bool

	TrendMinGames  int
	TrendMaxAdjust float64

	// LearnedWeightsPath points at an optional JSON file of trained
	// feature importances; empty means static defaults only
	LearnedWeightsPath string
}

// BootstrapConfig holds the resampling settings
type BootstrapConfig struct {
	Samples    int
	Confidence float64
	UseBlock   bool
	Seed       int64
}

// WorkerConfig bounds per-player evaluation parallelism
type WorkerConfig struct {
	MaxConcurrent int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}

	config := &Config{
		Database: *dbConfig,
		Retry: RetryConfig{
			MaxAttempts:  getEnvIntOrDefault("STORE_RETRY_ATTEMPTS", 3),
			InitialDelay: getEnvDurationOrDefault("STORE_RETRY_DELAY", time.Second),
			BackoffBase:  getEnvFloatOrDefault("STORE_RETRY_BACKOFF", 2.0),
		},
		Engine: EngineConfig{
			MinGamesPlayed:     getEnvIntOrDefault("MIN_GAMES_PLAYED", 3),
			OpponentFactorMin:  getEnvFloatOrDefault("OPPONENT_FACTOR_MIN", 0.70),
			OpponentFactorMax:  getEnvFloatOrDefault("OPPONENT_FACTOR_MAX", 1.30),
			OpponentMinSample:  getEnvIntOrDefault("OPPONENT_MIN_SAMPLE", 4),
			OpponentTarget:     getEnvFloatOrDefault("OPPONENT_TARGET_MEAN", 1.0),
			UseEmpiricalBayes:  getEnvBoolOrDefault("OPPONENT_EMPIRICAL_BAYES", true),
			TrendMinGames:      getEnvIntOrDefault("TREND_MIN_GAMES", 3),
			TrendMaxAdjust:     getEnvFloatOrDefault("TREND_MAX_ADJUSTMENT", 0.30),
			LearnedWeightsPath: getEnvOrDefault("LEARNED_WEIGHTS_FILE", ""),
		},
		Bootstrap: BootstrapConfig{
			Samples:    getEnvIntOrDefault("BOOTSTRAP_SAMPLES", 500),
			Confidence: getEnvFloatOrDefault("BOOTSTRAP_CONFIDENCE", 0.80),
			UseBlock:   getEnvBoolOrDefault("BOOTSTRAP_BLOCK", true),
			Seed:       int64(getEnvIntOrDefault("BOOTSTRAP_SEED", 0)),
		},
		Workers: WorkerConfig{
			MaxConcurrent: getEnvIntOrDefault("MAX_CONCURRENT_PLAYERS", 8),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		URL:     url,
		Host:    getEnvOrDefault("DB_HOST", ""),
		Port:    getEnvIntOrDefault("DB_PORT", 5432),
		User:    getEnvOrDefault("DB_USER", ""),
		Name:    getEnvOrDefault("DB_NAME", ""),
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("database URL is required")
	}
	if config.Retry.MaxAttempts < 1 {
		return errors.ConfigInvalid("retry attempts must be at least 1")
	}
	if config.Bootstrap.Samples < 1 {
		return errors.ConfigInvalid("bootstrap samples must be positive")
	}
	if config.Bootstrap.Confidence <= 0 || config.Bootstrap.Confidence >= 1 {
		return errors.ConfigInvalid("bootstrap confidence must be in (0, 1)")
	}
	if config.Engine.OpponentFactorMin <= 0 || config.Engine.OpponentFactorMin >= config.Engine.OpponentFactorMax {
		return errors.ConfigInvalid("opponent factor caps must satisfy 0 < min < max")
	}
	if config.Engine.TrendMaxAdjust < 0 || config.Engine.TrendMaxAdjust >= 1 {
		return errors.ConfigInvalid("trend max adjustment must be in [0, 1)")
	}
	if config.Engine.MinGamesPlayed < 1 {
		return errors.ConfigInvalid("minimum games played must be at least 1")
	}
	if config.Workers.MaxConcurrent < 1 {
		return errors.ConfigInvalid("worker concurrency must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
