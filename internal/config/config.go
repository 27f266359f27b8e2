// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"VirtualPet"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// ============================================================
	// Data files
	// ============================================================
	// File names are relative to DataDir unless absolute.
	DataDir        string `env:"DATA_DIR" envDefault:"data"`
	PetFile        string `env:"PET_FILE" envDefault:"petInfo.csv"`
	ParentalFile   string `env:"PARENTAL_FILE" envDefault:"parentalInfo.csv"`
	TimeWindowFile string `env:"TIME_WINDOW_FILE" envDefault:"timeInfo.csv"`
	PlayStatsFile  string `env:"PLAY_STATS_FILE" envDefault:"timePlay.csv"`
	QuizBankPath   string `env:"QUIZ_BANK_PATH" envDefault:"minigameInfo.csv"`

	// ============================================================
	// Game tuning and file watching
	// ============================================================
	TuningPath    string        `env:"TUNING_PATH"`
	WatchEnabled  bool          `env:"WATCH_ENABLED" envDefault:"true"`
	WatchDebounce time.Duration `env:"WATCH_DEBOUNCE" envDefault:"500ms"`

	// ============================================================
	// Redis snapshot mirror
	// ============================================================
	RedisEnabled    bool          `env:"REDIS_ENABLED" envDefault:"false"`
	RedisHost       string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisMaxRetries int           `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisKeyPrefix  string        `env:"REDIS_KEY_PREFIX" envDefault:"virtual_pet:"`
	RedisChannel    string        `env:"REDIS_CHANNEL" envDefault:"virtual_pet:snapshots"`
	RedisTTL        time.Duration `env:"REDIS_TTL" envDefault:"24h"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled bool `env:"OTEL_ENABLED" envDefault:"true"`
}
