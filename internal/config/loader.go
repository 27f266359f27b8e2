// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	// Validate server ports
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid GRPC_PORT: %d (must be 1-65535)", c.GRPCPort)
	}

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}

	for name, file := range map[string]string{
		"PET_FILE":         c.PetFile,
		"PARENTAL_FILE":    c.ParentalFile,
		"TIME_WINDOW_FILE": c.TimeWindowFile,
		"PLAY_STATS_FILE":  c.PlayStatsFile,
		"QUIZ_BANK_PATH":   c.QuizBankPath,
	} {
		if file == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	if c.WatchDebounce <= 0 {
		return fmt.Errorf("invalid WATCH_DEBOUNCE: %v (must be positive)", c.WatchDebounce)
	}

	if c.RedisEnabled {
		if c.RedisMaxRetries < 0 {
			return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d", c.RedisMaxRetries)
		}
		if c.RedisTTL <= 0 {
			return fmt.Errorf("invalid REDIS_TTL: %v (must be positive)", c.RedisTTL)
		}
	}

	return nil
}
