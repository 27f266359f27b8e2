// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AccelByte/extend-virtual-pet/pkg/decay"
	"github.com/AccelByte/extend-virtual-pet/pkg/record"
)

// Tuning holds the game balance values.
type Tuning struct {
	Decay       decay.Config                     `yaml:"decay"`
	Activities  Activities                       `yaml:"activities"`
	Accessories map[record.Tier]AccessoryPricing `yaml:"accessories"`
}

// Activities are the need deltas of the fixed activities. Sleep and feed
// take their amount from the caller.
type Activities struct {
	Play     record.Effect `yaml:"play"`
	Exercise record.Effect `yaml:"exercise"`
	Vet      record.Effect `yaml:"vet"`
}

// AccessoryPricing is the price and equip bonus of one tier.
type AccessoryPricing struct {
	Cost           int `yaml:"cost"`
	HappinessBonus int `yaml:"happinessBonus"`
}

// DefaultTuning returns the built-in balance.
func DefaultTuning() Tuning {
	return Tuning{
		Decay: decay.DefaultConfig(),
		Activities: Activities{
			Play:     record.Effect{Happiness: 25},
			Exercise: record.Effect{Hunger: -15, Sleep: -15, Health: 30},
			Vet:      record.Effect{Sleep: 30},
		},
		Accessories: map[record.Tier]AccessoryPricing{
			record.TierBlack:  {Cost: 20, HappinessBonus: 15},
			record.TierSilver: {Cost: 100, HappinessBonus: 25},
			record.TierGold:   {Cost: 200, HappinessBonus: 30},
		},
	}
}

// LoadTuning reads tuning from a YAML file on top of DefaultTuning.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	if path == "" {
		return tuning, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), &tuning); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse YAML tuning: %w", err)
	}

	if err := tuning.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning: %w", err)
	}

	return tuning, nil
}

// Validate checks the tuning for values the game cannot run with.
func (t Tuning) Validate() error {
	if t.Decay.Period <= 0 {
		return fmt.Errorf("decay period must be positive, got %v", t.Decay.Period)
	}
	if t.Decay.Amount < 0 || t.Decay.Penalty < 0 {
		return fmt.Errorf("decay amount and penalty must not be negative")
	}
	if t.Decay.MinGap > t.Decay.Period {
		return fmt.Errorf("decay minGap %v exceeds period %v", t.Decay.MinGap, t.Decay.Period)
	}
	for _, tier := range record.Tiers {
		p, ok := t.Accessories[tier]
		if !ok {
			return fmt.Errorf("accessory tier %s has no pricing", tier)
		}
		if p.Cost < 0 || p.HappinessBonus < 0 {
			return fmt.Errorf("accessory tier %s has negative pricing", tier)
		}
	}
	for tier := range t.Accessories {
		if tier != record.TierBlack && tier != record.TierSilver && tier != record.TierGold {
			return fmt.Errorf("unknown accessory tier: %s", tier)
		}
	}
	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		value := os.Getenv(parts[0])
		if value == "" && len(parts) == 2 {
			return parts[1]
		}
		return value
	})
}
