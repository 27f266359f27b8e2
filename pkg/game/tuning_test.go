// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AccelByte/extend-virtual-pet/pkg/record"
)

func writeTuning(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write tuning: %v", err)
	}
	return path
}

func TestLoadTuningDefaults(t *testing.T) {
	tuning, err := LoadTuning("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tuning.Decay.Period != 5*time.Second || tuning.Decay.Amount != 2 {
		t.Errorf("decay = %+v", tuning.Decay)
	}
	if tuning.Accessories[record.TierSilver].Cost != 100 {
		t.Errorf("silver cost = %d, want 100", tuning.Accessories[record.TierSilver].Cost)
	}
}

func TestLoadTuningOverrides(t *testing.T) {
	t.Setenv("PET_DECAY_AMOUNT", "3")
	path := writeTuning(t, `
decay:
  period: 10s
  amount: ${PET_DECAY_AMOUNT:2}
  penalty: ${PET_DECAY_PENALTY:4}
activities:
  play:
    happiness: 40
`)

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tuning.Decay.Period != 10*time.Second {
		t.Errorf("period = %v, want 10s", tuning.Decay.Period)
	}
	if tuning.Decay.Amount != 3 {
		t.Errorf("amount = %d, want 3 from env", tuning.Decay.Amount)
	}
	if tuning.Decay.Penalty != 4 {
		t.Errorf("penalty = %d, want default 4", tuning.Decay.Penalty)
	}
	if tuning.Activities.Play.Happiness != 40 {
		t.Errorf("play happiness = %d, want 40", tuning.Activities.Play.Happiness)
	}
	if tuning.Activities.Vet.Sleep != 30 {
		t.Errorf("vet sleep = %d, default should survive", tuning.Activities.Vet.Sleep)
	}
	if tuning.Accessories[record.TierGold].HappinessBonus != 30 {
		t.Errorf("gold bonus = %d, default should survive", tuning.Accessories[record.TierGold].HappinessBonus)
	}
}

func TestLoadTuningInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"zero period", "decay:\n  period: 0s\n", "period must be positive"},
		{"negative cost", "accessories:\n  gold:\n    cost: -1\n", "negative pricing"},
		{"unknown tier", "accessories:\n  platinum:\n    cost: 5\n", "unknown accessory tier"},
		{"bad yaml", "decay: [", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTuning(writeTuning(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadTuning(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
