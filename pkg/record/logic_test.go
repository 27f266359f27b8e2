// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package record

import (
	"math"
	"testing"
	"time"
)

func TestApplyDecay(t *testing.T) {
	tests := []struct {
		name        string
		pet         PetRecord
		amount      int
		penalty     int
		want        PetRecord
		wantPenalty bool
	}{
		{
			name:   "normal tick",
			pet:    PetRecord{Hunger: 50, Happiness: 50, Sleep: 50, Health: 100},
			amount: 2, penalty: 1,
			want: PetRecord{Hunger: 48, Happiness: 48, Sleep: 48, Health: 100},
		},
		{
			name:   "hunger reaches zero",
			pet:    PetRecord{Hunger: 2, Happiness: 50, Sleep: 50, Health: 100},
			amount: 2, penalty: 1,
			want:        PetRecord{Hunger: 0, Happiness: 48, Sleep: 48, Health: 99},
			wantPenalty: true,
		},
		{
			name:   "floors at zero",
			pet:    PetRecord{Hunger: 1, Happiness: 0, Sleep: 1, Health: 1},
			amount: 2, penalty: 2,
			want:        PetRecord{Hunger: 0, Happiness: 0, Sleep: 0, Health: 0},
			wantPenalty: true,
		},
		{
			name:   "dead stays dead",
			pet:    PetRecord{Hunger: 0, Happiness: 0, Sleep: 0, Health: 0},
			amount: 2, penalty: 1,
			want:        PetRecord{},
			wantPenalty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pet := tt.pet
			penalized := ApplyDecay(&pet, tt.amount, tt.penalty)
			if penalized != tt.wantPenalty {
				t.Errorf("penalized = %v, want %v", penalized, tt.wantPenalty)
			}
			if !pet.Equal(tt.want) {
				t.Errorf("got %+v, want %+v", pet, tt.want)
			}
		})
	}
}

func TestAddExperience(t *testing.T) {
	tests := []struct {
		name       string
		exp, level int
		gained     int
		wantExp    int
		wantLevel  int
		wantLevels int
	}{
		{name: "no level", exp: 10, level: 1, gained: 20, wantExp: 30, wantLevel: 1},
		{name: "exact wrap", exp: 80, level: 1, gained: 20, wantExp: 0, wantLevel: 2, wantLevels: 1},
		{name: "wrap with remainder", exp: 95, level: 0, gained: 10, wantExp: 5, wantLevel: 1, wantLevels: 1},
		{name: "multiple levels", exp: 50, level: 3, gained: 260, wantExp: 10, wantLevel: 6, wantLevels: 3},
		{name: "non-positive ignored", exp: 50, level: 3, gained: -5, wantExp: 50, wantLevel: 3},
		{name: "huge gain does not wrap", exp: 50, level: 1, gained: math.MaxInt,
			wantExp: 57, wantLevel: math.MaxInt/100 + 1, wantLevels: math.MaxInt / 100},
		{name: "level saturates", exp: 0, level: math.MaxInt - 1, gained: 300,
			wantExp: 0, wantLevel: math.MaxInt, wantLevels: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pet := PetRecord{Experience: tt.exp, Level: tt.level}
			levels := AddExperience(&pet, tt.gained)
			if pet.Experience != tt.wantExp || pet.Level != tt.wantLevel || levels != tt.wantLevels {
				t.Errorf("got exp=%d level=%d levels=%d, want exp=%d level=%d levels=%d",
					pet.Experience, pet.Level, levels, tt.wantExp, tt.wantLevel, tt.wantLevels)
			}
		})
	}
}

func TestApplyEffectClamps(t *testing.T) {
	tests := []struct {
		name   string
		effect Effect
		want   PetRecord
	}{
		{
			name:   "small deltas",
			effect: Effect{Hunger: 30, Happiness: -15, Health: 30},
			want:   PetRecord{Hunger: 100, Happiness: 0, Sleep: 50, Health: 100},
		},
		{
			name:   "max int",
			effect: Effect{Hunger: math.MaxInt, Happiness: math.MaxInt, Sleep: math.MaxInt, Health: math.MaxInt},
			want:   PetRecord{Hunger: 100, Happiness: 100, Sleep: 100, Health: 100},
		},
		{
			name:   "min int",
			effect: Effect{Hunger: math.MinInt, Happiness: math.MinInt, Sleep: math.MinInt, Health: math.MinInt},
			want:   PetRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pet := PetRecord{Hunger: 90, Happiness: 10, Sleep: 50, Health: 95}
			ApplyEffect(&pet, tt.effect)
			if pet.Hunger != tt.want.Hunger || pet.Happiness != tt.want.Happiness ||
				pet.Sleep != tt.want.Sleep || pet.Health != tt.want.Health {
				t.Errorf("got %+v, want %+v", pet, tt.want)
			}
		})
	}
}

func TestAddSaturating(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{1, 2, 3},
		{math.MaxInt, 1, math.MaxInt},
		{10, math.MaxInt, math.MaxInt},
		{math.MinInt, -1, math.MinInt},
		{math.MaxInt, math.MinInt, -1},
	}
	for _, tt := range tests {
		if got := AddSaturating(tt.a, tt.b); got != tt.want {
			t.Errorf("AddSaturating(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
	if got := AddSaturating64(math.MaxInt64-5, 10); got != math.MaxInt64 {
		t.Errorf("AddSaturating64 = %d, want MaxInt64", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		pet  PetRecord
		want Mood
	}{
		{name: "dead beats all", pet: PetRecord{}, want: MoodDead},
		{name: "sleepy over hungry", pet: PetRecord{Health: 5, Sleep: 0, Hunger: 0}, want: MoodSleepy},
		{name: "hungry over angry", pet: PetRecord{Health: 5, Sleep: 5, Hunger: 0}, want: MoodHungry},
		{name: "angry", pet: PetRecord{Health: 5, Sleep: 5, Hunger: 5}, want: MoodAngry},
		{name: "normal", pet: NewPetRecord(), want: MoodNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.pet); got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTimeWindowAllows(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2025, 1, 1, hour, 30, 0, 0, time.Local)
	}

	tests := []struct {
		name   string
		window TimeWindow
		hour   int
		want   bool
	}{
		{name: "inside day window", window: TimeWindow{8, 20}, hour: 12, want: true},
		{name: "end is exclusive", window: TimeWindow{8, 20}, hour: 20, want: false},
		{name: "start is inclusive", window: TimeWindow{8, 20}, hour: 8, want: true},
		{name: "overnight late", window: TimeWindow{22, 6}, hour: 23, want: true},
		{name: "overnight early", window: TimeWindow{22, 6}, hour: 5, want: true},
		{name: "overnight midday", window: TimeWindow{22, 6}, hour: 12, want: false},
		{name: "all day", window: DefaultTimeWindow(), hour: 23, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.window.Allows(at(tt.hour)); got != tt.want {
				t.Errorf("Allows(%d) = %v, want %v", tt.hour, got, tt.want)
			}
		})
	}
}

func TestAveragePerSession(t *testing.T) {
	if got := (PlayStats{}).AveragePerSession(); got != 0 {
		t.Errorf("no sessions = %v, want 0", got)
	}
	if got := (PlayStats{TotalPlaySeconds: 600, SessionCount: 4}).AveragePerSession(); got != 150*time.Second {
		t.Errorf("average = %v, want 150s", got)
	}
}

func TestAccessorySet(t *testing.T) {
	var s AccessorySet
	s = s.With(SilverHat).With(GoldGlasses).With("bogus")
	if s.Len() != 2 || !s.Has(SilverHat) || !s.Has(GoldGlasses) || s.Has(BlackHat) {
		t.Errorf("set = %v", s.List())
	}
	s = s.Without(SilverHat)
	if s.Has(SilverHat) || s.Len() != 1 {
		t.Errorf("after remove = %v", s.List())
	}

	if GoldBowtie.Tier() != TierGold || GoldBowtie.Slot() != SlotBowtie {
		t.Errorf("goldBowtie tier/slot = %s/%s", GoldBowtie.Tier(), GoldBowtie.Slot())
	}
	if id, err := ParseAccessoryID("NONE"); err != nil || id != AccessoryNone {
		t.Errorf("ParseAccessoryID(NONE) = %q, %v", id, err)
	}
	if _, err := ParseAccessoryID("redCape"); err == nil {
		t.Error("unknown accessory should fail")
	}
}
