// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package record

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddSaturating returns a+b, pinned to the int range instead of wrapping.
func AddSaturating(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}

// AddSaturating64 is AddSaturating for int64.
func AddSaturating64(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	if b < 0 && a < math.MinInt64-b {
		return math.MinInt64
	}
	return a + b
}

// addNeed adds delta to a need in [0,100]. The delta is bounded first so
// that no input can wrap.
func addNeed(v, delta int) int {
	return Clamp(v+Clamp(delta, -MaxNeed, MaxNeed), 0, MaxNeed)
}

// ApplyDecay ages a pet by one tick. Hunger, happiness and sleep drop by
// amount; if any of them reaches zero, health drops by penalty.
// Returns true if health was penalized.
func ApplyDecay(r *PetRecord, amount, penalty int) bool {
	r.Hunger = addNeed(r.Hunger, -amount)
	r.Happiness = addNeed(r.Happiness, -amount)
	r.Sleep = addNeed(r.Sleep, -amount)

	if r.Hunger == 0 || r.Happiness == 0 || r.Sleep == 0 {
		r.Health = addNeed(r.Health, -penalty)
		logrus.Debugf("decay: a need is exhausted, health now %d", r.Health)
		return true
	}
	return false
}

// AddExperience adds gained experience, converting every full
// ExperiencePerLevel into one level. Returns the number of levels gained.
// The level saturates at math.MaxInt.
func AddExperience(r *PetRecord, gained int) int {
	if gained <= 0 {
		return 0
	}
	rest := Clamp(r.Experience, 0, ExperiencePerLevel-1) + gained%ExperiencePerLevel
	levels := gained/ExperiencePerLevel + rest/ExperiencePerLevel
	r.Level = AddSaturating(r.Level, levels)
	r.Experience = rest % ExperiencePerLevel

	if levels > 0 {
		logrus.Debugf("level up: +%d to level %d", levels, r.Level)
	}
	return levels
}

// Effect is a set of need deltas applied by an activity.
type Effect struct {
	Hunger    int `yaml:"hunger"`
	Happiness int `yaml:"happiness"`
	Sleep     int `yaml:"sleep"`
	Health    int `yaml:"health"`
}

// ApplyEffect adds e to the pet's needs, clamping each to [0,100].
func ApplyEffect(r *PetRecord, e Effect) {
	r.Hunger = addNeed(r.Hunger, e.Hunger)
	r.Happiness = addNeed(r.Happiness, e.Happiness)
	r.Sleep = addNeed(r.Sleep, e.Sleep)
	r.Health = addNeed(r.Health, e.Health)
}

// Revive restores every need to full.
func Revive(r *PetRecord) {
	r.Hunger = MaxNeed
	r.Happiness = MaxNeed
	r.Sleep = MaxNeed
	r.Health = MaxNeed
}

// Mood is the presentation state derived from a pet's needs.
type Mood string

const (
	MoodDead   Mood = "dead"
	MoodSleepy Mood = "sleepy"
	MoodHungry Mood = "hungry"
	MoodAngry  Mood = "angry"
	MoodNormal Mood = "normal"
)

// Classify picks the mood of r. Exhausted health wins over sleep, sleep over
// hunger, hunger over happiness.
func Classify(r PetRecord) Mood {
	switch {
	case r.Health == 0:
		return MoodDead
	case r.Sleep == 0:
		return MoodSleepy
	case r.Hunger == 0:
		return MoodHungry
	case r.Happiness == 0:
		return MoodAngry
	}
	return MoodNormal
}
