// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mirror

import (
	"time"

	"github.com/AccelByte/extend-virtual-pet/pkg/record"
	"github.com/AccelByte/extend-virtual-pet/pkg/store"
)

// PetView is the mirrored form of one pet. The shared secret is never
// mirrored.
type PetView struct {
	ID         string   `json:"id"`
	Unlocked   bool     `json:"unlocked"`
	Hunger     int      `json:"hunger"`
	Happiness  int      `json:"happiness"`
	Sleep      int      `json:"sleep"`
	Health     int      `json:"health"`
	Experience int      `json:"experience"`
	Level      int      `json:"level"`
	Coins      int      `json:"coins"`
	Owned      []string `json:"owned"`
	Equipped   string   `json:"equipped"`
	Mood       string   `json:"mood"`
}

// SettingsView is the mirrored form of the parental settings.
type SettingsView struct {
	Subjects  map[string]bool `json:"subjects"`
	Tiers     map[string]bool `json:"tiers"`
	PlayStart int             `json:"playStart"`
	PlayEnd   int             `json:"playEnd"`
}

// SnapshotEvent is announced on the channel after every mirrored snapshot.
type SnapshotEvent struct {
	EventID     string       `json:"eventId"`
	Version     uint64       `json:"version"`
	PublishedAt time.Time    `json:"publishedAt"`
	Pets        []PetView    `json:"pets"`
	Settings    SettingsView `json:"settings"`
}

func petView(id record.PetID, p record.PetRecord) PetView {
	owned := make([]string, 0, p.Owned.Len())
	for _, acc := range p.Owned.List() {
		owned = append(owned, acc.String())
	}
	return PetView{
		ID:         id.String(),
		Unlocked:   p.Unlocked,
		Hunger:     p.Hunger,
		Happiness:  p.Happiness,
		Sleep:      p.Sleep,
		Health:     p.Health,
		Experience: p.Experience,
		Level:      p.Level,
		Coins:      p.Coins,
		Owned:      owned,
		Equipped:   p.Equipped.String(),
		Mood:       string(record.Classify(p)),
	}
}

func settingsView(s store.State) SettingsView {
	f := s.Parental
	return SettingsView{
		Subjects: map[string]bool{
			string(record.SubjectMath):      f[record.FlagMath],
			string(record.SubjectEnglish):   f[record.FlagEnglish],
			string(record.SubjectGeography): f[record.FlagGeography],
		},
		Tiers: map[string]bool{
			"2": f[record.FlagTier2],
			"4": f[record.FlagTier4],
			"6": f[record.FlagTier6],
		},
		PlayStart: s.TimeWindow.Start,
		PlayEnd:   s.TimeWindow.End,
	}
}
