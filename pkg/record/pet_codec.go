// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package record

import (
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Pet file column positions.
const (
	colUnlocked   = 0
	colSecret     = 1
	colHunger     = 3
	colHappiness  = 4
	colCoins      = 5
	colSleep      = 6
	colExperience = 7
	colHealth     = 8
	colLevel      = 9
	colOwnedFirst = 11
	colEquipped   = 20

	petColumns = colEquipped + 1
)

// PetHeader is written as the first line of a freshly created pet file.
const PetHeader = "Unlocked,Password,Name,Hunger,Happiness,Coins,Sleep,Experience,Health,Level,Reserved," +
	"BlackGlasses,BlackHat,BlackBowtie,SilverGlasses,SilverHat,SilverBowtie,GoldGlasses,GoldHat,GoldBowtie,Equipped"

func interpreted(col int) bool {
	switch {
	case col == colUnlocked, col == colSecret:
		return true
	case col >= colHunger && col <= colLevel:
		return true
	case col >= colOwnedFirst && col <= colEquipped:
		return true
	}
	return false
}

// DecodePet parses one pet data row. Needs outside [0,100] are clamped and an
// equipped accessory that is not owned decodes as AccessoryNone.
func DecodePet(line string) (PetRecord, error) {
	fields := SplitRow(line)
	if len(fields) == 0 {
		return PetRecord{}, &DecodeError{Kind: "pet", Column: -1, Reason: ReasonMissingRow}
	}

	d := &rowDecoder{kind: "pet", fields: fields}
	r := PetRecord{
		Unlocked:     parseBool(field(fields, colUnlocked)),
		SharedSecret: field(fields, colSecret),
		Hunger:       d.intAt(colHunger),
		Happiness:    d.intAt(colHappiness),
		Coins:        d.intAt(colCoins),
		Sleep:        d.intAt(colSleep),
		Experience:   d.intAt(colExperience),
		Health:       d.intAt(colHealth),
		Level:        d.intAt(colLevel),
	}
	if d.err != nil {
		return PetRecord{}, d.err
	}

	r.Hunger = clampLogged("hunger", r.Hunger, 0, MaxNeed)
	r.Happiness = clampLogged("happiness", r.Happiness, 0, MaxNeed)
	r.Sleep = clampLogged("sleep", r.Sleep, 0, MaxNeed)
	r.Health = clampLogged("health", r.Health, 0, MaxNeed)
	r.Experience = clampLogged("experience", r.Experience, 0, ExperiencePerLevel-1)
	r.Level = clampLogged("level", r.Level, 0, math.MaxInt)
	r.Coins = clampLogged("coins", r.Coins, 0, math.MaxInt)

	for i, id := range Accessories {
		if parseBool(field(fields, colOwnedFirst+i)) {
			r.Owned = r.Owned.With(id)
		}
	}

	equipped, err := ParseAccessoryID(field(fields, colEquipped))
	if err != nil {
		logrus.Warnf("pet row: %v, treating as none", err)
	}
	if equipped != AccessoryNone && !r.Owned.Has(equipped) {
		logrus.Warnf("pet row: equipped %s is not owned, treating as none", equipped)
		equipped = AccessoryNone
	}
	r.Equipped = equipped

	for col, v := range fields {
		if !interpreted(col) && v != "" {
			if r.Extra == nil {
				r.Extra = make(map[int]string)
			}
			r.Extra[col] = v
		}
	}

	return r, nil
}

// EncodePet renders r as a pet data row. Extra columns are written back at
// their original positions; empty uninterpreted columns are not kept.
func EncodePet(r PetRecord) string {
	width := petColumns
	for col := range r.Extra {
		if col+1 > width {
			width = col + 1
		}
	}

	fields := make([]string, width)
	for col, v := range r.Extra {
		if col >= 0 && !interpreted(col) {
			fields[col] = v
		}
	}

	fields[colUnlocked] = formatBool(r.Unlocked)
	fields[colSecret] = r.SharedSecret
	fields[colHunger] = strconv.Itoa(r.Hunger)
	fields[colHappiness] = strconv.Itoa(r.Happiness)
	fields[colCoins] = strconv.Itoa(r.Coins)
	fields[colSleep] = strconv.Itoa(r.Sleep)
	fields[colExperience] = strconv.Itoa(r.Experience)
	fields[colHealth] = strconv.Itoa(r.Health)
	fields[colLevel] = strconv.Itoa(r.Level)
	for i, id := range Accessories {
		fields[colOwnedFirst+i] = formatBool(r.Owned.Has(id))
	}
	fields[colEquipped] = r.Equipped.String()

	return JoinRow(fields)
}

func clampLogged(name string, v, lo, hi int) int {
	c := Clamp(v, lo, hi)
	if c != v {
		logrus.Warnf("pet row: %s %d out of range, clamped to %d", name, v, c)
	}
	return c
}
