// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package record

import (
	"fmt"
	"strings"
)

// AccessoryID identifies one of the nine wearable accessories.
// The zero value is AccessoryNone.
type AccessoryID string

const (
	AccessoryNone AccessoryID = ""

	BlackGlasses  AccessoryID = "blackGlasses"
	BlackHat      AccessoryID = "blackHat"
	BlackBowtie   AccessoryID = "blackBowtie"
	SilverGlasses AccessoryID = "silverGlasses"
	SilverHat     AccessoryID = "silverHat"
	SilverBowtie  AccessoryID = "silverBowtie"
	GoldGlasses   AccessoryID = "goldGlasses"
	GoldHat       AccessoryID = "goldHat"
	GoldBowtie    AccessoryID = "goldBowtie"
)

// Tier is the price tier of an accessory.
type Tier string

const (
	TierBlack  Tier = "black"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Slot is where an accessory is worn.
type Slot string

const (
	SlotGlasses Slot = "glasses"
	SlotHat     Slot = "hat"
	SlotBowtie  Slot = "bowtie"
)

// Accessories lists every accessory in persisted column order.
var Accessories = [...]AccessoryID{
	BlackGlasses, BlackHat, BlackBowtie,
	SilverGlasses, SilverHat, SilverBowtie,
	GoldGlasses, GoldHat, GoldBowtie,
}

// Tiers lists the accessory tiers from cheapest to most expensive.
var Tiers = [...]Tier{TierBlack, TierSilver, TierGold}

// ParseAccessoryID resolves a persisted accessory token. Empty and "none"
// resolve to AccessoryNone; matching is case-insensitive.
func ParseAccessoryID(s string) (AccessoryID, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return AccessoryNone, nil
	}
	for _, id := range Accessories {
		if strings.EqualFold(s, string(id)) {
			return id, nil
		}
	}
	return AccessoryNone, fmt.Errorf("unknown accessory %q", s)
}

// Valid reports whether id is one of the nine known accessories.
func (id AccessoryID) Valid() bool {
	return id.index() >= 0
}

// Tier returns the tier of the accessory, or "" for AccessoryNone.
func (id AccessoryID) Tier() Tier {
	i := id.index()
	if i < 0 {
		return ""
	}
	return Tiers[i/3]
}

// Slot returns where the accessory is worn, or "" for AccessoryNone.
func (id AccessoryID) Slot() Slot {
	switch i := id.index(); {
	case i < 0:
		return ""
	case i%3 == 0:
		return SlotGlasses
	case i%3 == 1:
		return SlotHat
	default:
		return SlotBowtie
	}
}

func (id AccessoryID) String() string {
	if id == AccessoryNone {
		return "none"
	}
	return string(id)
}

func (id AccessoryID) index() int {
	for i, a := range Accessories {
		if a == id {
			return i
		}
	}
	return -1
}

// AccessorySet is the set of owned accessories. It is a value type, so
// copying a PetRecord never shares ownership state.
type AccessorySet uint16

// Has reports whether id is in the set.
func (s AccessorySet) Has(id AccessoryID) bool {
	i := id.index()
	return i >= 0 && s&(1<<uint(i)) != 0
}

// With returns the set with id added. Unknown ids are ignored.
func (s AccessorySet) With(id AccessoryID) AccessorySet {
	i := id.index()
	if i < 0 {
		return s
	}
	return s | 1<<uint(i)
}

// Without returns the set with id removed.
func (s AccessorySet) Without(id AccessoryID) AccessorySet {
	i := id.index()
	if i < 0 {
		return s
	}
	return s &^ (1 << uint(i))
}

// List returns the owned accessories in column order.
func (s AccessorySet) List() []AccessoryID {
	var out []AccessoryID
	for _, id := range Accessories {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of owned accessories.
func (s AccessorySet) Len() int {
	n := 0
	for _, id := range Accessories {
		if s.Has(id) {
			n++
		}
	}
	return n
}
