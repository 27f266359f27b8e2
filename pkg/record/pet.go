// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package record

import (
	"fmt"
	"strings"
)

// PetID identifies one of the three fixed pet slots.
type PetID int

const (
	PetA PetID = iota
	PetB
	PetC
)

// PetNone means no pet is selected.
const PetNone PetID = -1

// PetCount is the number of pet slots. The pet file always holds exactly
// this many data rows, in PetID order.
const PetCount = 3

// PetIDs lists the pet slots in persisted row order.
var PetIDs = [PetCount]PetID{PetA, PetB, PetC}

// Valid reports whether id names one of the three slots.
func (id PetID) Valid() bool {
	return id >= PetA && id <= PetC
}

func (id PetID) String() string {
	switch id {
	case PetA:
		return "A"
	case PetB:
		return "B"
	case PetC:
		return "C"
	case PetNone:
		return "none"
	default:
		return fmt.Sprintf("PetID(%d)", int(id))
	}
}

// ParsePetID accepts "A", "B", "C" (any case).
func ParsePetID(s string) (PetID, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return PetA, nil
	case "B":
		return PetB, nil
	case "C":
		return PetC, nil
	}
	return PetNone, fmt.Errorf("unknown pet %q", s)
}

const (
	// MaxNeed is the upper bound of hunger, happiness, sleep and health.
	MaxNeed = 100
	// ExperiencePerLevel is where experience wraps around into a new level.
	ExperiencePerLevel = 100
	// SecretUnset is the shared secret stored before a parent picks one.
	SecretUnset = "****"
)

// PetRecord is one persisted pet.
type PetRecord struct {
	Unlocked     bool
	SharedSecret string

	Hunger    int
	Happiness int
	Sleep     int
	Health    int

	Experience int
	Level      int
	Coins      int

	Owned    AccessorySet
	Equipped AccessoryID

	// Extra holds columns the codec does not interpret, keyed by column
	// index. They are written back untouched.
	Extra map[int]string
}

// NewPetRecord returns the record used when a slot has never been saved.
func NewPetRecord() PetRecord {
	return PetRecord{
		SharedSecret: SecretUnset,
		Hunger:       MaxNeed,
		Happiness:    MaxNeed,
		Sleep:        MaxNeed,
		Health:       MaxNeed,
	}
}

// Clone returns a deep copy.
func (r PetRecord) Clone() PetRecord {
	if r.Extra != nil {
		extra := make(map[int]string, len(r.Extra))
		for k, v := range r.Extra {
			extra[k] = v
		}
		r.Extra = extra
	}
	return r
}

// Equal reports whether two records hold the same values. A nil and an empty
// Extra map compare equal.
func (r PetRecord) Equal(o PetRecord) bool {
	if r.Unlocked != o.Unlocked || r.SharedSecret != o.SharedSecret ||
		r.Hunger != o.Hunger || r.Happiness != o.Happiness ||
		r.Sleep != o.Sleep || r.Health != o.Health ||
		r.Experience != o.Experience || r.Level != o.Level || r.Coins != o.Coins ||
		r.Owned != o.Owned || r.Equipped != o.Equipped {
		return false
	}
	if len(r.Extra) != len(o.Extra) {
		return false
	}
	for k, v := range r.Extra {
		if ov, ok := o.Extra[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Dead reports whether the pet's health is exhausted.
func (r PetRecord) Dead() bool {
	return r.Health == 0
}
