// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/AccelByte/extend-virtual-pet/pkg/record"
)

var (
	errAlreadyOwned      = errors.New("accessory already owned")
	errInsufficientCoins = errors.New("insufficient coins")
	errNoChange          = errors.New("no change")
)

// isDeclined reports whether err only means a valid request changed nothing.
func isDeclined(err error) bool {
	return errors.Is(err, errNoChange) || errors.Is(err, errAlreadyOwned) || errors.Is(err, errInsufficientCoins)
}

// mutatePet applies fn to one pet in the store, then persists and publishes.
// When fn fails nothing is written. A persist failure is returned but the
// in-memory change stands.
func (s *Service) mutatePet(ctx context.Context, op string, id record.PetID, fn func(*record.PetRecord) error) (pet record.PetRecord, err error) {
	scope := s.begin(ctx, op)
	defer func() { s.end(scope, op, err) }()

	if !id.Valid() {
		return record.PetRecord{}, fmt.Errorf("%w: %s", ErrInvalidPet, id)
	}
	scope.SetAttributes("pet", id.String())

	pet, err = s.store.UpdatePet(id, fn)
	if err != nil {
		return pet, err
	}
	return pet, s.CommitPet(scope.Ctx, id)
}

// Feed raises hunger by amount, capped at 100.
func (s *Service) Feed(ctx context.Context, id record.PetID, amount int) (record.PetRecord, error) {
	if amount <= 0 {
		return record.PetRecord{}, fmt.Errorf("%w: feed amount %d", ErrInvalidAmount, amount)
	}
	return s.mutatePet(ctx, "Feed", id, func(p *record.PetRecord) error {
		record.ApplyEffect(p, record.Effect{Hunger: amount})
		return nil
	})
}

// Sleep raises sleep by amount, capped at 100.
func (s *Service) Sleep(ctx context.Context, id record.PetID, amount int) (record.PetRecord, error) {
	if amount <= 0 {
		return record.PetRecord{}, fmt.Errorf("%w: sleep amount %d", ErrInvalidAmount, amount)
	}
	return s.mutatePet(ctx, "Sleep", id, func(p *record.PetRecord) error {
		record.ApplyEffect(p, record.Effect{Sleep: amount})
		return nil
	})
}

func (s *Service) Play(ctx context.Context, id record.PetID) (record.PetRecord, error) {
	return s.activity(ctx, "Play", id, s.tuning.Activities.Play)
}

func (s *Service) Exercise(ctx context.Context, id record.PetID) (record.PetRecord, error) {
	return s.activity(ctx, "Exercise", id, s.tuning.Activities.Exercise)
}

func (s *Service) Vet(ctx context.Context, id record.PetID) (record.PetRecord, error) {
	return s.activity(ctx, "Vet", id, s.tuning.Activities.Vet)
}

func (s *Service) activity(ctx context.Context, op string, id record.PetID, e record.Effect) (record.PetRecord, error) {
	return s.mutatePet(ctx, op, id, func(p *record.PetRecord) error {
		record.ApplyEffect(p, e)
		return nil
	})
}

// Revive restores every need of a pet to full.
func (s *Service) Revive(ctx context.Context, id record.PetID) (record.PetRecord, error) {
	return s.mutatePet(ctx, "Revive", id, func(p *record.PetRecord) error {
		record.Revive(p)
		return nil
	})
}

// UnlockPet marks a pet slot as started.
func (s *Service) UnlockPet(ctx context.Context, id record.PetID) (record.PetRecord, error) {
	pet, err := s.mutatePet(ctx, "UnlockPet", id, func(p *record.PetRecord) error {
		if p.Unlocked {
			return errNoChange
		}
		p.Unlocked = true
		return nil
	})
	if errors.Is(err, errNoChange) {
		return pet, nil
	}
	return pet, err
}

// AwardQuizReward adds experience, leveling up every 100 points, and coins.
// Coins and level saturate instead of overflowing.
func (s *Service) AwardQuizReward(ctx context.Context, id record.PetID, experience, coins int) (record.PetRecord, error) {
	if experience < 0 || coins < 0 {
		return record.PetRecord{}, fmt.Errorf("%w: reward experience=%d coins=%d", ErrInvalidAmount, experience, coins)
	}
	return s.mutatePet(ctx, "AwardQuizReward", id, func(p *record.PetRecord) error {
		record.AddExperience(p, experience)
		p.Coins = record.AddSaturating(p.Coins, coins)
		return nil
	})
}

// AccessoryCost returns the price of an accessory.
func (s *Service) AccessoryCost(acc record.AccessoryID) (int, error) {
	if !acc.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAccessory, acc)
	}
	return s.tuning.Accessories[acc.Tier()].Cost, nil
}

// PurchaseAccessory buys acc for a pet. It returns false without charging
// when the pet cannot afford it or already owns it.
func (s *Service) PurchaseAccessory(ctx context.Context, id record.PetID, acc record.AccessoryID) (bool, error) {
	cost, err := s.AccessoryCost(acc)
	if err != nil {
		return false, err
	}

	_, err = s.mutatePet(ctx, "PurchaseAccessory", id, func(p *record.PetRecord) error {
		if p.Owned.Has(acc) {
			return errAlreadyOwned
		}
		if p.Coins < cost {
			return errInsufficientCoins
		}
		p.Coins -= cost
		p.Owned = p.Owned.With(acc)
		return nil
	})
	switch {
	case errors.Is(err, errAlreadyOwned), errors.Is(err, errInsufficientCoins):
		return false, nil
	case errors.Is(err, ErrInvariantViolation):
		return false, err
	}
	// A persist failure still leaves the purchase in memory.
	return true, err
}

// EquipAccessory wears an owned accessory and grants its tier's happiness
// bonus. AccessoryNone takes the current one off. Re-equipping the worn
// accessory changes nothing.
func (s *Service) EquipAccessory(ctx context.Context, id record.PetID, acc record.AccessoryID) (record.PetRecord, error) {
	if acc != record.AccessoryNone && !acc.Valid() {
		return record.PetRecord{}, fmt.Errorf("%w: %q", ErrUnknownAccessory, acc)
	}
	bonus := 0
	if acc != record.AccessoryNone {
		bonus = s.tuning.Accessories[acc.Tier()].HappinessBonus
	}

	pet, err := s.mutatePet(ctx, "EquipAccessory", id, func(p *record.PetRecord) error {
		if p.Equipped == acc {
			return errNoChange
		}
		if acc != record.AccessoryNone && !p.Owned.Has(acc) {
			return fmt.Errorf("%w: %s", ErrNotOwned, acc)
		}
		p.Equipped = acc
		record.ApplyEffect(p, record.Effect{Happiness: bonus})
		return nil
	})
	if errors.Is(err, errNoChange) {
		return pet, nil
	}
	return pet, err
}
