// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/AccelByte/extend-virtual-pet/pkg/persist"
	"github.com/AccelByte/extend-virtual-pet/pkg/record"
)

const secretLength = 4

// SetParentalFlags replaces the parental-control vector.
func (s *Service) SetParentalFlags(ctx context.Context, flags record.ParentalFlags) (err error) {
	scope := s.begin(ctx, "SetParentalFlags")
	defer func() { s.end(scope, "SetParentalFlags", err) }()

	if _, err = s.store.UpdateParental(func(f *record.ParentalFlags) error {
		*f = flags
		return nil
	}); err != nil {
		return err
	}
	return s.commit(scope.Ctx, persist.KindParental)
}

// SetTimeWindow sets the allowed play hours. Both ends are in [0,24].
func (s *Service) SetTimeWindow(ctx context.Context, start, end int) (err error) {
	scope := s.begin(ctx, "SetTimeWindow")
	defer func() { s.end(scope, "SetTimeWindow", err) }()

	w := record.TimeWindow{Start: start, End: end}
	if !w.Valid() {
		return fmt.Errorf("%w: %d-%d", ErrInvalidTimeWindow, start, end)
	}
	if _, err = s.store.UpdateTimeWindow(func(tw *record.TimeWindow) error {
		*tw = w
		return nil
	}); err != nil {
		return err
	}
	return s.commit(scope.Ctx, persist.KindTimeWindow)
}

// IsPlayAllowed reports whether t falls inside the configured time window.
func (s *Service) IsPlayAllowed(t time.Time) bool {
	return s.store.TimeWindow().Allows(t)
}

// PlayAllowedNow is IsPlayAllowed for the current local time.
func (s *Service) PlayAllowedNow() bool {
	return s.IsPlayAllowed(s.now())
}

// SetSharedSecret stores the parental password on all three pets. The pet
// watcher stays disarmed for the whole-file write.
func (s *Service) SetSharedSecret(ctx context.Context, secret string) (err error) {
	scope := s.begin(ctx, "SetSharedSecret")
	defer func() { s.end(scope, "SetSharedSecret", err) }()

	if !validSecret(secret) {
		return ErrInvalidSecret
	}
	if _, err = s.store.UpdatePets(func(pets *[record.PetCount]record.PetRecord) error {
		for i := range pets {
			pets[i].SharedSecret = secret
		}
		return nil
	}); err != nil {
		return err
	}

	rearm := s.disarm(persist.KindPet)
	defer rearm()
	return s.commit(scope.Ctx, persist.KindPet)
}

// HasSharedSecret reports whether a password has been set.
func (s *Service) HasSharedSecret() bool {
	pet, err := s.store.Pet(record.PetA)
	return err == nil && pet.SharedSecret != record.SecretUnset && pet.SharedSecret != ""
}

// VerifySharedSecret compares input with the stored password.
func (s *Service) VerifySharedSecret(input string) bool {
	if !s.HasSharedSecret() {
		return false
	}
	pet, _ := s.store.Pet(record.PetA)
	return subtle.ConstantTimeCompare([]byte(pet.SharedSecret), []byte(input)) == 1
}

func validSecret(secret string) bool {
	if len(secret) != secretLength {
		return false
	}
	for _, c := range secret {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ResetPlayStatistics zeroes the play time and restarts the session count at 1.
func (s *Service) ResetPlayStatistics(ctx context.Context) error {
	return s.updatePlayStats(ctx, "ResetPlayStatistics", func(st *record.PlayStats) error {
		*st = record.PlayStats{TotalPlaySeconds: 0, SessionCount: 1}
		return nil
	})
}

// AddSessionPlayTime adds the seconds played in the current session.
func (s *Service) AddSessionPlayTime(ctx context.Context, seconds int64) error {
	if seconds < 0 {
		return fmt.Errorf("%w: play time %d", ErrInvalidAmount, seconds)
	}
	return s.updatePlayStats(ctx, "AddSessionPlayTime", func(st *record.PlayStats) error {
		st.TotalPlaySeconds = record.AddSaturating64(st.TotalPlaySeconds, seconds)
		return nil
	})
}

// IncrementSessionCountOnNewGame counts one more session.
func (s *Service) IncrementSessionCountOnNewGame(ctx context.Context) error {
	return s.updatePlayStats(ctx, "IncrementSessionCountOnNewGame", func(st *record.PlayStats) error {
		st.SessionCount = record.AddSaturating(st.SessionCount, 1)
		return nil
	})
}

func (s *Service) updatePlayStats(ctx context.Context, op string, fn func(*record.PlayStats) error) (err error) {
	scope := s.begin(ctx, op)
	defer func() { s.end(scope, op, err) }()

	if _, err = s.store.UpdatePlayStats(fn); err != nil {
		return err
	}
	return s.commit(scope.Ctx, persist.KindPlayStats)
}
