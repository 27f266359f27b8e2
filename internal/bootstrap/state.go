// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-virtual-pet/pkg/persist"
	"github.com/AccelByte/extend-virtual-pet/pkg/record"
	"github.com/AccelByte/extend-virtual-pet/pkg/store"
)

// LoadInitialState builds the starting store state from the data files.
//
// ============================================================
// Startup rules
// ============================================================
// - A missing file is created with defaults.
// - A pet file with some bad rows keeps the good rows; bad rows
//   start from defaults and the file is left for the next write.
// - A settings file that does not decode keeps the defaults.
// - Any other read error (permissions, IO) aborts startup.
// - The quiz bank is loaded eagerly so a broken table is logged
//   once at startup, but the game runs without it.
// ============================================================
func LoadInitialState(ctx context.Context, gw *persist.Gateway) (store.State, error) {
	state := store.DefaultState()

	pets, err := gw.ReadPets(ctx)
	var partial *persist.PartialError
	switch {
	case err == nil:
		state.Pets = pets
	case errors.Is(err, persist.ErrMissingFile):
		logrus.Infof("no pet file, creating %s", gw.Path(persist.KindPet))
		if err := gw.WritePets(ctx, state.Pets); err != nil {
			return store.State{}, fmt.Errorf("failed to create pet file: %w", err)
		}
	case errors.As(err, &partial):
		for i, id := range record.PetIDs {
			if !partial.Failed(id) {
				state.Pets[i] = pets[i]
			}
		}
		logrus.Warnf("pet file partially loaded: %v", err)
	default:
		return store.State{}, fmt.Errorf("failed to read pets: %w", err)
	}

	if err := loadSetting(ctx, gw, persist.KindParental,
		func() error {
			flags, err := gw.ReadParental(ctx)
			if err == nil {
				state.Parental = flags
			}
			return err
		},
		func() error { return gw.WriteParental(ctx, state.Parental) },
	); err != nil {
		return store.State{}, err
	}

	if err := loadSetting(ctx, gw, persist.KindTimeWindow,
		func() error {
			w, err := gw.ReadTimeWindow(ctx)
			if err == nil {
				state.TimeWindow = w
			}
			return err
		},
		func() error { return gw.WriteTimeWindow(ctx, state.TimeWindow) },
	); err != nil {
		return store.State{}, err
	}

	if err := loadSetting(ctx, gw, persist.KindPlayStats,
		func() error {
			s, err := gw.ReadPlayStats(ctx)
			if err == nil {
				state.PlayStats = s
			}
			return err
		},
		func() error { return gw.WritePlayStats(ctx, state.PlayStats) },
	); err != nil {
		return store.State{}, err
	}

	if _, err := gw.ReadQuizBank(ctx); err != nil {
		logrus.Warnf("quiz bank unavailable: %v", err)
	}

	logrus.Infof("initial state loaded from %s", gw.Path(persist.KindPet))
	return state, nil
}

func loadSetting(ctx context.Context, gw *persist.Gateway, kind persist.Kind, read, create func() error) error {
	err := read()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persist.ErrMissingFile):
		logrus.Infof("no %s file, creating %s", kind, gw.Path(kind))
		if err := create(); err != nil {
			return fmt.Errorf("failed to create %s file: %w", kind, err)
		}
		return nil
	case errors.Is(err, record.ErrDecode):
		logrus.Warnf("%s file unreadable, using defaults: %v", kind, err)
		return nil
	}
	return fmt.Errorf("failed to read %s: %w", kind, err)
}
