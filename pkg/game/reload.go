// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-virtual-pet/pkg/persist"
)

// Reloader returns the reload function for a watched file kind.
func (s *Service) Reloader(kind persist.Kind) (func(context.Context) error, error) {
	switch kind {
	case persist.KindPet:
		return s.ReloadPets, nil
	case persist.KindParental:
		return s.ReloadParental, nil
	case persist.KindTimeWindow:
		return s.ReloadTimeWindow, nil
	case persist.KindPlayStats:
		return s.ReloadPlayStats, nil
	}
	return nil, fmt.Errorf("no reloader for %s", kind)
}

// ReloadPets replaces the pets with the file contents. Any decode error,
// including a single bad row, leaves the store unchanged.
func (s *Service) ReloadPets(ctx context.Context) (err error) {
	scope := s.begin(ctx, "ReloadPets")
	defer func() { s.end(scope, "ReloadPets", err) }()

	pets, err := s.gateway.ReadPets(scope.Ctx)
	if err != nil {
		return err
	}
	if !s.store.ReplacePets(pets) {
		scope.TraceEvent("unchanged")
		return nil
	}
	s.bus.Publish()
	return nil
}

func (s *Service) ReloadParental(ctx context.Context) (err error) {
	scope := s.begin(ctx, "ReloadParental")
	defer func() { s.end(scope, "ReloadParental", err) }()

	flags, err := s.gateway.ReadParental(scope.Ctx)
	if err != nil {
		return err
	}
	if !s.store.ReplaceParental(flags) {
		scope.TraceEvent("unchanged")
		return nil
	}
	s.bus.Publish()
	return nil
}

func (s *Service) ReloadTimeWindow(ctx context.Context) (err error) {
	scope := s.begin(ctx, "ReloadTimeWindow")
	defer func() { s.end(scope, "ReloadTimeWindow", err) }()

	w, err := s.gateway.ReadTimeWindow(scope.Ctx)
	if err != nil {
		return err
	}
	if !s.store.ReplaceTimeWindow(w) {
		scope.TraceEvent("unchanged")
		return nil
	}
	s.bus.Publish()
	return nil
}

func (s *Service) ReloadPlayStats(ctx context.Context) (err error) {
	scope := s.begin(ctx, "ReloadPlayStats")
	defer func() { s.end(scope, "ReloadPlayStats", err) }()

	stats, err := s.gateway.ReadPlayStats(scope.Ctx)
	if err != nil {
		return err
	}
	if !s.store.ReplacePlayStats(stats) {
		scope.TraceEvent("unchanged")
		return nil
	}
	s.bus.Publish()
	return nil
}
