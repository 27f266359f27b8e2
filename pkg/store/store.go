// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-virtual-pet/pkg/record"
)

// ErrUnknownPet is returned for a PetID outside the three slots.
var ErrUnknownPet = errors.New("unknown pet")

// State is everything the store holds.
type State struct {
	Pets       [record.PetCount]record.PetRecord
	Parental   record.ParentalFlags
	TimeWindow record.TimeWindow
	PlayStats  record.PlayStats
}

// DefaultState is the state of a fresh installation.
func DefaultState() State {
	s := State{
		Parental:   record.DefaultParentalFlags(),
		TimeWindow: record.DefaultTimeWindow(),
	}
	for i := range s.Pets {
		s.Pets[i] = record.NewPetRecord()
	}
	return s
}

// Clone returns a deep copy.
func (s State) Clone() State {
	for i := range s.Pets {
		s.Pets[i] = s.Pets[i].Clone()
	}
	return s
}

// Snapshot is a point-in-time copy of the store, tagged with the version it
// was taken at.
type Snapshot struct {
	State
	Version uint64
}

// Store is the authoritative in-memory state. One mutex guards all of it;
// reads hand out copies and updates are all-or-nothing.
type Store struct {
	mu      sync.Mutex
	state   State
	version uint64
}

// New creates a store holding initial.
func New(initial State) *Store {
	return &Store{state: initial.Clone()}
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state.Clone(), Version: s.version}
}

// Version returns the number of commits so far.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Pet returns a copy of one pet record.
func (s *Store) Pet(id record.PetID) (record.PetRecord, error) {
	if !id.Valid() {
		return record.PetRecord{}, fmt.Errorf("%w: %s", ErrUnknownPet, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Pets[id].Clone(), nil
}

// Pets returns copies of all pet records.
func (s *Store) Pets() [record.PetCount]record.PetRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone().Pets
}

func (s *Store) Parental() record.ParentalFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Parental
}

func (s *Store) TimeWindow() record.TimeWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TimeWindow
}

func (s *Store) PlayStats() record.PlayStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PlayStats
}

// Update runs fn on a working copy of the state while holding the lock.
// The copy replaces the state only if fn returns nil; otherwise nothing
// changes. fn must not call back into the store.
func (s *Store) Update(fn func(*State) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.Clone()
	if err := fn(&working); err != nil {
		return Snapshot{State: s.state.Clone(), Version: s.version}, err
	}

	s.state = working
	s.version++
	return Snapshot{State: s.state.Clone(), Version: s.version}, nil
}

// UpdatePet applies fn to one pet and returns the committed record.
func (s *Store) UpdatePet(id record.PetID, fn func(*record.PetRecord) error) (record.PetRecord, error) {
	if !id.Valid() {
		return record.PetRecord{}, fmt.Errorf("%w: %s", ErrUnknownPet, id)
	}
	snap, err := s.Update(func(st *State) error {
		return fn(&st.Pets[id])
	})
	return snap.Pets[id], err
}

// UpdatePets applies fn to all three pets at once.
func (s *Store) UpdatePets(fn func(*[record.PetCount]record.PetRecord) error) ([record.PetCount]record.PetRecord, error) {
	snap, err := s.Update(func(st *State) error {
		return fn(&st.Pets)
	})
	return snap.Pets, err
}

func (s *Store) UpdateParental(fn func(*record.ParentalFlags) error) (record.ParentalFlags, error) {
	snap, err := s.Update(func(st *State) error {
		return fn(&st.Parental)
	})
	return snap.Parental, err
}

func (s *Store) UpdateTimeWindow(fn func(*record.TimeWindow) error) (record.TimeWindow, error) {
	snap, err := s.Update(func(st *State) error {
		return fn(&st.TimeWindow)
	})
	return snap.TimeWindow, err
}

func (s *Store) UpdatePlayStats(fn func(*record.PlayStats) error) (record.PlayStats, error) {
	snap, err := s.Update(func(st *State) error {
		return fn(&st.PlayStats)
	})
	return snap.PlayStats, err
}

// ReplacePets installs reloaded pet records. It reports whether anything
// differed from the held records; an identical reload is not a commit.
func (s *Store) ReplacePets(pets [record.PetCount]record.PetRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for i := range pets {
		if !s.state.Pets[i].Equal(pets[i]) {
			s.state.Pets[i] = pets[i].Clone()
			changed = true
		}
	}
	if changed {
		s.version++
		logrus.Debugf("store: pets replaced, version %d", s.version)
	}
	return changed
}

func (s *Store) ReplaceParental(flags record.ParentalFlags) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Parental == flags {
		return false
	}
	s.state.Parental = flags
	s.version++
	return true
}

func (s *Store) ReplaceTimeWindow(w record.TimeWindow) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.TimeWindow == w {
		return false
	}
	s.state.TimeWindow = w
	s.version++
	return true
}

func (s *Store) ReplacePlayStats(stats record.PlayStats) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.PlayStats == stats {
		return false
	}
	s.state.PlayStats = stats
	s.version++
	return true
}
