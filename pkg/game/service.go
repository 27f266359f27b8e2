// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-virtual-pet/pkg/common"
	"github.com/AccelByte/extend-virtual-pet/pkg/metrics"
	"github.com/AccelByte/extend-virtual-pet/pkg/notify"
	"github.com/AccelByte/extend-virtual-pet/pkg/persist"
	"github.com/AccelByte/extend-virtual-pet/pkg/record"
	"github.com/AccelByte/extend-virtual-pet/pkg/store"
)

// Gateway is the persistence the service writes through.
type Gateway interface {
	ReadPets(ctx context.Context) ([record.PetCount]record.PetRecord, error)
	WritePet(ctx context.Context, id record.PetID, pet record.PetRecord) error
	WritePets(ctx context.Context, pets [record.PetCount]record.PetRecord) error
	ReadParental(ctx context.Context) (record.ParentalFlags, error)
	WriteParental(ctx context.Context, flags record.ParentalFlags) error
	ReadTimeWindow(ctx context.Context) (record.TimeWindow, error)
	WriteTimeWindow(ctx context.Context, w record.TimeWindow) error
	ReadPlayStats(ctx context.Context) (record.PlayStats, error)
	WritePlayStats(ctx context.Context, s record.PlayStats) error
	ReadQuizBank(ctx context.Context) (*record.QuizBank, error)
}

// Disarmer is a file watcher that can be paused around bulk self-writes.
type Disarmer interface {
	Disarm() (rearm func())
}

// PetSelector receives the active pet, normally the decay scheduler.
type PetSelector interface {
	SelectPet(id record.PetID)
}

// Service is the surface the presentation layer drives. Every mutation
// updates the store under its lock, then writes the affected file from the
// latest store state and publishes a snapshot.
type Service struct {
	store    *store.Store
	gateway  Gateway
	bus      *notify.Bus
	tuning   Tuning
	selector PetSelector

	activeMu sync.RWMutex
	active   record.PetID

	// writeMu serializes writes per file so a slower writer cannot replace
	// newer content with an older copy.
	writeMu map[persist.Kind]*sync.Mutex

	watchMu   sync.RWMutex
	disarmers map[persist.Kind]Disarmer

	randMu sync.Mutex
	rand   *rand.Rand
	now    func() time.Time
}

// NewService wires the service. selector may be nil.
func NewService(st *store.Store, gw Gateway, bus *notify.Bus, tuning Tuning, selector PetSelector) *Service {
	return &Service{
		store:    st,
		gateway:  gw,
		bus:      bus,
		tuning:   tuning,
		selector: selector,
		active:   record.PetNone,
		writeMu: map[persist.Kind]*sync.Mutex{
			persist.KindPet:        {},
			persist.KindParental:   {},
			persist.KindTimeWindow: {},
			persist.KindPlayStats:  {},
		},
		disarmers: make(map[persist.Kind]Disarmer),
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// AttachSelector sets the receiver of active-pet changes.
func (s *Service) AttachSelector(sel PetSelector) {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()
	s.selector = sel
}

// AttachWatcher lets bulk writes to kind pause its watcher.
func (s *Service) AttachWatcher(kind persist.Kind, d Disarmer) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	s.disarmers[kind] = d
}

func (s *Service) disarm(kind persist.Kind) func() {
	s.watchMu.RLock()
	d := s.disarmers[kind]
	s.watchMu.RUnlock()
	if d == nil {
		return func() {}
	}
	return d.Disarm()
}

// Tuning returns the balance values in use.
func (s *Service) Tuning() Tuning {
	return s.tuning
}

// SelectActivePet sets the pet shown and aged by decay. PetNone clears it.
func (s *Service) SelectActivePet(id record.PetID) error {
	if id != record.PetNone && !id.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPet, id)
	}
	s.activeMu.Lock()
	s.active = id
	sel := s.selector
	s.activeMu.Unlock()

	if sel != nil {
		sel.SelectPet(id)
	}
	logrus.Infof("active pet: %s", id)
	return nil
}

// ActivePet returns the selected pet, or PetNone.
func (s *Service) ActivePet() record.PetID {
	s.activeMu.RLock()
	defer s.activeMu.RUnlock()
	return s.active
}

// Snapshot returns the current state.
func (s *Service) Snapshot() store.Snapshot {
	return s.store.Snapshot()
}

// Pet returns one pet record.
func (s *Service) Pet(id record.PetID) (record.PetRecord, error) {
	if !id.Valid() {
		return record.PetRecord{}, fmt.Errorf("%w: %s", ErrInvalidPet, id)
	}
	return s.store.Pet(id)
}

// Mood classifies a pet for presentation.
func (s *Service) Mood(id record.PetID) (record.Mood, error) {
	pet, err := s.Pet(id)
	if err != nil {
		return "", err
	}
	return record.Classify(pet), nil
}

func (s *Service) Subscribe(l notify.Listener) notify.Subscription {
	return s.bus.Subscribe(l)
}

func (s *Service) Unsubscribe(sub notify.Subscription) bool {
	return s.bus.Unsubscribe(sub)
}

func (s *Service) UnsubscribeAll() {
	s.bus.UnsubscribeAll()
}

// CommitPet writes one pet from the latest store state and publishes.
func (s *Service) CommitPet(ctx context.Context, id record.PetID) error {
	err := s.write(persist.KindPet, func() error {
		pet, err := s.store.Pet(id)
		if err != nil {
			return err
		}
		return s.gateway.WritePet(ctx, id, pet)
	})
	s.bus.Publish()
	return err
}

// commit writes a whole file from the latest store state and publishes.
func (s *Service) commit(ctx context.Context, kind persist.Kind) error {
	err := s.write(kind, func() error {
		snap := s.store.Snapshot()
		switch kind {
		case persist.KindPet:
			return s.gateway.WritePets(ctx, snap.Pets)
		case persist.KindParental:
			return s.gateway.WriteParental(ctx, snap.Parental)
		case persist.KindTimeWindow:
			return s.gateway.WriteTimeWindow(ctx, snap.TimeWindow)
		case persist.KindPlayStats:
			return s.gateway.WritePlayStats(ctx, snap.PlayStats)
		}
		return fmt.Errorf("no writer for %s", kind)
	})
	s.bus.Publish()
	return err
}

func (s *Service) write(kind persist.Kind, fn func() error) error {
	mu := s.writeMu[kind]
	mu.Lock()
	defer mu.Unlock()

	if err := fn(); err != nil {
		logrus.Errorf("persist %s: %v", kind, err)
		return err
	}
	return nil
}

// begin opens a traced scope for one operation.
func (s *Service) begin(ctx context.Context, op string) *common.Scope {
	return common.ChildScopeFromRemoteScope(ctx, "game."+op)
}

// end records the outcome of an operation on its scope and in metrics.
// Declined and no-op requests are recorded as ok.
func (s *Service) end(scope *common.Scope, op string, err error) {
	if isDeclined(err) {
		scope.TraceEvent(err.Error())
		err = nil
	}
	metrics.OperationsTotal.WithLabelValues(op, metrics.Result(err)).Inc()
	if err != nil {
		scope.TraceError(err)
		scope.Log.Warnf("%s failed: %v", op, err)
	}
	scope.Finish()
}
