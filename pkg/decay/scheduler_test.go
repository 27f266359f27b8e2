// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package decay

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AccelByte/extend-virtual-pet/pkg/record"
	"github.com/AccelByte/extend-virtual-pet/pkg/store"
)

type fakeCommitter struct {
	calls atomic.Int32
	err   error
	hook  func()
}

func (f *fakeCommitter) CommitPet(context.Context, record.PetID) error {
	f.calls.Add(1)
	if f.hook != nil {
		f.hook()
	}
	return f.err
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestScheduler(pet record.PetRecord, commit Committer) (*Scheduler, *store.Store, *fakeClock) {
	st := store.DefaultState()
	st.Pets[record.PetA] = pet
	s := store.New(st)
	sched := New(DefaultConfig(), s, commit)
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	sched.now = clock.now
	return sched, s, clock
}

func TestTickDecaysActivePet(t *testing.T) {
	commit := &fakeCommitter{}
	sched, st, clock := newTestScheduler(record.PetRecord{Hunger: 50, Happiness: 50, Sleep: 50, Health: 100}, commit)

	if got := sched.Tick(context.Background()); got != OutcomeIdle {
		t.Errorf("no active pet: outcome = %s, want idle", got)
	}

	sched.SelectPet(record.PetA)
	if got := sched.Tick(context.Background()); got != OutcomeApplied {
		t.Fatalf("outcome = %s, want applied", got)
	}
	pet, _ := st.Pet(record.PetA)
	if pet.Hunger != 48 || pet.Happiness != 48 || pet.Sleep != 48 || pet.Health != 100 {
		t.Errorf("after one tick: %+v", pet)
	}
	if commit.calls.Load() != 1 {
		t.Errorf("commits = %d, want 1", commit.calls.Load())
	}

	// Other pets are untouched.
	if b, _ := st.Pet(record.PetB); !b.Equal(record.NewPetRecord()) {
		t.Errorf("pet B changed: %+v", b)
	}

	clock.t = clock.t.Add(5 * time.Second)
	sched.Tick(context.Background())
	pet, _ = st.Pet(record.PetA)
	if pet.Hunger != 46 {
		t.Errorf("hunger after two ticks = %d, want 46", pet.Hunger)
	}
}

func TestTickHealthPenaltyAndFloor(t *testing.T) {
	sched, st, _ := newTestScheduler(record.PetRecord{Hunger: 1, Happiness: 30, Sleep: 30, Health: 10}, &fakeCommitter{})
	sched.SelectPet(record.PetA)
	sched.Tick(context.Background())

	pet, _ := st.Pet(record.PetA)
	if pet.Hunger != 0 {
		t.Errorf("hunger = %d, want floor 0", pet.Hunger)
	}
	if pet.Health != 9 {
		t.Errorf("health = %d, want 9", pet.Health)
	}
}

func TestTickUnchangedDeadPet(t *testing.T) {
	commit := &fakeCommitter{}
	sched, st, _ := newTestScheduler(record.PetRecord{}, commit)
	sched.SelectPet(record.PetA)
	before := st.Version()

	if got := sched.Tick(context.Background()); got != OutcomeUnchanged {
		t.Errorf("outcome = %s, want unchanged", got)
	}
	if st.Version() != before || commit.calls.Load() != 0 {
		t.Error("unchanged tick should neither commit nor bump the version")
	}
}

func TestTickMinimumGap(t *testing.T) {
	sched, _, clock := newTestScheduler(record.NewPetRecord(), &fakeCommitter{})
	sched.SelectPet(record.PetA)

	if got := sched.Tick(context.Background()); got != OutcomeApplied {
		t.Fatalf("first tick = %s", got)
	}
	clock.t = clock.t.Add(time.Second)
	if got := sched.Tick(context.Background()); got != OutcomeTooSoon {
		t.Errorf("tick after 1s = %s, want too-soon", got)
	}
	clock.t = clock.t.Add(4 * time.Second)
	if got := sched.Tick(context.Background()); got != OutcomeApplied {
		t.Errorf("tick after 5s = %s, want applied", got)
	}
}

func TestTickOverlapSkipped(t *testing.T) {
	var inner Outcome
	commit := &fakeCommitter{}
	sched, _, clock := newTestScheduler(record.NewPetRecord(), commit)
	commit.hook = func() {
		clock.t = clock.t.Add(10 * time.Second)
		inner = sched.Tick(context.Background())
	}
	sched.SelectPet(record.PetA)

	if got := sched.Tick(context.Background()); got != OutcomeApplied {
		t.Errorf("outer tick = %s, want applied", got)
	}
	if inner != OutcomeOverlap {
		t.Errorf("inner tick = %s, want overlap", inner)
	}
}

func TestTickPersistFailureKeepsState(t *testing.T) {
	commit := &fakeCommitter{err: errors.New("disk full")}
	sched, st, _ := newTestScheduler(record.NewPetRecord(), commit)
	sched.SelectPet(record.PetA)

	if got := sched.Tick(context.Background()); got != OutcomeFailed {
		t.Errorf("outcome = %s, want failed", got)
	}
	if pet, _ := st.Pet(record.PetA); pet.Hunger != 98 {
		t.Errorf("in-memory hunger = %d, want 98", pet.Hunger)
	}
}

func TestStartStop(t *testing.T) {
	commit := &fakeCommitter{}
	st := store.New(store.DefaultState())
	sched := New(Config{Period: 10 * time.Millisecond, Amount: 1, Penalty: 1, MinGap: time.Millisecond}, st, commit)
	sched.SelectPet(record.PetB)

	sched.Start(context.Background())
	sched.Start(context.Background())
	deadline := time.Now().Add(2 * time.Second)
	for commit.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	sched.Stop()
	sched.Stop()

	if commit.calls.Load() < 2 {
		t.Fatalf("commits = %d, want at least 2", commit.calls.Load())
	}
	after := commit.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if commit.calls.Load() != after {
		t.Error("ticks continued after Stop")
	}
}
