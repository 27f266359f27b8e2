// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package notify

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/AccelByte/extend-virtual-pet/pkg/record"
	"github.com/AccelByte/extend-virtual-pet/pkg/store"
)

type recorder struct {
	mu   sync.Mutex
	seen []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	r.seen = append(r.seen, s)
	r.mu.Unlock()
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

func TestPublishOrderAndSnapshot(t *testing.T) {
	st := store.New(store.DefaultState())
	d := NewSerialDispatcher()
	defer d.Close()
	bus := NewBus(st, d)

	rec := &recorder{}
	var versions []uint64
	bus.Subscribe(ListenerFunc(func(snap store.Snapshot) {
		rec.add("first")
		versions = append(versions, snap.Version)
	}))
	bus.Subscribe(ListenerFunc(func(store.Snapshot) { rec.add("second") }))

	_, _ = st.UpdatePet(record.PetA, func(p *record.PetRecord) error { p.Coins = 5; return nil })
	bus.Publish()
	// A change made after Publish must not be visible to that broadcast.
	_, _ = st.UpdatePet(record.PetA, func(p *record.PetRecord) error { p.Coins = 6; return nil })
	d.Sync()

	got := rec.list()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("delivery order = %v", got)
	}
	if len(versions) != 1 || versions[0] != 1 {
		t.Errorf("versions seen = %v, want [1]", versions)
	}
}

func TestListenerListCapturedAtPublish(t *testing.T) {
	st := store.New(store.DefaultState())
	d := NewSerialDispatcher()
	defer d.Close()
	bus := NewBus(st, d)

	block := make(chan struct{})
	d.Dispatch(func() { <-block })

	var calls int32
	sub := bus.Subscribe(ListenerFunc(func(store.Snapshot) { atomic.AddInt32(&calls, 1) }))
	bus.Publish()
	bus.Unsubscribe(sub)
	bus.Subscribe(ListenerFunc(func(store.Snapshot) { t.Error("late subscriber received an earlier publish") }))
	close(block)
	d.Sync()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("listener called %d times, want 1", n)
	}
}

func TestUnsubscribe(t *testing.T) {
	st := store.New(store.DefaultState())
	d := NewSerialDispatcher()
	defer d.Close()
	bus := NewBus(st, d)

	var calls int32
	l := ListenerFunc(func(store.Snapshot) { atomic.AddInt32(&calls, 1) })
	a := bus.Subscribe(l)
	bus.Subscribe(l)

	if !bus.Unsubscribe(a) || bus.Unsubscribe(a) {
		t.Error("unsubscribe should succeed once")
	}
	if bus.Unsubscribe(Subscription{}) {
		t.Error("zero subscription should match nothing")
	}
	bus.Publish()
	d.Sync()
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}

	bus.UnsubscribeAll()
	if bus.Len() != 0 {
		t.Errorf("Len = %d after UnsubscribeAll", bus.Len())
	}
}

func TestListenerPanicIsContained(t *testing.T) {
	st := store.New(store.DefaultState())
	d := NewSerialDispatcher()
	defer d.Close()
	bus := NewBus(st, d)

	var reached int32
	bus.Subscribe(ListenerFunc(func(store.Snapshot) { panic("bad listener") }))
	bus.Subscribe(ListenerFunc(func(store.Snapshot) { atomic.StoreInt32(&reached, 1) }))

	bus.Publish()
	d.Sync()
	if atomic.LoadInt32(&reached) != 1 {
		t.Error("listener after a panicking one was not called")
	}
}

func TestSerialDispatcherNeverConcurrent(t *testing.T) {
	d := NewSerialDispatcher()

	var running, overlaps, total int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Dispatch(func() {
					if atomic.AddInt32(&running, 1) > 1 {
						atomic.AddInt32(&overlaps, 1)
					}
					atomic.AddInt32(&total, 1)
					atomic.AddInt32(&running, -1)
				})
			}
		}()
	}
	wg.Wait()
	d.Close()

	if overlaps != 0 {
		t.Errorf("%d overlapping runs", overlaps)
	}
	if total != 400 {
		t.Errorf("ran %d functions, want 400", total)
	}

	d.Dispatch(func() { t.Error("ran after Close") })
}

// slowSource yields between reading the version and returning it, widening
// the window in which publishers can interleave.
type slowSource struct {
	st *store.Store
}

func (s slowSource) Snapshot() store.Snapshot {
	snap := s.st.Snapshot()
	runtime.Gosched()
	return snap
}

func TestConcurrentPublishKeepsVersionOrder(t *testing.T) {
	st := store.New(store.DefaultState())
	d := NewSerialDispatcher()
	defer d.Close()
	bus := NewBus(slowSource{st: st}, d)

	var last uint64
	var backwards, seen int
	bus.Subscribe(ListenerFunc(func(snap store.Snapshot) {
		if snap.Version < last {
			backwards++
		}
		last = snap.Version
		seen++
	}))

	const publishers, rounds = 8, 500
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				_, _ = st.UpdatePet(record.PetA, func(p *record.PetRecord) error { p.Coins++; return nil })
				bus.Publish()
			}
		}()
	}
	wg.Wait()
	d.Sync()

	if seen != publishers*rounds {
		t.Errorf("delivered %d snapshots, want %d", seen, publishers*rounds)
	}
	if backwards != 0 {
		t.Errorf("%d snapshots arrived older than the one before", backwards)
	}
	if last != st.Version() {
		t.Errorf("last delivered version = %d, want %d", last, st.Version())
	}
}
