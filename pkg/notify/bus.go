// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package notify

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-virtual-pet/pkg/metrics"
	"github.com/AccelByte/extend-virtual-pet/pkg/store"
)

// Listener receives state snapshots after every change.
type Listener interface {
	OnUpdate(snap store.Snapshot)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(snap store.Snapshot)

func (f ListenerFunc) OnUpdate(snap store.Snapshot) { f(snap) }

// Subscription identifies one registration. The zero value matches nothing.
type Subscription struct {
	id uint64
}

// SnapshotSource provides the state published to listeners.
type SnapshotSource interface {
	Snapshot() store.Snapshot
}

type entry struct {
	id       uint64
	listener Listener
}

// Bus fans out state snapshots to listeners in subscription order on a
// Dispatcher. The snapshot and listener list are captured when Publish is
// called, not when the work runs. Concurrent publishes are queued in
// snapshot order, so listeners never see a version go backwards.
type Bus struct {
	source     SnapshotSource
	dispatcher Dispatcher

	// publishMu orders snapshot capture with Dispatch.
	publishMu sync.Mutex

	mu      sync.Mutex
	nextID  uint64
	entries []entry
}

// NewBus creates a bus publishing snapshots of source on dispatcher.
func NewBus(source SnapshotSource, dispatcher Dispatcher) *Bus {
	return &Bus{source: source, dispatcher: dispatcher}
}

// Subscribe registers l. Registering the same listener twice yields two
// subscriptions.
func (b *Bus) Subscribe(l Listener) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.entries = append(b.entries, entry{id: b.nextID, listener: l})
	return Subscription{id: b.nextID}
}

// Unsubscribe removes one subscription. It reports whether it was present.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, e := range b.entries {
		if e.id == sub.id {
			b.entries = append(b.entries[:i:i], b.entries[i+1:]...)
			return true
		}
	}
	return false
}

// UnsubscribeAll removes every subscription.
func (b *Bus) UnsubscribeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}

// Len returns the number of subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Publish broadcasts the current snapshot. The dispatcher must not block in
// Dispatch.
func (b *Bus) Publish() {
	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	snap := b.source.Snapshot()

	b.mu.Lock()
	listeners := make([]Listener, len(b.entries))
	for i, e := range b.entries {
		listeners[i] = e.listener
	}
	b.mu.Unlock()

	metrics.PublishesTotal.Inc()
	if len(listeners) == 0 {
		return
	}

	b.dispatcher.Dispatch(func() {
		for _, l := range listeners {
			deliver(l, store.Snapshot{State: snap.State.Clone(), Version: snap.Version})
		}
	})
}

func deliver(l Listener, snap store.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("listener panicked on version %d: %v", snap.Version, r)
		}
	}()
	l.OnUpdate(snap)
}
