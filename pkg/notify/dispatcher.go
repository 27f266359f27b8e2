// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Dispatcher runs work on the presentation context.
type Dispatcher interface {
	Dispatch(fn func())
}

// SerialDispatcher runs queued functions one at a time, in order, on a
// single goroutine. The queue is unbounded so Dispatch never blocks.
type SerialDispatcher struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []func()
	inflight int
	closed   bool
	done     chan struct{}
}

// NewSerialDispatcher starts the dispatch goroutine.
func NewSerialDispatcher() *SerialDispatcher {
	d := &SerialDispatcher{done: make(chan struct{})}
	d.cond = sync.NewCond(&d.mu)
	go d.loop()
	return d
}

// Dispatch queues fn. Work queued after Close is dropped.
func (d *SerialDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		logrus.Warn("dispatcher closed, dropping work")
		return
	}
	d.queue = append(d.queue, fn)
	d.inflight++
	d.cond.Broadcast()
}

// Sync blocks until everything queued so far has run. Calling it from
// dispatched work deadlocks.
func (d *SerialDispatcher) Sync() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for d.inflight > 0 {
		d.cond.Wait()
	}
}

// Close runs the remaining queue and stops the goroutine.
func (d *SerialDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	d.cond.Broadcast()
	d.mu.Unlock()
	<-d.done
}

func (d *SerialDispatcher) loop() {
	defer close(d.done)
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		fn := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.mu.Unlock()

		run(fn)

		d.mu.Lock()
		d.inflight--
		d.cond.Broadcast()
		d.mu.Unlock()
	}
}

func run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("dispatched work panicked: %v", r)
		}
	}()
	fn()
}
