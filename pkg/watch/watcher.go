// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-virtual-pet/pkg/metrics"
)

// DefaultDebounce is the quiet period after the last change event before a
// reload runs.
const DefaultDebounce = 500 * time.Millisecond

// State is the phase of a FileWatcher.
type State int32

const (
	StateArmed State = iota
	StateDebouncing
	StateReloading
)

func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateDebouncing:
		return "debouncing"
	case StateReloading:
		return "reloading"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Reloader re-reads a file into the store and publishes the result.
type Reloader func(ctx context.Context) error

// OwnWriteChecker tells whether a file still holds the process's own last
// write.
type OwnWriteChecker interface {
	IsOwnWrite(path string) bool
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) {
		w.debounce = d
	}
}

// WithOwnWriteChecker skips reloads of content this process wrote itself.
func WithOwnWriteChecker(c OwnWriteChecker) Option {
	return func(w *FileWatcher) {
		w.own = c
	}
}

// FileWatcher coalesces change events for one file into reloads. Each burst
// of events inside the debounce window produces a single reload.
type FileWatcher struct {
	path     string
	name     string
	debounce time.Duration
	reload   Reloader
	own      OwnWriteChecker

	disarmed atomic.Int32

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	state   State
	gen     uint64
	timer   *time.Timer
	pending bool
	stopped bool
	running sync.WaitGroup
}

// NewFileWatcher creates an armed watcher for path.
func NewFileWatcher(path string, reload Reloader, opts ...Option) *FileWatcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &FileWatcher{
		path:     filepath.Clean(path),
		name:     filepath.Base(path),
		debounce: DefaultDebounce,
		reload:   reload,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the watched file.
func (w *FileWatcher) Path() string {
	return w.path
}

// State returns the current phase.
func (w *FileWatcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Disarm suppresses reloads until the returned function is called. Calls
// nest: the watcher re-arms once every returned function has been called.
// Calling a returned function more than once has no further effect.
func (w *FileWatcher) Disarm() (rearm func()) {
	w.disarmed.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() {
			w.disarmed.Add(-1)
		})
	}
}

// Disarmed reports whether any Disarm is outstanding.
func (w *FileWatcher) Disarmed() bool {
	return w.disarmed.Load() > 0
}

// Observe records one change event for the file.
func (w *FileWatcher) Observe() {
	if w.Disarmed() {
		metrics.WatchEventsTotal.WithLabelValues(w.name, "suppressed").Inc()
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	metrics.WatchEventsTotal.WithLabelValues(w.name, "observed").Inc()
	switch w.state {
	case StateArmed, StateDebouncing:
		w.state = StateDebouncing
		w.scheduleLocked()
	case StateReloading:
		w.pending = true
	}
}

// scheduleLocked (re)starts the debounce timer. A timer from an earlier
// generation that has already fired finds the generation moved on and exits.
func (w *FileWatcher) scheduleLocked() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.gen++
	gen := w.gen
	w.timer = time.AfterFunc(w.debounce, func() { w.fire(gen) })
}

func (w *FileWatcher) fire(gen uint64) {
	w.mu.Lock()
	if w.stopped || gen != w.gen || w.state != StateDebouncing {
		w.mu.Unlock()
		return
	}
	if w.Disarmed() {
		w.state = StateArmed
		w.mu.Unlock()
		metrics.WatchEventsTotal.WithLabelValues(w.name, "dropped").Inc()
		logrus.Debugf("watch %s: debounce expired while disarmed, dropped", w.name)
		return
	}
	w.state = StateReloading
	w.running.Add(1)
	w.mu.Unlock()

	w.runReload()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.running.Done()
	if w.pending && !w.stopped {
		w.pending = false
		w.state = StateDebouncing
		w.scheduleLocked()
		return
	}
	w.pending = false
	w.state = StateArmed
}

func (w *FileWatcher) runReload() {
	defer func() {
		if r := recover(); r != nil {
			metrics.ReloadsTotal.WithLabelValues(w.name, "panic").Inc()
			logrus.Errorf("watch %s: reload panicked: %v", w.name, r)
		}
	}()

	if w.own != nil && w.own.IsOwnWrite(w.path) {
		metrics.WatchEventsTotal.WithLabelValues(w.name, "own-write").Inc()
		logrus.Debugf("watch %s: content is our own write, skipping reload", w.name)
		return
	}

	err := w.reload(w.ctx)
	metrics.ReloadsTotal.WithLabelValues(w.name, metrics.Result(err)).Inc()
	if err != nil {
		logrus.Warnf("watch %s: reload failed, keeping current state: %v", w.name, err)
		return
	}
	logrus.Infof("watch %s: reloaded after external change", w.name)
}

// Stop cancels any pending debounce and waits for a running reload.
func (w *FileWatcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.cancel()
	w.running.Wait()
}
