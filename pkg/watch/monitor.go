// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Monitor watches one directory and forwards events to the FileWatcher
// registered for the affected file name. Watching the directory rather than
// the files keeps working across rename-over writes.
type Monitor struct {
	dir     string
	watcher *fsnotify.Watcher

	mu    sync.RWMutex
	files map[string]*FileWatcher

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewMonitor starts watching dir.
func NewMonitor(dir string) (*Monitor, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := w.Add(abs); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", abs, err)
	}

	return &Monitor{
		dir:     abs,
		watcher: w,
		files:   make(map[string]*FileWatcher),
	}, nil
}

// Register routes events for fw's file to it. Files outside the monitored
// directory are rejected.
func (m *Monitor) Register(fw *FileWatcher) error {
	if filepath.Dir(fw.Path()) != m.dir {
		return fmt.Errorf("%s is not in watched directory %s", fw.Path(), m.dir)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Base(fw.Path())] = fw
	return nil
}

// Start runs the event loop until ctx is done or Close is called.
func (m *Monitor) Start(ctx context.Context) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.loop(ctx)
	}()
	logrus.Infof("watching %s", m.dir)
}

func (m *Monitor) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			m.dispatch(ev)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			logrus.Warnf("watch %s: %v", m.dir, err)
		}
	}
}

func (m *Monitor) dispatch(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}

	m.mu.RLock()
	fw, ok := m.files[filepath.Base(ev.Name)]
	m.mu.RUnlock()
	if !ok {
		return
	}

	logrus.Debugf("watch event %s", ev)
	fw.Observe()
}

// Close stops the event loop and every registered FileWatcher.
func (m *Monitor) Close() error {
	var err error
	m.stopOnce.Do(func() {
		err = m.watcher.Close()
		m.wg.Wait()

		m.mu.RLock()
		defer m.mu.RUnlock()
		for _, fw := range m.files {
			fw.Stop()
		}
	})
	return err
}
