// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-virtual-pet/pkg/record"
	"github.com/AccelByte/extend-virtual-pet/pkg/store"
)

const (
	// DefaultTTL keeps mirrored keys for a day after the last update.
	DefaultTTL = 24 * time.Hour
	// DefaultKeyPrefix is the prefix for all mirrored keys.
	DefaultKeyPrefix = "virtual_pet:"
	// DefaultChannel is where snapshot events are announced.
	DefaultChannel = "virtual_pet:snapshots"
)

// Config controls key naming and expiry.
type Config struct {
	KeyPrefix string
	Channel   string
	TTL       time.Duration
}

func (c Config) withDefaults() Config {
	if c.KeyPrefix == "" {
		c.KeyPrefix = DefaultKeyPrefix
	}
	if c.Channel == "" {
		c.Channel = DefaultChannel
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	return c
}

// Mirror copies published snapshots into Redis for companion dashboards.
// It is a notification listener: OnUpdate only hands the snapshot to the
// mirror's own goroutine, so a slow Redis never stalls delivery to other
// listeners. Snapshots that arrive while a write is in flight coalesce into
// the newest one.
type Mirror struct {
	client redis.UniversalClient
	cfg    Config

	pending chan store.Snapshot

	mu          sync.Mutex
	lastVersion uint64
	written     bool

	wg   sync.WaitGroup
	stop context.CancelFunc
}

// New creates a mirror. Call Start to begin writing.
func New(client redis.UniversalClient, cfg Config) *Mirror {
	return &Mirror{
		client:  client,
		cfg:     cfg.withDefaults(),
		pending: make(chan store.Snapshot, 1),
	}
}

// OnUpdate queues snap, replacing any snapshot not yet written.
func (m *Mirror) OnUpdate(snap store.Snapshot) {
	for {
		select {
		case m.pending <- snap:
			return
		default:
		}
		select {
		case <-m.pending:
		default:
		}
	}
}

// Start runs the write loop until ctx is done or Stop is called.
func (m *Mirror) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	m.stop = cancel
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-m.pending:
				if err := m.Write(ctx, snap); err != nil {
					logrus.Warnf("mirror snapshot %d: %v", snap.Version, err)
				}
			}
		}
	}()
	logrus.Infof("snapshot mirror started, channel %s", m.cfg.Channel)
}

// Stop ends the write loop and waits for it.
func (m *Mirror) Stop() {
	if m.stop != nil {
		m.stop()
	}
	m.wg.Wait()
}

func (m *Mirror) petKey(id record.PetID) string {
	return fmt.Sprintf("%spet:%s", m.cfg.KeyPrefix, id)
}

func (m *Mirror) settingsKey() string {
	return m.cfg.KeyPrefix + "settings"
}

func (m *Mirror) versionKey() string {
	return m.cfg.KeyPrefix + "version"
}

// Write stores snap and announces it. Snapshots older than the last one
// written are skipped.
func (m *Mirror) Write(ctx context.Context, snap store.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.written && snap.Version < m.lastVersion {
		logrus.Debugf("mirror skipping stale snapshot %d (have %d)", snap.Version, m.lastVersion)
		return nil
	}

	event := SnapshotEvent{
		EventID:     uuid.NewString(),
		Version:     snap.Version,
		PublishedAt: time.Now().UTC(),
		Settings:    settingsView(snap.State),
	}
	for _, id := range record.PetIDs {
		event.Pets = append(event.Pets, petView(id, snap.Pets[id]))
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range record.PetIDs {
			data, err := json.Marshal(event.Pets[i])
			if err != nil {
				return fmt.Errorf("failed to marshal pet %s: %w", id, err)
			}
			pipe.Set(ctx, m.petKey(id), data, m.cfg.TTL)
		}
		settings, err := json.Marshal(event.Settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		pipe.Set(ctx, m.settingsKey(), settings, m.cfg.TTL)
		pipe.Set(ctx, m.versionKey(), snap.Version, m.cfg.TTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	if err := m.client.Publish(ctx, m.cfg.Channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish snapshot event: %w", err)
	}

	m.lastVersion = snap.Version
	m.written = true
	logrus.Debugf("mirrored snapshot %d as event %s", snap.Version, event.EventID)
	return nil
}

// Pet reads a mirrored pet back. ok is false when nothing is mirrored yet.
func (m *Mirror) Pet(ctx context.Context, id record.PetID) (view PetView, ok bool, err error) {
	data, err := m.client.Get(ctx, m.petKey(id)).Result()
	if err == redis.Nil {
		return PetView{}, false, nil
	}
	if err != nil {
		return PetView{}, false, fmt.Errorf("failed to get pet %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return PetView{}, false, fmt.Errorf("failed to unmarshal pet %s: %w", id, err)
	}
	return view, true, nil
}

// Version returns the last mirrored snapshot version, or 0.
func (m *Mirror) Version(ctx context.Context) (uint64, error) {
	v, err := m.client.Get(ctx, m.versionKey()).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}
