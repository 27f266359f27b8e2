// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package decay

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-virtual-pet/pkg/metrics"
	"github.com/AccelByte/extend-virtual-pet/pkg/record"
	"github.com/AccelByte/extend-virtual-pet/pkg/store"
)

// Config tunes the decay rate.
type Config struct {
	Period  time.Duration `yaml:"period"`
	Amount  int           `yaml:"amount"`
	Penalty int           `yaml:"penalty"`
	// MinGap is the shortest accepted interval between two applied ticks.
	// Zero means 90% of Period.
	MinGap time.Duration `yaml:"minGap"`
}

// DefaultConfig drains 2 points per need every 5 seconds and 1 health point
// while any need is exhausted.
func DefaultConfig() Config {
	return Config{Period: 5 * time.Second, Amount: 2, Penalty: 1}
}

func (c Config) minGap() time.Duration {
	if c.MinGap > 0 {
		return c.MinGap
	}
	return c.Period * 9 / 10
}

// Committer persists a pet from the latest store state and notifies
// listeners.
type Committer interface {
	CommitPet(ctx context.Context, id record.PetID) error
}

// Outcome is what a single tick did.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeIdle      Outcome = "idle"
	OutcomeOverlap   Outcome = "overlap"
	OutcomeTooSoon   Outcome = "too-soon"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

var errUnchanged = errors.New("decay left pet unchanged")

// Scheduler ages the active pet on a fixed period.
type Scheduler struct {
	cfg    Config
	store  *store.Store
	commit Committer
	now    func() time.Time

	active   atomic.Int32
	running  atomic.Bool
	lastTick atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a stopped scheduler with no active pet.
func New(cfg Config, st *store.Store, commit Committer) *Scheduler {
	if cfg.Period <= 0 {
		cfg.Period = DefaultConfig().Period
	}
	s := &Scheduler{cfg: cfg, store: st, commit: commit, now: time.Now}
	s.active.Store(int32(record.PetNone))
	return s
}

// SelectPet makes id the pet that ticks age. PetNone pauses decay.
func (s *Scheduler) SelectPet(id record.PetID) {
	s.active.Store(int32(id))
}

// ActivePet returns the pet currently aged by ticks.
func (s *Scheduler) ActivePet() record.PetID {
	return record.PetID(s.active.Load())
}

// Start begins ticking. Calling Start on a running scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
	logrus.Infof("decay scheduler started: every %v, amount %d, penalty %d", s.cfg.Period, s.cfg.Amount, s.cfg.Penalty)
}

// Stop halts ticking and waits for an in-progress tick.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	logrus.Info("decay scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.cfg.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick performs one decay step on the active pet. Ticks that overlap a
// running tick or come sooner than the minimum gap after the last applied
// tick are skipped.
func (s *Scheduler) Tick(ctx context.Context) Outcome {
	outcome := s.tick(ctx)
	metrics.DecayTicksTotal.WithLabelValues(string(outcome)).Inc()
	return outcome
}

func (s *Scheduler) tick(ctx context.Context) Outcome {
	id := s.ActivePet()
	if !id.Valid() {
		return OutcomeIdle
	}
	if !s.running.CompareAndSwap(false, true) {
		logrus.Debug("decay tick skipped: previous tick still running")
		return OutcomeOverlap
	}
	defer s.running.Store(false)

	now := s.now()
	if last := s.lastTick.Load(); last != 0 && now.Sub(time.Unix(0, last)) < s.cfg.minGap() {
		logrus.Debug("decay tick skipped: too soon after the previous one")
		return OutcomeTooSoon
	}
	s.lastTick.Store(now.UnixNano())

	pet, err := s.store.UpdatePet(id, func(p *record.PetRecord) error {
		before := p.Clone()
		record.ApplyDecay(p, s.cfg.Amount, s.cfg.Penalty)
		if p.Equal(before) {
			return errUnchanged
		}
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return OutcomeUnchanged
	}
	if err != nil {
		logrus.Errorf("decay tick on pet %s: %v", id, err)
		return OutcomeFailed
	}
	logrus.Debugf("decay tick on pet %s: hunger=%d happiness=%d sleep=%d health=%d",
		id, pet.Hunger, pet.Happiness, pet.Sleep, pet.Health)

	if err := s.commit.CommitPet(ctx, id); err != nil {
		// The store already holds the decayed values; the next successful
		// write carries them to disk.
		logrus.Warnf("decay tick on pet %s not persisted: %v", id, err)
		return OutcomeFailed
	}
	return OutcomeApplied
}
