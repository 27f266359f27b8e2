// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package persist

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-virtual-pet/pkg/metrics"
	"github.com/AccelByte/extend-virtual-pet/pkg/record"
)

// ErrMissingFile is returned when a data file does not exist.
var ErrMissingFile = errors.New("data file missing")

// Kind names one of the persisted files.
type Kind string

const (
	KindPet        Kind = "pet"
	KindParental   Kind = "parental"
	KindTimeWindow Kind = "time-window"
	KindPlayStats  Kind = "play-stats"
	KindQuizBank   Kind = "quiz"
)

// Paths locates the data files. Relative file names are resolved against Dir.
type Paths struct {
	Dir        string
	Pet        string
	Parental   string
	TimeWindow string
	PlayStats  string
	QuizBank   string
}

// DefaultPaths returns the standard file names inside dir.
func DefaultPaths(dir string) Paths {
	return Paths{
		Dir:        dir,
		Pet:        "petInfo.csv",
		Parental:   "parentalInfo.csv",
		TimeWindow: "timeInfo.csv",
		PlayStats:  "timePlay.csv",
		QuizBank:   "minigameInfo.csv",
	}
}

func (p Paths) resolve(name string) string {
	if name == "" {
		return ""
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(p.Dir, name)
	}
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return filepath.Clean(name)
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithBackOff sets the retry policy factory used for every write.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(g *Gateway) {
		g.newBackOff = newBackOff
	}
}

// Gateway reads and writes the flat data files. Every write replaces the
// whole file atomically and remembers a digest of what it wrote so that
// change notifications caused by it can be recognized.
type Gateway struct {
	paths map[Kind]string

	newBackOff func() backoff.BackOff

	// fileLocks serializes read-modify-write cycles per path.
	fileLocks map[string]*sync.Mutex

	stampMu sync.Mutex
	stamps  map[string][sha256.Size]byte

	quizOnce sync.Once
	quiz     *record.QuizBank
	quizErr  error
}

// NewGateway creates a gateway over paths.
func NewGateway(paths Paths, opts ...Option) *Gateway {
	g := &Gateway{
		paths: map[Kind]string{
			KindPet:        paths.resolve(paths.Pet),
			KindParental:   paths.resolve(paths.Parental),
			KindTimeWindow: paths.resolve(paths.TimeWindow),
			KindPlayStats:  paths.resolve(paths.PlayStats),
			KindQuizBank:   paths.resolve(paths.QuizBank),
		},
		fileLocks: make(map[string]*sync.Mutex),
		stamps:    make(map[string][sha256.Size]byte),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 20 * time.Millisecond
			b.MaxInterval = 500 * time.Millisecond
			return backoff.WithMaxRetries(b, 4)
		},
	}
	for _, path := range g.paths {
		g.fileLocks[path] = &sync.Mutex{}
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Path returns the absolute location of a file kind.
func (g *Gateway) Path(kind Kind) string {
	return g.paths[kind]
}

// IsOwnWrite reports whether the file at path currently holds exactly the
// bytes of this gateway's last write to it.
func (g *Gateway) IsOwnWrite(path string) bool {
	g.stampMu.Lock()
	stamp, ok := g.stamps[filepath.Clean(path)]
	g.stampMu.Unlock()
	if !ok {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return sha256.Sum256(data) == stamp
}

func (g *Gateway) read(ctx context.Context, kind Kind) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := g.paths[kind]
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// replaceLines rewrites a file whose first line is a header, replacing only
// the given data lines. A missing file starts from header; absent lines up to
// the highest replaced one are filled with pad.
func (g *Gateway) replaceLines(ctx context.Context, kind Kind, header, pad string, rows map[int]string) error {
	path := g.paths[kind]
	lock := g.fileLocks[path]
	lock.Lock()
	defer lock.Unlock()

	lines := []string{header}
	foreign := false
	data, err := g.read(ctx, kind)
	switch {
	case err == nil:
		if existing := record.SplitLines(data); len(existing) > 0 {
			lines = existing
		}
		foreign = !g.matchesStamp(path, data)
	case !errors.Is(err, ErrMissingFile):
		return err
	}

	for idx, line := range rows {
		for len(lines) <= idx {
			lines = append(lines, pad)
		}
		lines[idx] = line
	}

	// Lines this write keeps may carry an edit the watcher has not reloaded
	// yet. Leaving the result unstamped lets that reload happen.
	return g.writeAtomic(ctx, kind, record.JoinLines(lines), !foreign)
}

func (g *Gateway) writeWhole(ctx context.Context, kind Kind, data []byte) error {
	path := g.paths[kind]
	lock := g.fileLocks[path]
	lock.Lock()
	defer lock.Unlock()

	return g.writeAtomic(ctx, kind, data, true)
}

// writeAtomic writes data to a temp file next to the target, syncs it and
// renames it over the target, retrying with backoff. Unless stamp is set the
// result is not treated as an own write.
func (g *Gateway) writeAtomic(ctx context.Context, kind Kind, data []byte, stamp bool) error {
	path := g.paths[kind]

	attempt := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
		if err != nil {
			return err
		}
		defer func() { _ = os.Remove(tmp.Name()) }()

		if _, err := tmp.Write(data); err != nil {
			_ = tmp.Close()
			return err
		}
		if err := tmp.Sync(); err != nil {
			_ = tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}

		// Stamp before the rename so a watcher woken by it already sees
		// the new digest.
		if stamp {
			g.stamp(path, data)
		} else {
			g.forget(path)
		}
		return os.Rename(tmp.Name(), path)
	}

	notify := func(err error, wait time.Duration) {
		logrus.Warnf("write %s failed: %v, retrying in %v", path, err, wait)
	}

	err := backoff.RetryNotify(attempt, backoff.WithContext(g.newBackOff(), ctx), notify)
	metrics.FileWritesTotal.WithLabelValues(string(kind), metrics.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logrus.Debugf("wrote %s (%d bytes)", path, len(data))
	return nil
}

func (g *Gateway) matchesStamp(path string, data []byte) bool {
	g.stampMu.Lock()
	defer g.stampMu.Unlock()
	stamp, ok := g.stamps[filepath.Clean(path)]
	return ok && stamp == sha256.Sum256(data)
}

func (g *Gateway) forget(path string) {
	g.stampMu.Lock()
	delete(g.stamps, filepath.Clean(path))
	g.stampMu.Unlock()
}

func (g *Gateway) stamp(path string, data []byte) {
	g.stampMu.Lock()
	g.stamps[filepath.Clean(path)] = sha256.Sum256(data)
	g.stampMu.Unlock()
}
