// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-virtual-pet/pkg/game"
	"github.com/AccelByte/extend-virtual-pet/pkg/persist"
	"github.com/AccelByte/extend-virtual-pet/pkg/watch"
)

// watchedKinds are the files an outside editor may change while the game
// runs.
var watchedKinds = []persist.Kind{
	persist.KindPet,
	persist.KindParental,
	persist.KindTimeWindow,
	persist.KindPlayStats,
}

// InitWatchers creates one file watcher per watched file, each with its own
// debounce state, and registers them with a monitor on the data directory.
// The service can then disarm them around bulk writes.
//
// Files outside the data directory are not watched.
func InitWatchers(svc *game.Service, gw *persist.Gateway, debounce time.Duration) (*watch.Monitor, error) {
	dir := filepath.Dir(gw.Path(persist.KindPet))
	monitor, err := watch.NewMonitor(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create file monitor: %w", err)
	}

	for _, kind := range watchedKinds {
		reload, err := svc.Reloader(kind)
		if err != nil {
			_ = monitor.Close()
			return nil, err
		}

		fw := watch.NewFileWatcher(gw.Path(kind), reload,
			watch.WithDebounce(debounce),
			watch.WithOwnWriteChecker(gw),
		)
		if err := monitor.Register(fw); err != nil {
			logrus.Warnf("not watching %s: %v", kind, err)
			continue
		}
		svc.AttachWatcher(kind, fw)
		logrus.Infof("watching %s (%s)", kind, fw.Path())
	}

	return monitor, nil
}
