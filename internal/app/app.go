// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-virtual-pet/internal/bootstrap"
	"github.com/AccelByte/extend-virtual-pet/internal/config"
	"github.com/AccelByte/extend-virtual-pet/internal/server"
	"github.com/AccelByte/extend-virtual-pet/pkg/decay"
	"github.com/AccelByte/extend-virtual-pet/pkg/game"
	"github.com/AccelByte/extend-virtual-pet/pkg/mirror"
	"github.com/AccelByte/extend-virtual-pet/pkg/notify"
	"github.com/AccelByte/extend-virtual-pet/pkg/persist"
	"github.com/AccelByte/extend-virtual-pet/pkg/store"
	"github.com/AccelByte/extend-virtual-pet/pkg/watch"
)

const healthInterval = 15 * time.Second

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error

	gateway    *persist.Gateway
	store      *store.Store
	dispatcher *notify.SerialDispatcher
	service    *game.Service
	scheduler  *decay.Scheduler
	monitor    *watch.Monitor
	mirror     *mirror.Mirror

	sessionStart time.Time
}

// Service exposes the game surface to the presentation layer.
func (a *App) Service() *game.Service {
	return a.service
}

// New creates and initializes a new application instance.
//
// ============================================================
// Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Game tuning (YAML)
// 2. Persistence gateway and initial state
// 3. Store, notification bus, game service, decay scheduler
// 4. File watchers
// 5. Redis snapshot mirror (optional)
// 6. Servers (gRPC health, metrics)
// 7. Telemetry (OpenTelemetry tracing)
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Load game tuning
	// ============================================================
	tuning, err := game.LoadTuning(cfg.TuningPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tuning from %s: %w", cfg.TuningPath, err)
	}
	logrus.Infof("loaded tuning (decay every %v)", tuning.Decay.Period)

	// ============================================================
	// Step 2: Persistence and initial state
	// ============================================================
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", cfg.DataDir, err)
	}
	app.gateway = persist.NewGateway(persist.Paths{
		Dir:        cfg.DataDir,
		Pet:        cfg.PetFile,
		Parental:   cfg.ParentalFile,
		TimeWindow: cfg.TimeWindowFile,
		PlayStats:  cfg.PlayStatsFile,
		QuizBank:   cfg.QuizBankPath,
	})

	initial, err := bootstrap.LoadInitialState(ctx, app.gateway)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial state: %w", err)
	}

	// ============================================================
	// Step 3: Core components
	// ============================================================
	app.store = store.New(initial)
	app.dispatcher = notify.NewSerialDispatcher()
	bus := notify.NewBus(app.store, app.dispatcher)
	app.service = game.NewService(app.store, app.gateway, bus, tuning, nil)
	app.scheduler = decay.New(tuning.Decay, app.store, app.service)
	app.service.AttachSelector(app.scheduler)

	// ============================================================
	// Step 4: File watchers
	// ============================================================
	if cfg.WatchEnabled {
		app.monitor, err = bootstrap.InitWatchers(app.service, app.gateway, cfg.WatchDebounce)
		if err != nil {
			return nil, fmt.Errorf("failed to init file watchers: %w", err)
		}
	}

	// ============================================================
	// Step 5: Redis snapshot mirror
	// ============================================================
	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort)
	app.grpcServer.AddHealthCheck("store", func(context.Context) error {
		_, err := os.Stat(cfg.DataDir)
		return err
	})

	if cfg.RedisEnabled {
		if err := app.initRedis(ctx); err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		app.mirror = mirror.New(app.redisClient, mirror.Config{
			KeyPrefix: cfg.RedisKeyPrefix,
			Channel:   cfg.RedisChannel,
			TTL:       cfg.RedisTTL,
		})
		app.service.Subscribe(app.mirror)
		app.grpcServer.AddHealthCheck("mirror", mirror.NewHealthChecker(app.redisClient).Check)
	}

	// ============================================================
	// Step 6: Setup servers
	// ============================================================
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics", app.store)
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	// ============================================================
	// Step 7: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// initRedis initializes the Redis client.
func (a *App) initRedis(ctx context.Context) error {
	client, err := mirror.Connect(ctx, mirror.ClientOptions{
		Addr:       a.cfg.RedisHost + ":" + a.cfg.RedisPort,
		Password:   a.cfg.RedisPassword,
		MaxRetries: uint64(a.cfg.RedisMaxRetries),
	})
	if err != nil {
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}
