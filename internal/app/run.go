// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	// Wait for shutdown signal
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	logrus.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Start launches the background workers and servers and opens a play
// session.
func (a *App) Start(ctx context.Context) error {
	if a.monitor != nil {
		a.monitor.Start(ctx)
	}
	a.scheduler.Start(ctx)
	if a.mirror != nil {
		a.mirror.Start(ctx)
	}

	if err := a.grpcServer.Start(ctx, healthInterval); err != nil {
		return err
	}
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}

	if err := a.service.IncrementSessionCountOnNewGame(ctx); err != nil {
		logrus.Warnf("failed to count session: %v", err)
	}
	a.sessionStart = time.Now()

	logrus.Info("application started successfully")
	return nil
}

// Shutdown gracefully shuts down all application components.
//
// ============================================================
// Shutdown order
// ============================================================
// 1. Stop mutation sources (file watchers, decay scheduler)
// 2. Record the session's play time
// 3. Drop listeners and drain queued notifications
// 4. Stop servers and the mirror, close Redis
// 5. Flush telemetry data
//
// Shutdown errors are logged but don't stop the sequence.
// ============================================================
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	// ============================================================
	// Step 1: Stop mutation sources
	// ============================================================
	if a.monitor != nil {
		if err := a.monitor.Close(); err != nil {
			logrus.Errorf("file monitor close error: %v", err)
		}
	}
	a.scheduler.Stop()

	// ============================================================
	// Step 2: Record play time
	// ============================================================
	if !a.sessionStart.IsZero() {
		played := int64(time.Since(a.sessionStart) / time.Second)
		if err := a.service.AddSessionPlayTime(ctx, played); err != nil {
			logrus.Errorf("failed to record play time: %v", err)
		}
	}

	// ============================================================
	// Step 3: Listeners
	// ============================================================
	a.service.UnsubscribeAll()
	a.dispatcher.Close()

	// ============================================================
	// Step 4: Servers and external connections
	// ============================================================
	if err := a.grpcServer.Shutdown(ctx); err != nil {
		logrus.Errorf("gRPC server shutdown error: %v", err)
	}
	if err := a.metricsServer.Shutdown(ctx); err != nil {
		logrus.Errorf("metrics server shutdown error: %v", err)
	}
	if a.mirror != nil {
		a.mirror.Stop()
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
	}

	// ============================================================
	// Step 5: Flush telemetry data
	// ============================================================
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
