// Package janitor periodically removes expired refresh tokens.
package janitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"postboard/config"
	"postboard/internal/delivery"
	"postboard/internal/usecase"

	"go.uber.org/fx"
)

type janitor struct {
	interval time.Duration
	uc       usecase.AuthUsecase
	logger   *slog.Logger
	done     chan struct{}
	stopOnce sync.Once
}

// Params holds dependencies for the janitor, injected by Fx.
type Params struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	AuthUsecase usecase.AuthUsecase
}

// New returns the session janitor. A non-positive interval yields a delivery that only waits for shutdown.
func New(params Params) delivery.Delivery {
	j := newJanitor(params.Cfg.Janitor.Interval, params.AuthUsecase, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			j.stop()

			return nil
		},
	})

	return j
}

func newJanitor(interval time.Duration, uc usecase.AuthUsecase, logger *slog.Logger) *janitor {
	return &janitor{
		interval: interval,
		uc:       uc,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Serve runs a cleanup every interval until ctx is cancelled or the application stops.
func (j *janitor) Serve(ctx context.Context) error {
	if j.interval <= 0 {
		j.logger.Info("Session janitor disabled")

		select {
		case <-ctx.Done():
		case <-j.done:
		}

		return nil
	}

	j.logger.Info("Starting session janitor", slog.Duration("interval", j.interval))
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-j.done:
			return nil
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *janitor) sweep(ctx context.Context) {
	deleted, err := j.uc.CleanupExpiredSessions(ctx)
	if err != nil {
		// The next tick retries.
		j.logger.Error("Session cleanup failed", slog.Any("error", err))

		return
	}
	j.logger.Debug("Session cleanup finished", slog.Int64("deleted", deleted))
}

func (j *janitor) stop() {
	j.stopOnce.Do(func() { close(j.done) })
}
