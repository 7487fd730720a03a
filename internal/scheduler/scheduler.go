// Package scheduler drives the periodic metrics pass: extract for every
// channel followed by the cross-channel totals.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"channel-metrics-service/internal/metrics/core/domain"
	"channel-metrics-service/internal/worker"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type ExtractAllRunner interface {
	Execute(ctx context.Context) (map[string]*worker.Handle, error)
}

type TotalsRunner interface {
	Execute(ctx context.Context) (map[string]domain.Delivery, error)
}

// TickResult summarises one pass. Skipped is set when another instance
// held the lock.
type TickResult struct {
	Skipped        bool
	Channels       int
	FailedChannels []string
	Totals         map[string]domain.Delivery
}

type Scheduler struct {
	interval time.Duration
	lock     Locker
	extract  ExtractAllRunner
	totals   TotalsRunner
	logger   *zap.Logger
}

// New builds a scheduler. lock may be nil, in which case every tick runs.
func New(interval time.Duration, lock Locker, extract ExtractAllRunner, totals TotalsRunner, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		lock:     lock,
		extract:  extract,
		totals:   totals,
		logger:   logger,
	}
}

// Run ticks until ctx is done. A non-positive interval returns immediately.
func (s *Scheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Tick(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("metrics tick failed", zap.Error(err))
			}
		}
	}
}

// Tick runs one pass. Extract and totals run concurrently; extract waits
// for every dispatched channel task before returning.
func (s *Scheduler) Tick(ctx context.Context) (TickResult, error) {
	if s.lock != nil {
		ok, err := s.lock.Acquire(ctx)
		if err != nil {
			return TickResult{}, err
		}
		if !ok {
			s.logger.Debug("metrics tick skipped, lock held elsewhere")
			return TickResult{Skipped: true}, nil
		}
		defer func() {
			// release even if ctx was cancelled mid-tick
			relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := s.lock.Release(relCtx); err != nil {
				s.logger.Warn("failed to release tick lock", zap.Error(err))
			}
		}()
	}

	start := time.Now()
	var res TickResult

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		handles, err := s.extract.Execute(egCtx)
		if err != nil {
			return fmt.Errorf("extract all: %w", err)
		}
		res.Channels = len(handles)
		for name, h := range handles {
			if _, err := h.Wait(egCtx); err != nil {
				if egCtx.Err() != nil {
					return egCtx.Err()
				}
				s.logger.Warn("channel extract failed", zap.String("channel", name), zap.Error(err))
				res.FailedChannels = append(res.FailedChannels, name)
			}
		}
		return nil
	})
	eg.Go(func() error {
		totals, err := s.totals.Execute(egCtx)
		if err != nil {
			return fmt.Errorf("totals: %w", err)
		}
		res.Totals = totals
		return nil
	})

	if err := eg.Wait(); err != nil {
		return res, err
	}

	s.logger.Info("metrics tick done",
		zap.Int("channels", res.Channels),
		zap.Int("failed_channels", len(res.FailedChannels)),
		zap.Int("totals", len(res.Totals)),
		zap.Duration("took", time.Since(start)),
	)

	return res, nil
}
