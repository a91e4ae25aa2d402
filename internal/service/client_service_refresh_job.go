package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/internal/workers"
)

const (
	defaultRefreshInterval = time.Minute
	defaultRefreshLeeway   = 2 * time.Minute
)

type clientRefreshJob struct {
	refresher SessionRefresher
	interval  time.Duration
	leeway    time.Duration
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientRefreshJob creates a worker that calls refresher.RefreshIfExpiring
// on a ticker. Non-positive interval and leeway fall back to defaults. The
// job is idle until Run is called.
func NewClientRefreshJob(refresher SessionRefresher, interval, leeway time.Duration, logger *logger.Logger) workers.Worker {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if leeway <= 0 {
		leeway = defaultRefreshLeeway
	}
	return &clientRefreshJob{
		refresher: refresher,
		interval:  interval,
		leeway:    leeway,
		logger:    logger,
	}
}

// Run stops any previously running loop, then launches a goroutine that
// checks the session every interval. It exits when ctx is cancelled or Stop
// is called.
func (j *clientRefreshJob) Run(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

func (j *clientRefreshJob) tick(ctx context.Context) {
	err := j.refresher.RefreshIfExpiring(ctx, j.leeway)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case errors.Is(err, ErrSessionExpired):
		j.logger.Info().Err(err).Str("func", "clientRefreshJob.tick").Msg("session expired, signed out")
	default:
		j.logger.Warn().Err(err).Str("func", "clientRefreshJob.tick").Msg("session refresh failed, will retry")
	}
}

// Stop cancels the loop and waits for it to exit. Safe to call when the job
// is not running.
func (j *clientRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
