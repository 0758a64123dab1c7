package autosync

import (
	"context"
	"sync"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/usecase/reconcile_calendar"
)

type syncOutcome struct {
	result *reconcile_calendar.Result
	err    error
}

// Service throttles reconcile sweeps. Successive callers within the cache
// window share one result, concurrent callers collapse onto a single
// running sweep, and an optional poller keeps the table fresh without any
// traffic at all.
type Service struct {
	reconciler   Reconciler
	metrics      Metrics // nil when metrics are disabled
	cacheTTL     time.Duration
	pollInterval time.Duration
	logger       Logger

	mu             sync.Mutex
	lastResult     *reconcile_calendar.Result
	lastSyncTime   time.Time
	syncInProgress bool
	waiters        []chan syncOutcome
	pollingActive  bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewService creates the autosync service. metrics may be nil.
func NewService(reconciler Reconciler, metrics Metrics, cacheTTL, pollInterval time.Duration, logger Logger) *Service {
	return &Service{
		reconciler:   reconciler,
		metrics:      metrics,
		cacheTTL:     cacheTTL,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Sync runs a reconcile sweep, or reuses a recent one. force bypasses the
// cache but still collapses onto a sweep already in flight.
func (s *Service) Sync(ctx context.Context, force bool) (*reconcile_calendar.Result, error) {
	s.mu.Lock()

	if !force && s.lastResult != nil && time.Since(s.lastSyncTime) < s.cacheTTL {
		result := s.lastResult
		s.mu.Unlock()
		s.logger.Info("Sync: serving cached result from %s ago", time.Since(s.lastSyncTime).Round(time.Second))
		return result, nil
	}

	if s.syncInProgress {
		// Someone is already sweeping; wait for their result instead of
		// hitting the calendar twice
		ch := make(chan syncOutcome, 1)
		s.waiters = append(s.waiters, ch)
		s.mu.Unlock()

		select {
		case out := <-ch:
			return out.result, out.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.syncInProgress = true
	s.mu.Unlock()

	result, err := s.reconciler.Execute(ctx)

	s.mu.Lock()
	s.syncInProgress = false
	if err == nil {
		s.lastResult = result
		s.lastSyncTime = time.Now()
		if s.metrics != nil {
			s.metrics.ObserveReconcile(result.Cancelled)
		}
	}
	waiters := s.waiters
	s.waiters = nil
	s.mu.Unlock()

	for _, ch := range waiters {
		ch <- syncOutcome{result: result, err: err}
	}

	return result, err
}

// Stats reports the sync loop's current state.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		CacheValid:     s.lastResult != nil && time.Since(s.lastSyncTime) < s.cacheTTL,
		PollingActive:  s.pollingActive,
		SyncInProgress: s.syncInProgress,
		LastResult:     s.lastResult,
	}
	if !s.lastSyncTime.IsZero() {
		t := s.lastSyncTime
		stats.LastSyncTime = &t
	}
	return stats
}

// StartPolling launches the background sweep loop. No-op when already
// running.
func (s *Service) StartPolling() {
	s.mu.Lock()
	if s.pollingActive {
		s.mu.Unlock()
		return
	}
	s.pollingActive = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	s.logger.Info("StartPolling: reconcile poller running every %s", s.pollInterval)

	go func() {
		defer close(s.doneCh)

		sweep := func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.pollInterval)
			defer cancel()
			if _, err := s.Sync(ctx, false); err != nil {
				s.logger.Error("StartPolling: background sweep failed: %v", err)
			}
		}

		// First sweep right away; a restart must not wait a full interval
		sweep()

		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sweep()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// StopPolling stops the background loop and waits for it to exit.
func (s *Service) StopPolling() {
	s.mu.Lock()
	if !s.pollingActive {
		s.mu.Unlock()
		return
	}
	s.pollingActive = false
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
	s.logger.Info("StopPolling: reconcile poller stopped")
}
