package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"placewatch-service/pkg/logger"
)

// TimerScheduler is a timer-backed implementation of the host scheduler
// contract: one pending registration at a time, latest Register wins, and
// each run gets a bounded execution budget. When the budget runs out the
// run's context is cancelled and onExpire fires; the run callback is
// expected to observe the context between units of work.
type TimerScheduler struct {
	budget time.Duration
	logger logger.Logger

	mu    sync.Mutex
	timer *time.Timer
	gen   int
}

// NewTimerScheduler creates a new timer scheduler
func NewTimerScheduler(budget time.Duration, logger logger.Logger) *TimerScheduler {
	return &TimerScheduler{
		budget: budget,
		logger: logger,
	}
}

// Register arranges one invocation of onRun no earlier than notBefore,
// replacing any pending registration.
func (s *TimerScheduler) Register(notBefore time.Time, onRun func(ctx context.Context), onExpire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen

	delay := time.Until(notBefore)
	if delay < 0 {
		delay = 0
	}

	s.timer = time.AfterFunc(delay, func() {
		s.fire(gen, onRun, onExpire)
	})

	s.logger.Debug("Run registered", "notBefore", notBefore, "budget", s.budget.String())
}

// Deregister drops any pending registration. A run already in progress is
// not interrupted.
func (s *TimerScheduler) Deregister() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *TimerScheduler) fire(gen int, onRun func(ctx context.Context), onExpire func()) {
	s.mu.Lock()
	if gen != s.gen {
		// Superseded or deregistered after the timer fired.
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.budget)

	stop := context.AfterFunc(ctx, func() {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			s.logger.Warn("Execution budget exhausted, expiring run")
			onExpire()
		}
	})

	onRun(ctx)

	stop()
	cancel()
}
