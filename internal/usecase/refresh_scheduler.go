package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"placewatch-service/internal/domain/entity"
	"placewatch-service/internal/domain/repository"
	"placewatch-service/pkg/logger"
)

// RefreshState is the scheduler's lifecycle state.
type RefreshState string

const (
	RefreshIdle      RefreshState = "idle"
	RefreshArmed     RefreshState = "armed"
	RefreshCancelled RefreshState = "cancelled"
)

// batchRunner is the slice of SyncEngine the scheduler needs.
type batchRunner interface {
	SyncAll(ctx context.Context, trigger string, force bool) (*entity.BatchSummary, error)
}

// RefreshScheduler arranges recurring background sync runs through the host
// scheduler. Every invocation re-arms the next run before any sync work, so
// a future run stays registered even when the host kills the current one.
type RefreshScheduler struct {
	scheduler repository.TaskScheduler
	runner    batchRunner
	logger    logger.Logger

	mu       sync.Mutex
	state    RefreshState
	interval time.Duration
}

// NewRefreshScheduler creates a new refresh scheduler
func NewRefreshScheduler(scheduler repository.TaskScheduler, runner batchRunner, logger logger.Logger) *RefreshScheduler {
	return &RefreshScheduler{
		scheduler: scheduler,
		runner:    runner,
		logger:    logger,
		state:     RefreshIdle,
	}
}

// Arm registers one future run no earlier than now+interval. Calling it
// again replaces the pending registration; the latest interval wins. Arm
// also resumes a cancelled scheduler.
func (r *RefreshScheduler) Arm(interval time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.interval = interval
	r.registerLocked()
	r.logger.Info("Background refresh armed", "interval", interval.String())
}

// Cancel drops any pending registration. Subsequent Arm calls resume
// normal operation.
func (r *RefreshScheduler) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scheduler.Deregister()
	r.state = RefreshCancelled
	r.logger.Info("Background refresh cancelled")
}

// State returns the current lifecycle state.
func (r *RefreshScheduler) State() RefreshState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// registerLocked must be called with r.mu held.
func (r *RefreshScheduler) registerLocked() {
	r.scheduler.Register(time.Now().Add(r.interval), r.onRun, r.onExpire)
	r.state = RefreshArmed
}

func (r *RefreshScheduler) onRun(ctx context.Context) {
	// Re-arm first: the host may expire this run at any point with no
	// further warning, and the next run must already be registered.
	r.mu.Lock()
	if r.state == RefreshCancelled {
		r.mu.Unlock()
		return
	}
	r.registerLocked()
	r.mu.Unlock()

	summary, err := r.runner.SyncAll(ctx, entity.TriggerScheduled, false)
	switch {
	case errors.Is(err, ErrBatchExpired):
		r.logger.Warn("Scheduled run expired mid-batch", "error", err)
	case errors.Is(err, ErrSyncInFlight):
		r.logger.Info("Scheduled run skipped, another batch in flight")
	case err != nil:
		r.logger.Error("Scheduled run failed", "error", err)
	default:
		r.logger.Info("Scheduled run finished", "message", summary.Message())
	}
}

func (r *RefreshScheduler) onExpire() {
	// The batch observes its context and stops between records; nothing to
	// reconcile here beyond reporting.
	r.logger.Warn("Host expired the scheduled run")
}
