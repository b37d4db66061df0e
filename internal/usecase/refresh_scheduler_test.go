package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placewatch-service/internal/domain/entity"
	"placewatch-service/pkg/logger"
)

type registration struct {
	notBefore time.Time
	onRun     func(ctx context.Context)
	onExpire  func()
}

type fakeTaskScheduler struct {
	registrations []registration
	deregisters   int
}

func (f *fakeTaskScheduler) Register(notBefore time.Time, onRun func(ctx context.Context), onExpire func()) {
	f.registrations = append(f.registrations, registration{notBefore: notBefore, onRun: onRun, onExpire: onExpire})
}

func (f *fakeTaskScheduler) Deregister() {
	f.deregisters++
}

func (f *fakeTaskScheduler) last() registration {
	return f.registrations[len(f.registrations)-1]
}

type fakeRunner struct {
	calls               int
	err                 error
	registrationsAtSync []int
	scheduler           *fakeTaskScheduler
}

func (f *fakeRunner) SyncAll(_ context.Context, trigger string, force bool) (*entity.BatchSummary, error) {
	f.calls++
	if f.scheduler != nil {
		f.registrationsAtSync = append(f.registrationsAtSync, len(f.scheduler.registrations))
	}
	if f.err != nil {
		return nil, f.err
	}
	return &entity.BatchSummary{Trigger: trigger}, nil
}

func TestArmRegistersFutureRun(t *testing.T) {
	scheduler := &fakeTaskScheduler{}
	refresh := NewRefreshScheduler(scheduler, &fakeRunner{}, logger.NewNopLogger())

	before := time.Now()
	refresh.Arm(12 * time.Hour)

	require.Len(t, scheduler.registrations, 1)
	assert.False(t, scheduler.last().notBefore.Before(before.Add(12*time.Hour)))
	assert.Equal(t, RefreshArmed, refresh.State())
}

func TestArmAgainLatestIntervalWins(t *testing.T) {
	scheduler := &fakeTaskScheduler{}
	refresh := NewRefreshScheduler(scheduler, &fakeRunner{}, logger.NewNopLogger())

	refresh.Arm(12 * time.Hour)
	before := time.Now()
	refresh.Arm(1 * time.Hour)

	require.Len(t, scheduler.registrations, 2)
	latest := scheduler.last()
	assert.False(t, latest.notBefore.Before(before.Add(1*time.Hour)))
	assert.True(t, latest.notBefore.Before(before.Add(2*time.Hour)))
}

func TestRunReArmsBeforeSyncWork(t *testing.T) {
	scheduler := &fakeTaskScheduler{}
	runner := &fakeRunner{scheduler: scheduler}
	refresh := NewRefreshScheduler(scheduler, runner, logger.NewNopLogger())

	refresh.Arm(time.Hour)
	scheduler.registrations[0].onRun(context.Background())

	assert.Equal(t, 1, runner.calls)
	require.Len(t, runner.registrationsAtSync, 1)
	// The second registration already existed when the sync started.
	assert.Equal(t, 2, runner.registrationsAtSync[0])
	assert.Equal(t, RefreshArmed, refresh.State())
}

func TestRunExpiryDoesNotUnarm(t *testing.T) {
	scheduler := &fakeTaskScheduler{}
	runner := &fakeRunner{scheduler: scheduler, err: ErrBatchExpired}
	refresh := NewRefreshScheduler(scheduler, runner, logger.NewNopLogger())

	refresh.Arm(time.Hour)
	scheduler.registrations[0].onRun(context.Background())

	assert.Equal(t, RefreshArmed, refresh.State())
	assert.Len(t, scheduler.registrations, 2)
}

func TestCancelDropsRegistrationAndSkipsRuns(t *testing.T) {
	scheduler := &fakeTaskScheduler{}
	runner := &fakeRunner{scheduler: scheduler}
	refresh := NewRefreshScheduler(scheduler, runner, logger.NewNopLogger())

	refresh.Arm(time.Hour)
	refresh.Cancel()

	assert.Equal(t, 1, scheduler.deregisters)
	assert.Equal(t, RefreshCancelled, refresh.State())

	// A late invocation of the already-handed-out callback does nothing.
	scheduler.registrations[0].onRun(context.Background())
	assert.Zero(t, runner.calls)
	assert.Len(t, scheduler.registrations, 1)
}

func TestArmResumesAfterCancel(t *testing.T) {
	scheduler := &fakeTaskScheduler{}
	refresh := NewRefreshScheduler(scheduler, &fakeRunner{}, logger.NewNopLogger())

	refresh.Arm(time.Hour)
	refresh.Cancel()
	refresh.Arm(time.Hour)

	assert.Equal(t, RefreshArmed, refresh.State())
	assert.Len(t, scheduler.registrations, 2)
}
