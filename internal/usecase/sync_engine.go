package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"placewatch-service/internal/domain/entity"
	"placewatch-service/internal/domain/repository"
	"placewatch-service/pkg/logger"
	"placewatch-service/pkg/metrics"
	"placewatch-service/pkg/utils"
)

var (
	// ErrSyncInFlight is returned when a batch is requested while another
	// batch holds the single in-flight slot.
	ErrSyncInFlight = errors.New("sync batch already in flight")

	// ErrBatchExpired is returned when the run's execution budget ran out
	// mid-batch. Work already applied per record stands; unvisited records
	// are picked up by the next run.
	ErrBatchExpired = errors.New("sync batch abandoned: execution budget expired")
)

// SyncEngine coordinates one batch: candidate selection, throttled remote
// fetches, diffing, persistence and change notification. Per-record
// processing is sequential; one record's failure never aborts the batch.
type SyncEngine struct {
	placeRepo     repository.PlaceRepository
	directoryRepo repository.DirectoryRepository
	syncRunRepo   repository.SyncRunRepository
	notifier      *ChangeNotifier
	differ        *ScheduleDiffer
	statusEngine  *StatusEngine
	converter     *utils.PlaceConverter
	metrics       *metrics.Metrics
	logger        logger.Logger

	staleAfter    time.Duration
	fetchInterval time.Duration

	mu      sync.Mutex
	results chan entity.BatchSummary
}

// NewSyncEngine creates a new sync engine. syncRunRepo and metrics may be
// nil; journaling and instrumentation are then skipped.
func NewSyncEngine(
	placeRepo repository.PlaceRepository,
	directoryRepo repository.DirectoryRepository,
	syncRunRepo repository.SyncRunRepository,
	notifier *ChangeNotifier,
	differ *ScheduleDiffer,
	statusEngine *StatusEngine,
	converter *utils.PlaceConverter,
	metrics *metrics.Metrics,
	logger logger.Logger,
	staleAfter time.Duration,
	fetchInterval time.Duration,
) *SyncEngine {
	return &SyncEngine{
		placeRepo:     placeRepo,
		directoryRepo: directoryRepo,
		syncRunRepo:   syncRunRepo,
		notifier:      notifier,
		differ:        differ,
		statusEngine:  statusEngine,
		converter:     converter,
		metrics:       metrics,
		logger:        logger,
		staleAfter:    staleAfter,
		fetchInterval: fetchInterval,
		results:       make(chan entity.BatchSummary, 1),
	}
}

// Results exposes finished batch summaries to subscribers (the presentation
// layer). Summaries are dropped when no subscriber is ready.
func (e *SyncEngine) Results() <-chan entity.BatchSummary {
	return e.results
}

// SyncAll enumerates every stored record and runs a batch over them. A
// failure to enumerate is the only hard failure; everything after that is
// per-record. force bypasses the staleness filter (manual pull).
func (e *SyncEngine) SyncAll(ctx context.Context, trigger string, force bool) (*entity.BatchSummary, error) {
	records, err := e.placeRepo.FetchAll(ctx)
	if err != nil {
		e.countError("fetch_all")
		return nil, fmt.Errorf("failed to enumerate records: %w", err)
	}

	results, err := e.RunBatch(ctx, records, time.Now().UTC(), force, trigger)
	if err != nil && !errors.Is(err, ErrBatchExpired) {
		return nil, err
	}

	summary := entity.Summarize(trigger, results)
	return &summary, err
}

// RunBatch processes the supplied records. Records without a remote
// identifier are excluded before the loop and never appear in the results;
// with force unset, records fresher than the sync-eligibility threshold are
// excluded as well. The loop observes ctx between records and stops
// promptly once the run's budget expires.
func (e *SyncEngine) RunBatch(ctx context.Context, records []*entity.PlaceRecord, now time.Time, force bool, trigger string) ([]entity.BatchResult, error) {
	if !e.mu.TryLock() {
		e.logger.Warn("Sync batch requested while another is in flight", "trigger", trigger)
		return nil, ErrSyncInFlight
	}
	defer e.mu.Unlock()

	started := time.Now()
	candidates := e.selectCandidates(records, now, force)
	e.logger.Info("Starting sync batch",
		"trigger", trigger,
		"supplied", len(records),
		"candidates", len(candidates))

	run := e.startRun(ctx, trigger)

	// One token per fetchInterval, first token immediate: the delay sits
	// between records, never before the first.
	limiter := rate.NewLimiter(rate.Every(e.fetchInterval), 1)

	results := make([]entity.BatchResult, 0, len(candidates))
	expired := false

	for _, record := range candidates {
		if ctx.Err() != nil {
			expired = true
			break
		}
		if err := limiter.Wait(ctx); err != nil {
			expired = true
			break
		}

		results = append(results, e.syncRecord(ctx, record, now))
	}

	summary := entity.Summarize(trigger, results)
	e.finishRun(run, summary, expired)
	e.observeBatch(trigger, started)
	e.publish(summary)

	e.logger.Info("Sync batch finished",
		"trigger", trigger,
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"changed", summary.Changed,
		"expired", expired,
		"message", summary.Message())

	if expired {
		return results, ErrBatchExpired
	}
	return results, nil
}

// selectCandidates drops un-syncable records silently and, unless forced,
// records that are not yet sync-eligible.
func (e *SyncEngine) selectCandidates(records []*entity.PlaceRecord, now time.Time, force bool) []*entity.PlaceRecord {
	candidates := make([]*entity.PlaceRecord, 0, len(records))
	for _, record := range records {
		if record == nil || !record.Syncable() {
			continue
		}
		if !force && !e.statusEngine.IsStale(record.LastUpdated, now, e.staleAfter) {
			continue
		}
		candidates = append(candidates, record)
	}
	return candidates
}

// syncRecord runs the per-record pipeline: stamp lastChecked, fetch, diff,
// apply, notify. lastUpdated only advances after a confirmed save.
func (e *SyncEngine) syncRecord(ctx context.Context, record *entity.PlaceRecord, now time.Time) entity.BatchResult {
	result := entity.BatchResult{RecordID: record.ID, Attempted: true}
	log := e.logger.With("recordId", record.ID, "remoteId", record.RemoteID)

	// The attempt stamp is unconditional and precedes the remote call.
	checked := now
	record.LastChecked = &checked
	if err := e.placeRepo.Save(ctx, record); err != nil {
		log.Error("Failed to persist attempt stamp", "error", err)
		e.countError("save")
		result.FailureReason = entity.ReasonPersistenceFailed
		result.ErrorDetail = err.Error()
		return result
	}

	payload, err := e.directoryRepo.FetchPlace(ctx, record.RemoteID)
	if err != nil {
		log.Warn("Remote fetch failed", "error", err)
		e.countError("fetch")
		result.FailureReason = entity.ReasonRemoteFetchFailed
		result.ErrorDetail = err.Error()
		return result
	}

	newSchedule, newContact := e.converter.Convert(payload)
	changes := e.differ.Diff(record.Schedule, newSchedule, record.Contact, newContact)
	if e.metrics != nil {
		e.metrics.RecordsSynced.Inc()
		e.metrics.ChangesDetected.Add(float64(len(changes)))
	}

	if len(changes) == 0 {
		log.Debug("No changes detected")
		result.Succeeded = true
		return result
	}

	// Replace schedule and contact wholesale; roll back the in-memory
	// record if the write does not land.
	prevSchedule := record.Schedule
	prevContact := record.Contact
	prevUpdated := record.LastUpdated

	record.Schedule = newSchedule
	record.Contact = newContact
	record.LastUpdated = now

	if err := e.placeRepo.Save(ctx, record); err != nil {
		record.Schedule = prevSchedule
		record.Contact = prevContact
		record.LastUpdated = prevUpdated

		log.Error("Failed to persist update", "error", err)
		e.countError("save")
		result.FailureReason = entity.ReasonPersistenceFailed
		result.ErrorDetail = err.Error()
		return result
	}

	log.Info("Record updated", "changes", len(changes))
	e.notifier.Notify(ctx, changes, record.Name, record.ID)

	result.Succeeded = true
	result.ChangeCount = len(changes)
	return result
}

func (e *SyncEngine) startRun(ctx context.Context, trigger string) *entity.SyncRun {
	if e.syncRunRepo == nil {
		return nil
	}
	run := &entity.SyncRun{
		Trigger:   trigger,
		Status:    entity.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := e.syncRunRepo.Create(ctx, run); err != nil {
		e.logger.Warn("Failed to journal sync run start", "error", err)
		return nil
	}
	return run
}

func (e *SyncEngine) finishRun(run *entity.SyncRun, summary entity.BatchSummary, expired bool) {
	if run == nil || e.syncRunRepo == nil {
		return
	}

	finished := time.Now().UTC()
	run.FinishedAt = &finished
	run.Attempted = summary.Attempted
	run.Succeeded = summary.Succeeded
	run.Failed = summary.Failed
	run.Changed = summary.Changed

	switch {
	case expired:
		run.Status = entity.RunStatusExpired
		run.ErrorDetail = ErrBatchExpired.Error()
	case summary.Failed > 0 && summary.Succeeded == 0 && summary.Attempted > 0:
		run.Status = entity.RunStatusFailed
	default:
		run.Status = entity.RunStatusCompleted
	}

	// The run itself may outlive the batch context.
	if err := e.syncRunRepo.Finish(context.Background(), run); err != nil {
		e.logger.Warn("Failed to journal sync run finish", "error", err)
	}
}

func (e *SyncEngine) observeBatch(trigger string, started time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.BatchesRun.WithLabelValues(trigger).Inc()
	e.metrics.BatchDuration.Observe(time.Since(started).Seconds())
}

func (e *SyncEngine) publish(summary entity.BatchSummary) {
	select {
	case e.results <- summary:
	default:
		e.logger.Debug("No subscriber ready, dropping batch summary")
	}
}

func (e *SyncEngine) countError(operation string) {
	if e.metrics != nil {
		e.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}
