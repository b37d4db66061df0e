package entity

import "time"

// SyncRun is the journal entry for one sync batch: who triggered it, when it
// ran and the aggregate counts. Per-record results stay in memory; only this
// run-level bookkeeping is persisted.
type SyncRun struct {
	ID          uint
	Trigger     string
	Status      string
	Attempted   int
	Succeeded   int
	Failed      int
	Changed     int
	ErrorDetail string
	StartedAt   time.Time
	FinishedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
