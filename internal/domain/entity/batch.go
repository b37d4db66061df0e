package entity

import "fmt"

// Per-record failure reasons
const (
	ReasonRemoteFetchFailed = "REMOTE_FETCH_FAILED"
	ReasonPersistenceFailed = "PERSISTENCE_FAILED"
)

// Sync run status
const (
	RunStatusRunning   = "RUNNING"
	RunStatusCompleted = "COMPLETED"
	RunStatusExpired   = "EXPIRED"
	RunStatusFailed    = "FAILED"
)

// Sync trigger kinds
const (
	TriggerManual    = "manual"
	TriggerColdStart = "cold_start"
	TriggerScheduled = "scheduled"
)

// BatchResult is the per-record outcome of one sync batch. It is aggregated
// into a BatchSummary for caller reporting and never persisted.
type BatchResult struct {
	RecordID      string
	Attempted     bool
	Succeeded     bool
	ChangeCount   int
	FailureReason string
	ErrorDetail   string
}

// BatchSummary aggregates a batch's per-record outcomes.
type BatchSummary struct {
	Trigger   string
	Attempted int
	Succeeded int
	Failed    int
	Changed   int
}

// Message renders the user-facing outcome line for a batch. Individual fetch
// failures are never surfaced per-record, only through these counts.
func (s BatchSummary) Message() string {
	switch {
	case s.Failed > 0:
		return fmt.Sprintf("Updated %d of %d", s.Succeeded, s.Attempted)
	case s.Changed > 0:
		return fmt.Sprintf("%d updated", s.Changed)
	default:
		return "Everything up to date"
	}
}

// Summarize folds per-record results into aggregate counts.
func Summarize(trigger string, results []BatchResult) BatchSummary {
	summary := BatchSummary{Trigger: trigger}
	for _, r := range results {
		if !r.Attempted {
			continue
		}
		summary.Attempted++
		if r.Succeeded {
			summary.Succeeded++
			if r.ChangeCount > 0 {
				summary.Changed++
			}
		} else {
			summary.Failed++
		}
	}
	return summary
}
