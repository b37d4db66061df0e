package usecase

import (
	"time"

	"placewatch-service/internal/domain/entity"
)

// StatusEngine computes a place's open/closed state and staleness. Pure,
// total over well-formed input: offsets outside 0-1439 are the conversion
// layer's contract violation and are not defensively clamped here.
type StatusEngine struct {
	closingSoonWindow time.Duration
}

// NewStatusEngine creates a new status engine
func NewStatusEngine(closingSoonWindow time.Duration) *StatusEngine {
	return &StatusEngine{
		closingSoonWindow: closingSoonWindow,
	}
}

// Status resolves the schedule against now's weekday and wall-clock offset.
// A weekday with no entry is closed. ClosingSoon is only reported while the
// place is open with no more than the configured window left.
func (e *StatusEngine) Status(schedule []entity.DaySchedule, now time.Time) entity.PlaceStatus {
	today := entity.WeekdayOf(now)

	var entry entity.DaySchedule
	found := false
	for _, day := range schedule {
		if day.Weekday == today {
			entry = day
			found = true
			break
		}
	}
	if !found || entry.Closed {
		return entity.StatusClosed
	}

	currentOffset := now.Hour()*60 + now.Minute()
	if currentOffset < entry.OpenMinute || currentOffset >= entry.CloseMinute {
		return entity.StatusClosed
	}

	minutesUntilClose := entry.CloseMinute - currentOffset
	if minutesUntilClose <= int(e.closingSoonWindow.Minutes()) {
		return entity.StatusClosingSoon
	}
	return entity.StatusOpen
}

// IsStale reports whether lastUpdated is at least threshold behind now.
// Callers pick the threshold: the sync engine uses the 24h eligibility
// value, the display layer the 7d badge value.
func (e *StatusEngine) IsStale(lastUpdated, now time.Time, threshold time.Duration) bool {
	return now.Sub(lastUpdated) >= threshold
}
