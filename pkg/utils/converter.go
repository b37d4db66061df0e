package utils

import (
	"sort"

	"placewatch-service/internal/domain/entity"
	"placewatch-service/pkg/logger"
)

// PlaceConverter turns raw directory payloads into domain schedules. It owns
// input validation: offsets outside 0-1439 and unknown day numbers never
// reach the differ or the status engine.
type PlaceConverter struct {
	logger logger.Logger
}

// NewPlaceConverter creates a new place converter
func NewPlaceConverter(logger logger.Logger) *PlaceConverter {
	return &PlaceConverter{
		logger: logger,
	}
}

// Convert maps a remote payload into a weekly schedule plus contact fields.
// Source day 0 (Sunday) maps to local weekday 1, day n (1-6) to n+1; minute
// offsets are used verbatim. Periods with a missing sub-field are dropped
// silently. At most one entry per weekday survives (first wins). The result
// is sorted by weekday ascending.
func (c *PlaceConverter) Convert(payload *entity.RemotePlacePayload) ([]entity.DaySchedule, entity.Contact) {
	contact := entity.Contact{}
	if payload == nil {
		return nil, contact
	}
	contact.Phone = payload.Phone
	contact.Website = payload.Website

	seen := make(map[entity.Weekday]bool, 7)
	schedule := make([]entity.DaySchedule, 0, len(payload.Periods))

	for _, period := range payload.Periods {
		if period.Day == nil || period.OpenMinute == nil || period.CloseMinute == nil {
			c.logger.Debug("Dropping incomplete period")
			continue
		}
		if *period.Day < 0 || *period.Day > 6 {
			c.logger.Debug("Dropping period with unknown day", "day", *period.Day)
			continue
		}
		if !ValidClockMinutes(*period.OpenMinute) || !ValidClockMinutes(*period.CloseMinute) {
			c.logger.Debug("Dropping period with out-of-range offsets",
				"open", *period.OpenMinute,
				"close", *period.CloseMinute)
			continue
		}

		weekday := entity.Weekday(*period.Day + 1)
		if seen[weekday] {
			c.logger.Debug("Dropping duplicate period", "weekday", weekday.String())
			continue
		}
		seen[weekday] = true

		schedule = append(schedule, entity.DaySchedule{
			Weekday:     weekday,
			OpenMinute:  *period.OpenMinute,
			CloseMinute: *period.CloseMinute,
		})
	}

	sort.Slice(schedule, func(i, j int) bool {
		return schedule[i].Weekday < schedule[j].Weekday
	})

	return schedule, contact
}
