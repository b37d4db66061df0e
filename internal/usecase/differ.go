package usecase

import (
	"placewatch-service/internal/domain/entity"
	"placewatch-service/pkg/utils"
)

// ScheduleDiffer compares two weekly schedules plus contact fields and
// produces an ordered list of typed changes. Pure and deterministic: no
// I/O, no state, never fails.
type ScheduleDiffer struct{}

// NewScheduleDiffer creates a new schedule differ
func NewScheduleDiffer() *ScheduleDiffer {
	return &ScheduleDiffer{}
}

// Diff emits changes in weekday-ascending order, then contact changes with
// phone before website. A weekday present in the old schedule but dropped
// from the new one counts as an implicit closure.
func (d *ScheduleDiffer) Diff(oldSchedule, newSchedule []entity.DaySchedule, oldContact, newContact entity.Contact) []entity.Change {
	oldByDay := indexByWeekday(oldSchedule)
	newByDay := indexByWeekday(newSchedule)

	var changes []entity.Change

	for day := entity.Sunday; day <= entity.Saturday; day++ {
		oldEntry, hadOld := oldByDay[day]
		newEntry, hasNew := newByDay[day]

		switch {
		case !hasNew:
			// Dropped from the source entirely: implicit closure, but only
			// if the day was actually open before.
			if hadOld && !oldEntry.Closed {
				changes = append(changes, entity.Change{Kind: entity.DayClosed, Weekday: day})
			}

		case newEntry.Closed:
			if hadOld && !oldEntry.Closed {
				changes = append(changes, entity.Change{Kind: entity.DayClosed, Weekday: day})
			}

		case !hadOld || oldEntry.Closed:
			changes = append(changes, entity.Change{
				Kind:      entity.DayOpened,
				Weekday:   day,
				NewWindow: utils.FormatWindow(newEntry.OpenMinute, newEntry.CloseMinute),
			})

		case oldEntry.OpenMinute != newEntry.OpenMinute || oldEntry.CloseMinute != newEntry.CloseMinute:
			changes = append(changes, entity.Change{
				Kind:      entity.HoursChanged,
				Weekday:   day,
				OldWindow: utils.FormatWindow(oldEntry.OpenMinute, oldEntry.CloseMinute),
				NewWindow: utils.FormatWindow(newEntry.OpenMinute, newEntry.CloseMinute),
			})
		}
	}

	if !equalValue(oldContact.Phone, newContact.Phone) {
		changes = append(changes, entity.Change{
			Kind:     entity.ContactChanged,
			Field:    entity.FieldPhone,
			OldValue: oldContact.Phone,
			NewValue: newContact.Phone,
		})
	}
	if !equalValue(oldContact.Website, newContact.Website) {
		changes = append(changes, entity.Change{
			Kind:     entity.ContactChanged,
			Field:    entity.FieldWebsite,
			OldValue: oldContact.Website,
			NewValue: newContact.Website,
		})
	}

	return changes
}

func indexByWeekday(schedule []entity.DaySchedule) map[entity.Weekday]entity.DaySchedule {
	byDay := make(map[entity.Weekday]entity.DaySchedule, len(schedule))
	for _, entry := range schedule {
		byDay[entry.Weekday] = entry
	}
	return byDay
}

func equalValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
