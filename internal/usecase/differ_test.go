package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placewatch-service/internal/domain/entity"
)

func strPtr(s string) *string {
	return &s
}

func day(w entity.Weekday, open, close int) entity.DaySchedule {
	return entity.DaySchedule{Weekday: w, OpenMinute: open, CloseMinute: close}
}

func closedDay(w entity.Weekday) entity.DaySchedule {
	return entity.DaySchedule{Weekday: w, Closed: true}
}

func TestDiffIdenticalSchedulesIsEmpty(t *testing.T) {
	differ := NewScheduleDiffer()

	schedule := []entity.DaySchedule{
		day(entity.Monday, 540, 1020),
		day(entity.Tuesday, 540, 1020),
		closedDay(entity.Sunday),
	}
	contact := entity.Contact{Phone: strPtr("+1 555 0100")}

	changes := differ.Diff(schedule, schedule, contact, contact)
	assert.Empty(t, changes)
}

func TestDiffSingleCloseOffsetChange(t *testing.T) {
	differ := NewScheduleDiffer()

	oldSchedule := []entity.DaySchedule{day(entity.Monday, 540, 1020)}
	newSchedule := []entity.DaySchedule{day(entity.Monday, 540, 1080)}

	changes := differ.Diff(oldSchedule, newSchedule, entity.Contact{}, entity.Contact{})
	require.Len(t, changes, 1)
	assert.Equal(t, entity.HoursChanged, changes[0].Kind)
	assert.Equal(t, entity.Monday, changes[0].Weekday)
	assert.Equal(t, "9:00 AM-5:00 PM", changes[0].OldWindow)
	assert.Equal(t, "9:00 AM-6:00 PM", changes[0].NewWindow)
}

func TestDiffDayDroppedFromSourceIsImplicitClosure(t *testing.T) {
	differ := NewScheduleDiffer()

	oldSchedule := []entity.DaySchedule{day(entity.Sunday, 600, 960)}

	changes := differ.Diff(oldSchedule, nil, entity.Contact{}, entity.Contact{})
	require.Len(t, changes, 1)
	assert.Equal(t, entity.DayClosed, changes[0].Kind)
	assert.Equal(t, entity.Sunday, changes[0].Weekday)
}

func TestDiffClosedDayDroppedEmitsNothing(t *testing.T) {
	differ := NewScheduleDiffer()

	oldSchedule := []entity.DaySchedule{closedDay(entity.Sunday)}

	changes := differ.Diff(oldSchedule, nil, entity.Contact{}, entity.Contact{})
	assert.Empty(t, changes)
}

func TestDiffDayOpened(t *testing.T) {
	differ := NewScheduleDiffer()

	tests := []struct {
		name string
		old  []entity.DaySchedule
	}{
		{name: "absent before", old: nil},
		{name: "closed before", old: []entity.DaySchedule{closedDay(entity.Saturday)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newSchedule := []entity.DaySchedule{day(entity.Saturday, 600, 840)}

			changes := differ.Diff(tt.old, newSchedule, entity.Contact{}, entity.Contact{})
			require.Len(t, changes, 1)
			assert.Equal(t, entity.DayOpened, changes[0].Kind)
			assert.Equal(t, entity.Saturday, changes[0].Weekday)
			assert.Equal(t, "10:00 AM-2:00 PM", changes[0].NewWindow)
		})
	}
}

func TestDiffOpenToClosedFlag(t *testing.T) {
	differ := NewScheduleDiffer()

	oldSchedule := []entity.DaySchedule{day(entity.Friday, 540, 1020)}
	newSchedule := []entity.DaySchedule{closedDay(entity.Friday)}

	changes := differ.Diff(oldSchedule, newSchedule, entity.Contact{}, entity.Contact{})
	require.Len(t, changes, 1)
	assert.Equal(t, entity.DayClosed, changes[0].Kind)
	assert.Equal(t, entity.Friday, changes[0].Weekday)
}

func TestDiffBothClosedIgnoresOffsets(t *testing.T) {
	differ := NewScheduleDiffer()

	oldSchedule := []entity.DaySchedule{{Weekday: entity.Monday, OpenMinute: 540, CloseMinute: 1020, Closed: true}}
	newSchedule := []entity.DaySchedule{{Weekday: entity.Monday, OpenMinute: 600, CloseMinute: 960, Closed: true}}

	changes := differ.Diff(oldSchedule, newSchedule, entity.Contact{}, entity.Contact{})
	assert.Empty(t, changes)
}

func TestDiffOrderingWeekdaysThenContact(t *testing.T) {
	differ := NewScheduleDiffer()

	oldSchedule := []entity.DaySchedule{
		day(entity.Friday, 540, 1020),
		day(entity.Sunday, 540, 1020),
	}
	newSchedule := []entity.DaySchedule{
		day(entity.Friday, 540, 1080),
		day(entity.Sunday, 600, 1020),
		day(entity.Wednesday, 540, 1020),
	}
	oldContact := entity.Contact{Phone: strPtr("+1 555 0100"), Website: strPtr("https://old.example")}
	newContact := entity.Contact{Phone: strPtr("+1 555 0199"), Website: strPtr("https://new.example")}

	changes := differ.Diff(oldSchedule, newSchedule, oldContact, newContact)
	require.Len(t, changes, 5)

	assert.Equal(t, entity.Sunday, changes[0].Weekday)
	assert.Equal(t, entity.HoursChanged, changes[0].Kind)
	assert.Equal(t, entity.Wednesday, changes[1].Weekday)
	assert.Equal(t, entity.DayOpened, changes[1].Kind)
	assert.Equal(t, entity.Friday, changes[2].Weekday)
	assert.Equal(t, entity.HoursChanged, changes[2].Kind)
	assert.Equal(t, entity.FieldPhone, changes[3].Field)
	assert.Equal(t, entity.FieldWebsite, changes[4].Field)
}

func TestDiffContactTransitions(t *testing.T) {
	differ := NewScheduleDiffer()

	tests := []struct {
		name     string
		old, new *string
		want     int
	}{
		{name: "both nil", old: nil, new: nil, want: 0},
		{name: "nil to value", old: nil, new: strPtr("+1 555 0100"), want: 1},
		{name: "value to nil", old: strPtr("+1 555 0100"), new: nil, want: 1},
		{name: "same value", old: strPtr("+1 555 0100"), new: strPtr("+1 555 0100"), want: 0},
		{name: "different value", old: strPtr("+1 555 0100"), new: strPtr("+1 555 0199"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := differ.Diff(nil, nil, entity.Contact{Phone: tt.old}, entity.Contact{Phone: tt.new})
			assert.Len(t, changes, tt.want)
			if tt.want == 1 {
				assert.Equal(t, entity.ContactChanged, changes[0].Kind)
				assert.Equal(t, entity.FieldPhone, changes[0].Field)
			}
		})
	}
}

func TestDiffRoundTripStability(t *testing.T) {
	differ := NewScheduleDiffer()

	oldSchedule := []entity.DaySchedule{
		day(entity.Monday, 540, 1020),
		day(entity.Sunday, 600, 960),
	}
	newSchedule := []entity.DaySchedule{
		day(entity.Monday, 540, 1080),
		day(entity.Thursday, 480, 900),
	}
	newContact := entity.Contact{Phone: strPtr("+1 555 0100")}

	first := differ.Diff(oldSchedule, newSchedule, entity.Contact{}, newContact)
	require.NotEmpty(t, first)

	// Applying the new schedule then diffing against itself yields nothing.
	second := differ.Diff(newSchedule, newSchedule, newContact, newContact)
	assert.Empty(t, second)
}
