package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placewatch-service/internal/domain/entity"
	"placewatch-service/pkg/logger"
)

func intPtr(v int) *int {
	return &v
}

func strPtr(s string) *string {
	return &s
}

func period(day, open, close int) entity.RemotePeriod {
	return entity.RemotePeriod{Day: intPtr(day), OpenMinute: intPtr(open), CloseMinute: intPtr(close)}
}

func TestConvertMapsSourceDaysToWeekdays(t *testing.T) {
	converter := NewPlaceConverter(logger.NewNopLogger())

	payload := &entity.RemotePlacePayload{
		Periods: []entity.RemotePeriod{
			period(0, 600, 960), // source Sunday
			period(6, 540, 1020),
		},
		Phone:   strPtr("+1 555 0100"),
		Website: strPtr("https://example.com"),
	}

	schedule, contact := converter.Convert(payload)
	require.Len(t, schedule, 2)
	assert.Equal(t, entity.Sunday, schedule[0].Weekday)
	assert.Equal(t, 600, schedule[0].OpenMinute)
	assert.Equal(t, entity.Saturday, schedule[1].Weekday)
	assert.Equal(t, "+1 555 0100", *contact.Phone)
	assert.Equal(t, "https://example.com", *contact.Website)
}

func TestConvertDropsInvalidPeriods(t *testing.T) {
	converter := NewPlaceConverter(logger.NewNopLogger())

	payload := &entity.RemotePlacePayload{
		Periods: []entity.RemotePeriod{
			// Missing sub-fields, unknown days, out-of-range offsets; only
			// the final period survives.
			{Day: intPtr(1), OpenMinute: intPtr(540)},
			{OpenMinute: intPtr(540), CloseMinute: intPtr(1020)},
			period(7, 540, 1020),
			period(-1, 540, 1020),
			period(2, -10, 1020),
			period(2, 540, 1440),
			period(3, 540, 1020),
		},
	}

	schedule, _ := converter.Convert(payload)
	require.Len(t, schedule, 1)
	assert.Equal(t, entity.Wednesday, schedule[0].Weekday)
}

func TestConvertFirstPeriodPerDayWins(t *testing.T) {
	converter := NewPlaceConverter(logger.NewNopLogger())

	payload := &entity.RemotePlacePayload{
		Periods: []entity.RemotePeriod{
			period(1, 540, 1020),
			period(1, 600, 1080),
		},
	}

	schedule, _ := converter.Convert(payload)
	require.Len(t, schedule, 1)
	assert.Equal(t, 540, schedule[0].OpenMinute)
	assert.Equal(t, 1020, schedule[0].CloseMinute)
}

func TestConvertSortsByWeekday(t *testing.T) {
	converter := NewPlaceConverter(logger.NewNopLogger())

	payload := &entity.RemotePlacePayload{
		Periods: []entity.RemotePeriod{
			period(5, 540, 1020),
			period(0, 540, 1020),
			period(3, 540, 1020),
		},
	}

	schedule, _ := converter.Convert(payload)
	require.Len(t, schedule, 3)
	assert.Equal(t, entity.Sunday, schedule[0].Weekday)
	assert.Equal(t, entity.Wednesday, schedule[1].Weekday)
	assert.Equal(t, entity.Friday, schedule[2].Weekday)
}

func TestConvertNilPayload(t *testing.T) {
	converter := NewPlaceConverter(logger.NewNopLogger())

	schedule, contact := converter.Convert(nil)
	assert.Empty(t, schedule)
	assert.Nil(t, contact.Phone)
	assert.Nil(t, contact.Website)
}
