package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"placewatch-service/internal/domain/entity"
)

func strPtr(s string) *string {
	return &s
}

func TestFormatBodyGoldenPhrasing(t *testing.T) {
	cases := []struct {
		name   string
		change entity.Change
		want   string
	}{
		{
			name: "hours changed",
			change: entity.Change{
				Kind:      entity.HoursChanged,
				Weekday:   entity.Monday,
				OldWindow: "9:00 AM-5:00 PM",
				NewWindow: "9:00 AM-6:00 PM",
			},
			want: "Monday: 9:00 AM-5:00 PM → 9:00 AM-6:00 PM",
		},
		{
			name:   "day closed",
			change: entity.Change{Kind: entity.DayClosed, Weekday: entity.Sunday},
			want:   "Now closed on Sunday",
		},
		{
			name: "day opened",
			change: entity.Change{
				Kind:      entity.DayOpened,
				Weekday:   entity.Saturday,
				NewWindow: "10:00 AM-2:00 PM",
			},
			want: "Now open on Saturday: 10:00 AM-2:00 PM",
		},
		{
			name: "phone changed",
			change: entity.Change{
				Kind:     entity.ContactChanged,
				Field:    entity.FieldPhone,
				OldValue: strPtr("+1 555 0100"),
				NewValue: strPtr("+1 555 0199"),
			},
			want: "Phone: +1 555 0100 → +1 555 0199",
		},
		{
			name: "phone added",
			change: entity.Change{
				Kind:     entity.ContactChanged,
				Field:    entity.FieldPhone,
				NewValue: strPtr("+1 555 0100"),
			},
			want: "Phone: N/A → +1 555 0100",
		},
		{
			name: "phone removed",
			change: entity.Change{
				Kind:     entity.ContactChanged,
				Field:    entity.FieldPhone,
				OldValue: strPtr("+1 555 0100"),
			},
			want: "Phone: +1 555 0100 → N/A",
		},
		{
			name: "website changed",
			change: entity.Change{
				Kind:     entity.ContactChanged,
				Field:    entity.FieldWebsite,
				OldValue: strPtr("https://old.example.com"),
				NewValue: strPtr("https://new.example.com"),
			},
			want: "Website: https://old.example.com → https://new.example.com",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatBody(tc.change))
		})
	}
}

func TestFormatTitlePerKind(t *testing.T) {
	cases := []struct {
		kind entity.ChangeKind
		want string
	}{
		{entity.HoursChanged, "Corner Cafe changed its hours"},
		{entity.DayClosed, "Corner Cafe added a closing day"},
		{entity.DayOpened, "Corner Cafe opened a new day"},
		{entity.ContactChanged, "Corner Cafe updated contact details"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatTitle(entity.Change{Kind: tc.kind}, "Corner Cafe"))
	}
}
