package templates

import (
	"fmt"

	"placewatch-service/internal/domain/entity"
)

// Alert body templates. The exact phrasing is a contract with the consuming
// clients; golden tests pin it.
const (
	BODY_HOURS_CHANGED = "%s: %s → %s"
	BODY_DAY_CLOSED    = "Now closed on %s"
	BODY_DAY_OPENED    = "Now open on %s: %s"
	BODY_PHONE         = "Phone: %s → %s"
	BODY_WEBSITE       = "Website: %s → %s"

	// Placeholder for a nil contact value.
	VALUE_NA = "N/A"
)

// Alert title verb phrases, keyed to the change kind.
const (
	TITLE_HOURS_CHANGED   = "%s changed its hours"
	TITLE_DAY_CLOSED      = "%s added a closing day"
	TITLE_DAY_OPENED      = "%s opened a new day"
	TITLE_CONTACT_CHANGED = "%s updated contact details"
)

// FormatTitle renders the alert title for one change.
func FormatTitle(change entity.Change, placeName string) string {
	switch change.Kind {
	case entity.HoursChanged:
		return fmt.Sprintf(TITLE_HOURS_CHANGED, placeName)
	case entity.DayClosed:
		return fmt.Sprintf(TITLE_DAY_CLOSED, placeName)
	case entity.DayOpened:
		return fmt.Sprintf(TITLE_DAY_OPENED, placeName)
	default:
		return fmt.Sprintf(TITLE_CONTACT_CHANGED, placeName)
	}
}

// FormatBody renders the alert body for one change.
func FormatBody(change entity.Change) string {
	switch change.Kind {
	case entity.HoursChanged:
		return fmt.Sprintf(BODY_HOURS_CHANGED, change.Weekday.String(), change.OldWindow, change.NewWindow)
	case entity.DayClosed:
		return fmt.Sprintf(BODY_DAY_CLOSED, change.Weekday.String())
	case entity.DayOpened:
		return fmt.Sprintf(BODY_DAY_OPENED, change.Weekday.String(), change.NewWindow)
	default:
		template := BODY_PHONE
		if change.Field == entity.FieldWebsite {
			template = BODY_WEBSITE
		}
		return fmt.Sprintf(template, orNA(change.OldValue), orNA(change.NewValue))
	}
}

func orNA(value *string) string {
	if value == nil {
		return VALUE_NA
	}
	return *value
}
