package entity

// ChangeKind tags the variant of a detected change.
type ChangeKind string

const (
	HoursChanged   ChangeKind = "hours_changed"
	DayClosed      ChangeKind = "day_closed"
	DayOpened      ChangeKind = "day_opened"
	ContactChanged ChangeKind = "contact_changed"
)

// ContactField names the contact field a ContactChanged refers to.
type ContactField string

const (
	FieldPhone   ContactField = "phone"
	FieldWebsite ContactField = "website"
)

// Change is one atomic difference between a record's stored schedule/contact
// and freshly fetched data. Changes are produced by the differ, consumed by
// the notifier and discarded; they are never persisted.
//
// HoursChanged and DayOpened carry pre-formatted time windows
// ("9:00 AM-5:00 PM"), not raw minute offsets.
type Change struct {
	Kind    ChangeKind
	Weekday Weekday

	// Hours variants
	OldWindow string
	NewWindow string

	// Contact variant
	Field    ContactField
	OldValue *string
	NewValue *string
}
