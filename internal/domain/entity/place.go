// internal/domain/entity/place.go
package entity

import (
	"time"
)

// Weekday numbers the days 1 (Sunday) through 7 (Saturday). The directory
// API reports days as 0-6 with 0=Sunday; the conversion layer shifts them.
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (w Weekday) String() string {
	if w < Sunday || w > Saturday {
		return "Unknown"
	}
	return weekdayNames[w-1]
}

// WeekdayOf maps a wall-clock time to its Weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(int(t.Weekday()) + 1)
}

// DaySchedule is one weekday's opening hours. Open/Close are minutes since
// midnight (0-1439). When Closed is set the offsets are ignored for status
// purposes but round-trip unchanged if present.
type DaySchedule struct {
	Weekday     Weekday `bson:"weekday"`
	OpenMinute  int     `bson:"openMinute"`
	CloseMinute int     `bson:"closeMinute"`
	Closed      bool    `bson:"closed"`
}

// Contact groups the place's contact fields. Nil means unknown/unset.
type Contact struct {
	Phone   *string `bson:"phone,omitempty"`
	Website *string `bson:"website,omitempty"`
}

// PlaceStatus is the user-facing open/closed state of a place.
type PlaceStatus string

const (
	StatusOpen        PlaceStatus = "Open"
	StatusClosingSoon PlaceStatus = "ClosingSoon"
	StatusClosed      PlaceStatus = "Closed"
)

// PlaceRecord is a tracked business with its weekly schedule. Schedule holds
// at most one entry per weekday and is replaced wholesale on every applied
// update. A record without a RemoteID can never be synchronized and is
// skipped by the sync engine without error. LastChecked is set on every sync
// attempt, success or not, and is never earlier than LastUpdated.
type PlaceRecord struct {
	ID          string        `bson:"_id,omitempty"`
	RemoteID    string        `bson:"remoteId,omitempty"`
	Name        string        `bson:"name"`
	Contact     Contact       `bson:"contact"`
	Schedule    []DaySchedule `bson:"schedule"`
	LastUpdated time.Time     `bson:"lastUpdated"`
	LastChecked *time.Time    `bson:"lastChecked,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

// Syncable reports whether the record carries a remote identifier.
func (p *PlaceRecord) Syncable() bool {
	return p.RemoteID != ""
}
