package entity

// RemotePeriod is one raw (day, open, close) tuple from the directory API.
// Day uses the source convention 0=Sunday through 6=Saturday. Fields are
// pointers because the upstream payload may omit any of them; the conversion
// layer drops incomplete periods silently.
type RemotePeriod struct {
	Day         *int `json:"day"`
	OpenMinute  *int `json:"openMinute"`
	CloseMinute *int `json:"closeMinute"`
}

// RemotePlacePayload is the directory API's view of a place, as handed to
// the conversion layer.
type RemotePlacePayload struct {
	Periods []RemotePeriod `json:"periods"`
	Phone   *string        `json:"phone,omitempty"`
	Website *string        `json:"website,omitempty"`
}
