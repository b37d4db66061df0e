package entity

// PermissionStatus is the user's notification permission state.
type PermissionStatus string

const (
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
	PermissionUndetermined PermissionStatus = "undetermined"
)

// Alert is one user-facing notification about a single change. ID is a
// delivery-time unique identifier so rapid repeated alerts for the same
// record do not collide in the underlying sink. Payload carries the record
// identifier for deep-linking.
type Alert struct {
	ID      string                 `json:"id"`
	Title   string                 `json:"title"`
	Body    string                 `json:"body"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}
