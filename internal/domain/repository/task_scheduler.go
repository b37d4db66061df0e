package repository

import (
	"context"
	"time"
)

// TaskScheduler abstracts the host's background-wake mechanism. Register
// arranges a single future invocation no earlier than notBefore; calling it
// again replaces any pending registration. The run callback receives a
// context that is cancelled when the host's execution budget expires, at
// which point onExpire fires with no further warning.
type TaskScheduler interface {
	Register(notBefore time.Time, onRun func(ctx context.Context), onExpire func())
	Deregister()
}
