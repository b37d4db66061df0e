package repository

import (
	"context"

	"placewatch-service/internal/domain/entity"
)

// AlertRepository defines the interface for delivering user-facing alerts.
// Delivery is fire-and-forget from the notifier's point of view: failures
// are logged by the caller, never escalated into batch accounting.
type AlertRepository interface {
	Deliver(ctx context.Context, alert *entity.Alert) error
}

// PermissionRepository exposes the user's notification permission state.
type PermissionRepository interface {
	Status(ctx context.Context) (entity.PermissionStatus, error)
}
