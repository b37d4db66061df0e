package repository

import (
	"context"

	"placewatch-service/internal/domain/entity"
	"placewatch-service/internal/domain/repository"
)

// StaticPermissionRepository resolves the notification permission from
// configuration. The device-side permission prompt lives outside this
// service; deployments mirror its outcome here.
type StaticPermissionRepository struct {
	status entity.PermissionStatus
}

// NewStaticPermissionRepository parses the configured permission value.
// Anything unrecognized is treated as undetermined, which the notifier
// handles as not granted.
func NewStaticPermissionRepository(value string) repository.PermissionRepository {
	status := entity.PermissionUndetermined
	switch entity.PermissionStatus(value) {
	case entity.PermissionGranted:
		status = entity.PermissionGranted
	case entity.PermissionDenied:
		status = entity.PermissionDenied
	}

	return &StaticPermissionRepository{status: status}
}

// Status returns the configured permission state
func (r *StaticPermissionRepository) Status(_ context.Context) (entity.PermissionStatus, error) {
	return r.status, nil
}
