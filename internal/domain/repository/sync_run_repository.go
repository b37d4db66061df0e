package repository

import (
	"context"

	"placewatch-service/internal/domain/entity"
)

// SyncRunRepository defines the interface for sync run journaling.
type SyncRunRepository interface {
	Create(ctx context.Context, run *entity.SyncRun) error
	Finish(ctx context.Context, run *entity.SyncRun) error
}
