package repository

import (
	"context"

	"placewatch-service/internal/domain/entity"
)

// DirectoryRepository defines the interface for the remote directory lookup.
// Implementations must guarantee bounded completion or failure; the sync
// engine does not impose its own fetch timeout.
type DirectoryRepository interface {
	FetchPlace(ctx context.Context, remoteID string) (*entity.RemotePlacePayload, error)
}
