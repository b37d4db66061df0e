package repository

import (
	"context"

	"placewatch-service/internal/domain/entity"
)

// PlaceRepository defines the interface for place record persistence.
// Save is atomic per record; no multi-record transaction is assumed.
type PlaceRepository interface {
	Save(ctx context.Context, record *entity.PlaceRecord) error
	FindByID(ctx context.Context, id string) (*entity.PlaceRecord, error)
	FetchAll(ctx context.Context) ([]*entity.PlaceRecord, error)
}
