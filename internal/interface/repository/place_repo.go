package repository

import (
	"context"
	"time"

	"placewatch-service/internal/domain/entity"
	"placewatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPlaceRepository implements PlaceRepository
type MongoPlaceRepository struct {
	collection *mongo.Collection
}

// NewMongoPlaceRepository creates a new place record repository
func NewMongoPlaceRepository(db *mongo.Database) repository.PlaceRepository {
	collection := db.Collection("places")

	// Index on remoteId for reverse lookups; sparse because records created
	// without a remote identifier stay un-syncable forever.
	ctx := context.Background()
	remoteIndex := mongo.IndexModel{
		Keys:    bson.M{"remoteId": 1},
		Options: options.Index().SetSparse(true),
	}
	collection.Indexes().CreateOne(ctx, remoteIndex)

	// Index on lastUpdated for staleness sweeps.
	staleIndex := mongo.IndexModel{
		Keys: bson.M{"lastUpdated": 1},
	}
	collection.Indexes().CreateOne(ctx, staleIndex)

	return &MongoPlaceRepository{
		collection: collection,
	}
}

// Save creates or replaces a place record, atomically per record.
func (r *MongoPlaceRepository) Save(ctx context.Context, record *entity.PlaceRecord) error {
	record.UpdatedAt = time.Now()

	// For new records
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
		record.CreatedAt = time.Now()
	}

	updateDoc := bson.M{
		"remoteId":    record.RemoteID,
		"name":        record.Name,
		"contact":     record.Contact,
		"schedule":    record.Schedule,
		"lastUpdated": record.LastUpdated,
		"lastChecked": record.LastChecked,
		"createdAt":   record.CreatedAt,
		"updatedAt":   record.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": record.ID}

	_, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{"$set": updateDoc},
		opts,
	)

	return err
}

// FindByID finds a place record by its local identifier
func (r *MongoPlaceRepository) FindByID(ctx context.Context, id string) (*entity.PlaceRecord, error) {
	var record entity.PlaceRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FetchAll returns every stored place record
func (r *MongoPlaceRepository) FetchAll(ctx context.Context) ([]*entity.PlaceRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.PlaceRecord
	for cursor.Next(ctx) {
		var record entity.PlaceRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	return records, cursor.Err()
}
