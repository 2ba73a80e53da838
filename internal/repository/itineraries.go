package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/tour-package-service/internal/domain/model"
)

// ItinerariesRepository stores one itinerary per package.
type ItinerariesRepository struct {
	collection *mongo.Collection
}

func NewItinerariesRepository(db *MongoDB) *ItinerariesRepository {
	return &ItinerariesRepository{collection: db.Itineraries}
}

// FindByPackageID returns the itinerary of packageID or ErrNotFound.
func (r *ItinerariesRepository) FindByPackageID(ctx context.Context, packageID string) (*model.Itinerary, error) {
	var it model.Itinerary
	if err := r.collection.FindOne(ctx, bson.M{"package_id": packageID}).Decode(&it); err != nil {
		return nil, mapError(err)
	}
	return &it, nil
}

// Upsert stores it as the itinerary of it.PackageID, replacing any previous one.
func (r *ItinerariesRepository) Upsert(ctx context.Context, it *model.Itinerary) error {
	now := time.Now().UTC()
	it.UpdatedAt = now

	var existing model.Itinerary
	err := r.collection.FindOne(ctx, bson.M{"package_id": it.PackageID}).Decode(&existing)
	switch {
	case err == nil:
		it.ID = existing.ID
		it.CreatedAt = existing.CreatedAt
	case err == mongo.ErrNoDocuments:
		it.ID = primitive.NewObjectID()
		it.CreatedAt = now
	default:
		return err
	}

	_, err = r.collection.ReplaceOne(ctx, bson.M{"package_id": it.PackageID}, it, options.Replace().SetUpsert(true))
	return mapError(err)
}

// DeleteByPackageID removes the itinerary of packageID.
func (r *ItinerariesRepository) DeleteByPackageID(ctx context.Context, packageID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"package_id": packageID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
