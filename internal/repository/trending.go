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

// TrendingRepository stores the destinations promoted on the landing page.
type TrendingRepository struct {
	collection *mongo.Collection
}

func NewTrendingRepository(db *MongoDB) *TrendingRepository {
	return &TrendingRepository{collection: db.Trending}
}

// List returns destinations ordered by rank. activeOnly hides disabled entries.
func (r *TrendingRepository) List(ctx context.Context, activeOnly bool) ([]model.TrendingDestination, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "rank", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	out := make([]model.TrendingDestination, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TrendingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.TrendingDestination, error) {
	var d model.TrendingDestination
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, mapError(err)
	}
	return &d, nil
}

func (r *TrendingRepository) Create(ctx context.Context, d *model.TrendingDestination) error {
	now := time.Now().UTC()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	d.CreatedAt = now
	d.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, d)
	return mapError(err)
}

// Update replaces the destination with d.ID.
func (r *TrendingRepository) Update(ctx context.Context, d *model.TrendingDestination) error {
	d.UpdatedAt = time.Now().UTC()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TrendingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
