package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/tour-package-service/internal/domain/model"
)

// PackagesRepository stores admin-managed tour packages. A managed package
// with the same ID as an upstream one overrides it in the catalog.
type PackagesRepository struct {
	collection *mongo.Collection
}

// NewPackagesRepository creates a repository over db.Packages.
func NewPackagesRepository(db *MongoDB) *PackagesRepository {
	return &PackagesRepository{collection: db.Packages}
}

// List returns every managed package, active or not, oldest first.
func (r *PackagesRepository) List(ctx context.Context) ([]model.TourPackage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	pkgs := make([]model.TourPackage, 0)
	if err := cursor.All(ctx, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

// FindByID returns the managed package with id or ErrNotFound.
func (r *PackagesRepository) FindByID(ctx context.Context, id string) (*model.TourPackage, error) {
	var pkg model.TourPackage
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pkg); err != nil {
		return nil, mapError(err)
	}
	return &pkg, nil
}

// Create inserts pkg. ErrDuplicate is returned for a taken ID or slug.
func (r *PackagesRepository) Create(ctx context.Context, pkg *model.TourPackage) error {
	now := time.Now().UTC()
	pkg.CreatedAt = now
	pkg.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, pkg)
	return mapError(err)
}

// Save replaces the stored document for pkg.ID, inserting it when absent.
func (r *PackagesRepository) Save(ctx context.Context, pkg *model.TourPackage) error {
	now := time.Now().UTC()
	if pkg.CreatedAt.IsZero() {
		pkg.CreatedAt = now
	}
	pkg.UpdatedAt = now
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": pkg.ID}, pkg, options.Replace().SetUpsert(true))
	return mapError(err)
}

// Delete removes the managed package with id.
func (r *PackagesRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
