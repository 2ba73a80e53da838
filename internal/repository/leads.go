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

// LeadsRepository stores inquiries submitted through the website.
type LeadsRepository struct {
	collection *mongo.Collection
}

func NewLeadsRepository(db *MongoDB) *LeadsRepository {
	return &LeadsRepository{collection: db.Leads}
}

// Create inserts lead, assigning an ID and creation time when missing.
func (r *LeadsRepository) Create(ctx context.Context, lead *model.Lead) error {
	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, lead)
	return mapError(err)
}

// List returns leads newest first.
func (r *LeadsRepository) List(ctx context.Context, opts model.LeadQueryOptions) ([]model.Lead, error) {
	find := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		find.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		find.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, leadFilter(opts), find)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	out := make([]model.Lead, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of leads matching opts.
func (r *LeadsRepository) Count(ctx context.Context, opts model.LeadQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, leadFilter(opts))
}

// UpdateStatus sets the follow-up status of the lead with reference.
func (r *LeadsRepository) UpdateStatus(ctx context.Context, reference, status string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"reference": reference},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func leadFilter(opts model.LeadQueryOptions) bson.M {
	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	return filter
}
