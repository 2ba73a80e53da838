package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/tour-package-service/internal/domain/model"
)

// UsersRepository stores back-office accounts.
type UsersRepository struct {
	collection *mongo.Collection
}

func NewUsersRepository(db *MongoDB) *UsersRepository {
	return &UsersRepository{collection: db.Users}
}

// Create inserts user with a lowercased email.
func (r *UsersRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, user)
	return mapError(err)
}

// FindByEmail returns the user with email or ErrNotFound.
func (r *UsersRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// FindByID returns the user with id or ErrNotFound.
func (r *UsersRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var u model.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// TouchLastLogin records a successful login.
func (r *UsersRepository) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login": at}})
	return err
}
