package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/tour-package-service/internal/domain/model"
)

// PackagesRepositoryInterface defines managed package persistence.
type PackagesRepositoryInterface interface {
	List(ctx context.Context) ([]model.TourPackage, error)
	FindByID(ctx context.Context, id string) (*model.TourPackage, error)
	Create(ctx context.Context, pkg *model.TourPackage) error
	Save(ctx context.Context, pkg *model.TourPackage) error
	Delete(ctx context.Context, id string) error
}

// ItinerariesRepositoryInterface defines itinerary persistence.
type ItinerariesRepositoryInterface interface {
	FindByPackageID(ctx context.Context, packageID string) (*model.Itinerary, error)
	Upsert(ctx context.Context, it *model.Itinerary) error
	DeleteByPackageID(ctx context.Context, packageID string) error
}

// TrendingRepositoryInterface defines trending destination persistence.
type TrendingRepositoryInterface interface {
	List(ctx context.Context, activeOnly bool) ([]model.TrendingDestination, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.TrendingDestination, error)
	Create(ctx context.Context, d *model.TrendingDestination) error
	Update(ctx context.Context, d *model.TrendingDestination) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// LeadsRepositoryInterface defines lead persistence.
type LeadsRepositoryInterface interface {
	Create(ctx context.Context, lead *model.Lead) error
	List(ctx context.Context, opts model.LeadQueryOptions) ([]model.Lead, error)
	Count(ctx context.Context, opts model.LeadQueryOptions) (int64, error)
	UpdateStatus(ctx context.Context, reference, status string) error
}

// LogsRepositoryInterface defines log persistence.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// UsersRepositoryInterface defines back-office account persistence.
type UsersRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

var (
	_ PackagesRepositoryInterface    = (*PackagesRepository)(nil)
	_ ItinerariesRepositoryInterface = (*ItinerariesRepository)(nil)
	_ TrendingRepositoryInterface    = (*TrendingRepository)(nil)
	_ LeadsRepositoryInterface       = (*LeadsRepository)(nil)
	_ LogsRepositoryInterface        = (*LogsRepository)(nil)
	_ UsersRepositoryInterface       = (*UsersRepository)(nil)

	_ PackagesRepositoryInterface    = (*PackagesRepositoryWithCircuitBreaker)(nil)
	_ ItinerariesRepositoryInterface = (*ItinerariesRepositoryWithCircuitBreaker)(nil)
	_ TrendingRepositoryInterface    = (*TrendingRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface        = (*LogsRepositoryWithCircuitBreaker)(nil)
)
