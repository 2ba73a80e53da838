package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/tour-package-service/internal/circuitbreaker"
	"github.com/guttosm/tour-package-service/internal/domain/model"
)

// guarded runs fn through cb and returns its value.
func guarded[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = fn()
		return cbErr
	})
	return result, err
}

// PackagesRepositoryWithCircuitBreaker wraps managed package storage.
// While the circuit is open List returns an empty overlay so the catalog
// keeps serving upstream data.
type PackagesRepositoryWithCircuitBreaker struct {
	repo           PackagesRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

func NewPackagesRepositoryWithCircuitBreaker(repo PackagesRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *PackagesRepositoryWithCircuitBreaker {
	return &PackagesRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *PackagesRepositoryWithCircuitBreaker) List(ctx context.Context) ([]model.TourPackage, error) {
	result, err := guarded(ctx, r.circuitBreaker, func() ([]model.TourPackage, error) {
		return r.repo.List(ctx)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return result, err
}

func (r *PackagesRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id string) (*model.TourPackage, error) {
	return guarded(ctx, r.circuitBreaker, func() (*model.TourPackage, error) {
		return r.repo.FindByID(ctx, id)
	})
}

func (r *PackagesRepositoryWithCircuitBreaker) Create(ctx context.Context, pkg *model.TourPackage) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, pkg)
	})
}

func (r *PackagesRepositoryWithCircuitBreaker) Save(ctx context.Context, pkg *model.TourPackage) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Save(ctx, pkg)
	})
}

func (r *PackagesRepositoryWithCircuitBreaker) Delete(ctx context.Context, id string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, id)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *PackagesRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// ItinerariesRepositoryWithCircuitBreaker wraps itinerary storage. An open
// circuit reads as a missing itinerary.
type ItinerariesRepositoryWithCircuitBreaker struct {
	repo           ItinerariesRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

func NewItinerariesRepositoryWithCircuitBreaker(repo ItinerariesRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ItinerariesRepositoryWithCircuitBreaker {
	return &ItinerariesRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *ItinerariesRepositoryWithCircuitBreaker) FindByPackageID(ctx context.Context, packageID string) (*model.Itinerary, error) {
	result, err := guarded(ctx, r.circuitBreaker, func() (*model.Itinerary, error) {
		return r.repo.FindByPackageID(ctx, packageID)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, ErrNotFound
	}
	return result, err
}

func (r *ItinerariesRepositoryWithCircuitBreaker) Upsert(ctx context.Context, it *model.Itinerary) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Upsert(ctx, it)
	})
}

func (r *ItinerariesRepositoryWithCircuitBreaker) DeleteByPackageID(ctx context.Context, packageID string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.DeleteByPackageID(ctx, packageID)
	})
}

// TrendingRepositoryWithCircuitBreaker wraps trending storage. An open
// circuit lists no destinations.
type TrendingRepositoryWithCircuitBreaker struct {
	repo           TrendingRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

func NewTrendingRepositoryWithCircuitBreaker(repo TrendingRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *TrendingRepositoryWithCircuitBreaker {
	return &TrendingRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *TrendingRepositoryWithCircuitBreaker) List(ctx context.Context, activeOnly bool) ([]model.TrendingDestination, error) {
	result, err := guarded(ctx, r.circuitBreaker, func() ([]model.TrendingDestination, error) {
		return r.repo.List(ctx, activeOnly)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return []model.TrendingDestination{}, nil
	}
	return result, err
}

func (r *TrendingRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id primitive.ObjectID) (*model.TrendingDestination, error) {
	return guarded(ctx, r.circuitBreaker, func() (*model.TrendingDestination, error) {
		return r.repo.FindByID(ctx, id)
	})
}

func (r *TrendingRepositoryWithCircuitBreaker) Create(ctx context.Context, d *model.TrendingDestination) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, d)
	})
}

func (r *TrendingRepositoryWithCircuitBreaker) Update(ctx context.Context, d *model.TrendingDestination) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Update(ctx, d)
	})
}

func (r *TrendingRepositoryWithCircuitBreaker) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, id)
	})
}

// LogsRepositoryWithCircuitBreaker wraps log storage.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create stores one entry. Writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores a batch. Writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error) {
	return guarded(ctx, r.circuitBreaker, func() ([]*model.LogEntry, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return guarded(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
