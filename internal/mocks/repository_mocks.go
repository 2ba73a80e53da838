// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/tour-package-service/internal/domain/model"
)

type MockPackagesRepositoryInterface struct {
	mock.Mock
}

func (m *MockPackagesRepositoryInterface) List(ctx context.Context) ([]model.TourPackage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TourPackage), args.Error(1)
}

func (m *MockPackagesRepositoryInterface) FindByID(ctx context.Context, id string) (*model.TourPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TourPackage), args.Error(1)
}

func (m *MockPackagesRepositoryInterface) Create(ctx context.Context, pkg *model.TourPackage) error {
	return m.Called(ctx, pkg).Error(0)
}

func (m *MockPackagesRepositoryInterface) Save(ctx context.Context, pkg *model.TourPackage) error {
	return m.Called(ctx, pkg).Error(0)
}

func (m *MockPackagesRepositoryInterface) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockItinerariesRepositoryInterface struct {
	mock.Mock
}

func (m *MockItinerariesRepositoryInterface) FindByPackageID(ctx context.Context, packageID string) (*model.Itinerary, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Itinerary), args.Error(1)
}

func (m *MockItinerariesRepositoryInterface) Upsert(ctx context.Context, it *model.Itinerary) error {
	return m.Called(ctx, it).Error(0)
}

func (m *MockItinerariesRepositoryInterface) DeleteByPackageID(ctx context.Context, packageID string) error {
	return m.Called(ctx, packageID).Error(0)
}

type MockTrendingRepositoryInterface struct {
	mock.Mock
}

func (m *MockTrendingRepositoryInterface) List(ctx context.Context, activeOnly bool) ([]model.TrendingDestination, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrendingDestination), args.Error(1)
}

func (m *MockTrendingRepositoryInterface) FindByID(ctx context.Context, id primitive.ObjectID) (*model.TrendingDestination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrendingDestination), args.Error(1)
}

func (m *MockTrendingRepositoryInterface) Create(ctx context.Context, d *model.TrendingDestination) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockTrendingRepositoryInterface) Update(ctx context.Context, d *model.TrendingDestination) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockTrendingRepositoryInterface) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type MockLeadsRepositoryInterface struct {
	mock.Mock
}

func (m *MockLeadsRepositoryInterface) Create(ctx context.Context, lead *model.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadsRepositoryInterface) List(ctx context.Context, opts model.LeadQueryOptions) ([]model.Lead, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Lead), args.Error(1)
}

func (m *MockLeadsRepositoryInterface) Count(ctx context.Context, opts model.LeadQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadsRepositoryInterface) UpdateStatus(ctx context.Context, reference, status string) error {
	return m.Called(ctx, reference, status).Error(0)
}

type MockLogsRepositoryInterface struct {
	mock.Mock
}

func (m *MockLogsRepositoryInterface) Create(ctx context.Context, entry *model.LogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLogsRepositoryInterface) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockLogsRepositoryInterface) Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LogEntry), args.Error(1)
}

func (m *MockLogsRepositoryInterface) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

type MockUsersRepositoryInterface struct {
	mock.Mock
}

func (m *MockUsersRepositoryInterface) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUsersRepositoryInterface) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersRepositoryInterface) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersRepositoryInterface) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// MockFetcher mocks source.Fetcher.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchPackages(ctx context.Context) ([]model.TourPackage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TourPackage), args.Error(1)
}
