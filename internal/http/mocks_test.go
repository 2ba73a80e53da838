package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/tour-package-service/internal/catalog"
	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/service"
)

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) Browse(ctx context.Context, q dto.BrowseQuery) (*dto.BrowseResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BrowseResponse), args.Error(1)
}

func (m *mockCatalogService) Get(ctx context.Context, id string) (*model.TourPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TourPackage), args.Error(1)
}

func (m *mockCatalogService) Suggestions(ctx context.Context, id string, limit int) ([]model.TourPackage, error) {
	args := m.Called(ctx, id, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TourPackage), args.Error(1)
}

func (m *mockCatalogService) Categories(ctx context.Context) []catalog.Category {
	return m.Called(ctx).Get(0).([]catalog.Category)
}

func (m *mockCatalogService) ResolveCategory(ctx context.Context, slug string) (string, error) {
	args := m.Called(ctx, slug)
	return args.String(0), args.Error(1)
}

func (m *mockCatalogService) Destinations(ctx context.Context) []string {
	return m.Called(ctx).Get(0).([]string)
}

func (m *mockCatalogService) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCatalogService) Snapshot() *service.Snapshot {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*service.Snapshot)
}

func (m *mockCatalogService) Run(ctx context.Context, interval time.Duration) {
	m.Called(ctx, interval)
}

type mockItineraryService struct {
	mock.Mock
}

func (m *mockItineraryService) Get(ctx context.Context, packageID string) (*model.Itinerary, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Itinerary), args.Error(1)
}

func (m *mockItineraryService) Save(ctx context.Context, req dto.ItineraryRequest) (*model.Itinerary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Itinerary), args.Error(1)
}

func (m *mockItineraryService) Delete(ctx context.Context, packageID string) error {
	return m.Called(ctx, packageID).Error(0)
}

type mockTrendingService struct {
	mock.Mock
}

func (m *mockTrendingService) List(ctx context.Context, activeOnly bool) ([]model.TrendingDestination, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrendingDestination), args.Error(1)
}

func (m *mockTrendingService) Create(ctx context.Context, req dto.TrendingRequest) (*model.TrendingDestination, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrendingDestination), args.Error(1)
}

func (m *mockTrendingService) Update(ctx context.Context, id string, req dto.TrendingRequest) (*model.TrendingDestination, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrendingDestination), args.Error(1)
}

func (m *mockTrendingService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPackageService struct {
	mock.Mock
}

func (m *mockPackageService) List(ctx context.Context) ([]model.TourPackage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TourPackage), args.Error(1)
}

func (m *mockPackageService) Create(ctx context.Context, req dto.PackageRequest) (*model.TourPackage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TourPackage), args.Error(1)
}

func (m *mockPackageService) Update(ctx context.Context, id string, req dto.PackageRequest) (*model.TourPackage, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TourPackage), args.Error(1)
}

func (m *mockPackageService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockLeadService struct {
	mock.Mock
}

func (m *mockLeadService) Submit(ctx context.Context, req dto.LeadRequest, locale string) (*model.Lead, error) {
	args := m.Called(ctx, req, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *mockLeadService) List(ctx context.Context, q dto.LeadListQuery) (*dto.ListResponse[model.Lead], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListResponse[model.Lead]), args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *mockAuthService) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}

func (m *mockAuthService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *mockAuthService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	return m.Called(ctx, email, password, name).Error(0)
}

type mockLoggingService struct {
	mock.Mock
}

func (m *mockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *mockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *mockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

var (
	_ service.CatalogService   = (*mockCatalogService)(nil)
	_ service.ItineraryService = (*mockItineraryService)(nil)
	_ service.TrendingService  = (*mockTrendingService)(nil)
	_ service.PackageService   = (*mockPackageService)(nil)
	_ service.LeadService      = (*mockLeadService)(nil)
	_ service.AuthService      = (*mockAuthService)(nil)
	_ service.LoggingService   = (*mockLoggingService)(nil)
)
