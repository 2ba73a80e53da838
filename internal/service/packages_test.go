//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/events"
	"github.com/guttosm/tour-package-service/internal/mocks"
	"github.com/guttosm/tour-package-service/internal/repository"
)

// stubLookup is a fixed PackageLookup.
type stubLookup map[string]model.TourPackage

func (l stubLookup) Get(_ context.Context, id string) (*model.TourPackage, error) {
	p, ok := l[id]
	if !ok {
		return nil, ErrPackageNotFound
	}
	return &p, nil
}

func recordChanges(bus *events.Bus) *[]events.CatalogChanged {
	var got []events.CatalogChanged
	bus.Subscribe(events.TopicCatalogChanged, func(_ context.Context, e events.Event) {
		got = append(got, e.Payload.(events.CatalogChanged))
	})
	return &got
}

func boolPtr(b bool) *bool { return &b }

func TestPackageService_Create(t *testing.T) {
	ctx := context.Background()
	req := dto.PackageRequest{
		Title:       "Goa Beach Escape",
		Duration:    "4N/5D",
		Destination: "Goa, India",
		Price:       1299,
		Rating:      4.5,
		Category:    "beach_and_island",
	}

	tests := []struct {
		name      string
		req       dto.PackageRequest
		lookup    stubLookup
		setupMock func(*mocks.MockPackagesRepositoryInterface)
		wantErr   error
		wantID    string
	}{
		{
			name: "derives id from title",
			req:  req,
			setupMock: func(m *mocks.MockPackagesRepositoryInterface) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(p *model.TourPackage) bool {
					return p.ID == "goa-beach-escape" && p.Active && p.Source == model.SourceManaged &&
						p.Category == "Beach and Island"
				})).Return(nil)
			},
			wantID: "goa-beach-escape",
		},
		{
			name: "explicit slug wins",
			req: func() dto.PackageRequest {
				r := req
				r.Slug = "Goa Deluxe"
				return r
			}(),
			setupMock: func(m *mocks.MockPackagesRepositoryInterface) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			wantID: "goa-deluxe",
		},
		{
			name:      "collides with an upstream package",
			req:       req,
			lookup:    stubLookup{"goa-beach-escape": {ID: "goa-beach-escape"}},
			setupMock: func(*mocks.MockPackagesRepositoryInterface) {},
			wantErr:   ErrConflict,
		},
		{
			name: "duplicate in the collection",
			req:  req,
			setupMock: func(m *mocks.MockPackagesRepositoryInterface) {
				m.On("Create", mock.Anything, mock.Anything).Return(errors.Join(repository.ErrDuplicate, errors.New("E11000")))
			},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPackagesRepositoryInterface)
			tt.setupMock(repo)
			bus := events.NewBus()
			changes := recordChanges(bus)
			lookup := tt.lookup
			if lookup == nil {
				lookup = stubLookup{}
			}

			svc := NewPackageService(repo, lookup, bus)
			pkg, err := svc.Create(ctx, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, *changes)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, pkg.ID)
			assert.Equal(t, []events.CatalogChanged{{PackageID: tt.wantID, Action: ActionCreated}}, *changes)
			repo.AssertExpectations(t)
		})
	}

	t.Run("title without letters", func(t *testing.T) {
		svc := NewPackageService(new(mocks.MockPackagesRepositoryInterface), nil, nil)
		_, err := svc.Create(ctx, dto.PackageRequest{Title: "!!!"})
		var verr *dto.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestPackageService_Update(t *testing.T) {
	ctx := context.Background()
	req := dto.PackageRequest{Title: "Goa Escape", Duration: "3N/4D", Destination: "Goa", Price: 999}

	t.Run("overrides an upstream package", func(t *testing.T) {
		repo := new(mocks.MockPackagesRepositoryInterface)
		repo.On("FindByID", mock.Anything, "up-1").Return(nil, repository.ErrNotFound)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(p *model.TourPackage) bool {
			return p.ID == "up-1" && p.Active && p.Price == 999
		})).Return(nil)
		bus := events.NewBus()
		changes := recordChanges(bus)

		svc := NewPackageService(repo, stubLookup{"up-1": {ID: "up-1", Source: model.SourceUpstream}}, bus)
		pkg, err := svc.Update(ctx, "up-1", req)
		require.NoError(t, err)
		assert.Equal(t, model.SourceManaged, pkg.Source)
		assert.Equal(t, ActionUpdated, (*changes)[0].Action)
		repo.AssertExpectations(t)
	})

	t.Run("keeps hidden managed package hidden", func(t *testing.T) {
		repo := new(mocks.MockPackagesRepositoryInterface)
		repo.On("FindByID", mock.Anything, "m-1").Return(&model.TourPackage{ID: "m-1", Source: model.SourceManaged, Active: false}, nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(p *model.TourPackage) bool {
			return !p.Active
		})).Return(nil)

		_, err := NewPackageService(repo, nil, nil).Update(ctx, "m-1", req)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("explicit active flag", func(t *testing.T) {
		repo := new(mocks.MockPackagesRepositoryInterface)
		repo.On("FindByID", mock.Anything, "m-1").Return(&model.TourPackage{ID: "m-1", Source: model.SourceManaged}, nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(p *model.TourPackage) bool {
			return p.Active
		})).Return(nil)

		r := req
		r.Active = boolPtr(true)
		_, err := NewPackageService(repo, nil, nil).Update(ctx, "m-1", r)
		require.NoError(t, err)
	})

	t.Run("unknown package", func(t *testing.T) {
		repo := new(mocks.MockPackagesRepositoryInterface)
		repo.On("FindByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

		_, err := NewPackageService(repo, stubLookup{}, nil).Update(ctx, "ghost", req)
		assert.ErrorIs(t, err, ErrPackageNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(mocks.MockPackagesRepositoryInterface)
		repo.On("FindByID", mock.Anything, "m-1").Return(nil, errors.New("socket closed"))

		_, err := NewPackageService(repo, nil, nil).Update(ctx, "m-1", req)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrPackageNotFound)
	})
}

func TestPackageService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("hides an upstream package", func(t *testing.T) {
		repo := new(mocks.MockPackagesRepositoryInterface)
		repo.On("FindByID", mock.Anything, "up-1").Return(nil, repository.ErrNotFound)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(p *model.TourPackage) bool {
			return p.ID == "up-1" && !p.Active && p.Source == model.SourceManaged && p.Title == "Upstream"
		})).Return(nil)
		bus := events.NewBus()
		changes := recordChanges(bus)

		svc := NewPackageService(repo, stubLookup{"up-1": {ID: "up-1", Title: "Upstream", Active: true}}, bus)
		require.NoError(t, svc.Delete(ctx, "up-1"))
		assert.Equal(t, []events.CatalogChanged{{PackageID: "up-1", Action: ActionDeleted}}, *changes)
		repo.AssertExpectations(t)
	})

	t.Run("unknown package", func(t *testing.T) {
		repo := new(mocks.MockPackagesRepositoryInterface)
		repo.On("FindByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)
		assert.ErrorIs(t, NewPackageService(repo, nil, nil).Delete(ctx, "ghost"), ErrPackageNotFound)
	})
}

func TestPackageService_List(t *testing.T) {
	repo := new(mocks.MockPackagesRepositoryInterface)
	repo.On("List", mock.Anything).Return([]model.TourPackage{{ID: "a"}, {ID: "b"}}, nil)

	got, err := NewPackageService(repo, nil, nil).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
