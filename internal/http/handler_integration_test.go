//go:build integration

package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/repository"
	"github.com/guttosm/tour-package-service/internal/service"
	"github.com/guttosm/tour-package-service/internal/testutil"
)

// newIntegrationRouter wires the real services against a database unique to t.
func newIntegrationRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := repository.NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		_ = db.Database.Drop(ctx)
		_ = db.Close(ctx)
	})

	packagesRepo := repository.NewPackagesRepository(db)
	catalog := service.NewCatalogService(service.WithManagedPackages(packagesRepo))
	t.Cleanup(catalog.Close)

	packages := service.NewPackageService(packagesRepo, catalog, nil)
	itineraries := service.NewItineraryService(repository.NewItinerariesRepository(db), catalog)
	trending := service.NewTrendingService(repository.NewTrendingRepository(db))
	leads := service.NewLeadService(repository.NewLeadsRepository(db), catalog, nil)

	health := NewHealthHandler()
	health.RegisterChecker("mongodb", HealthCheckFunc(db.HealthCheck))

	return NewRouter(Handlers{
		Catalog: NewHandler(catalog, WithItineraries(itineraries), WithTrending(trending)),
		Leads:   NewLeadHandler(leads, nil),
		Admin: NewAdminHandler(AdminServices{
			Catalog:     catalog,
			Packages:    packages,
			Itineraries: itineraries,
			Trending:    trending,
			Leads:       leads,
		}, nil),
		Health: health,
	}, RouterConfig{})
}

func TestIntegration_ManagedPackageFlow(t *testing.T) {
	router := newIntegrationRouter(t)

	w := serve(t, router, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, req := range []dto.PackageRequest{
		{Title: "Goa Beach Escape", Duration: "4N/5D", Destination: "Goa", Price: 1299, Rating: 4.6, Category: "Beach & Island"},
		{Title: "Kerala Backwaters", Duration: "6N/7D", Destination: "Kerala", Price: 2199, Rating: 4.8, Category: "Nature"},
		{Title: "Andaman Dive Week", Duration: "7N/8D", Destination: "Andaman", Price: 3499, Rating: 4.2, Category: "Beach & Island"},
	} {
		w = serve(t, router, http.MethodPost, "/api/admin/packages", req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = serve(t, router, http.MethodPost, "/api/admin/catalog/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	refreshed, _ := decodeData[RefreshResponse](t, w)
	assert.Equal(t, 3, refreshed.Packages)

	w = serve(t, router, http.MethodGet, "/api/packages?price=1000-2500&sort=price-desc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page, _ := decodeData[dto.BrowseResponse](t, w)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Kerala Backwaters", page.Items[0].Title)
	assert.Equal(t, "Goa Beach Escape", page.Items[1].Title)

	w = serve(t, router, http.MethodGet, "/api/categories/beach-island", nil)
	require.Equal(t, http.StatusOK, w.Code)
	beach, _ := decodeData[dto.BrowseResponse](t, w)
	assert.Len(t, beach.Items, 2)

	w = serve(t, router, http.MethodPut, "/api/admin/itineraries", dto.ItineraryRequest{
		PackageID: "goa-beach-escape",
		Days:      []dto.ItineraryDayRequest{{Day: 1, Title: "Arrival"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(t, router, http.MethodGet, "/api/packages/goa-beach-escape", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail, _ := decodeData[dto.PackageDetailResponse](t, w)
	require.NotNil(t, detail.Itinerary)
	assert.Equal(t, "Arrival", detail.Itinerary.Days[0].Title)
}

func TestIntegration_LeadFlow(t *testing.T) {
	router := newIntegrationRouter(t)

	w := serve(t, router, http.MethodPost, "/api/leads", dto.LeadRequest{
		Name:        "Priya Sharma",
		Email:       "  Priya@Example.com ",
		Destination: "Goa",
		Travelers:   2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	lead, _ := decodeData[dto.LeadResponse](t, w)
	assert.Regexp(t, `^TRV-[0-9A-F]{8}$`, lead.Reference)

	w = serve(t, router, http.MethodGet, "/api/admin/leads?status=new", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list, _ := decodeData[dto.ListResponse[model.Lead]](t, w)
	require.Equal(t, 1, list.TotalItems)
	assert.Equal(t, "priya@example.com", list.Items[0].Email)
	assert.Equal(t, lead.Reference, list.Items[0].Reference)
}
