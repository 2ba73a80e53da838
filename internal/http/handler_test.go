package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/tour-package-service/internal/catalog"
	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/i18n"
	"github.com/guttosm/tour-package-service/internal/service"
)

type catalogFixture struct {
	catalog     *mockCatalogService
	itineraries *mockItineraryService
	trending    *mockTrendingService
	router      http.Handler
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		catalog:     new(mockCatalogService),
		itineraries: new(mockItineraryService),
		trending:    new(mockTrendingService),
	}
	handler := NewHandler(f.catalog, WithItineraries(f.itineraries), WithTrending(f.trending))
	f.router = NewRouter(Handlers{Catalog: handler}, RouterConfig{})
	return f
}

var goaPackage = model.TourPackage{
	ID:            "goa-beach-escape",
	Title:         "Goa Beach Escape",
	Duration:      "4N/5D",
	Destination:   "Goa",
	Price:         800,
	OriginalPrice: 1000,
	Rating:        4.5,
	Category:      "Beach & Island",
	Active:        true,
}

func TestHandler_BrowsePackages(t *testing.T) {
	f := newCatalogFixture()
	want := dto.BrowseQuery{Price: "1000-2500", Sort: "price-asc", Page: 2}
	f.catalog.On("Browse", mock.Anything, want).Return(&dto.BrowseResponse{
		Items:      dto.NewPackageCards([]model.TourPackage{goaPackage}),
		Pagination: dto.Pagination{Page: 2},
		Version:    3,
	}, nil)

	w := serve(t, f.router, http.MethodGet, "/api/packages?price=1000-2500&sort=price-asc&page=2", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp, env := decodeData[dto.BrowseResponse](t, w)
	assert.NotEmpty(t, env.RequestID)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "goa-beach-escape", resp.Items[0].ID)
	assert.Equal(t, 20, resp.Items[0].DiscountPercent)
	assert.Equal(t, uint64(3), resp.Version)
	f.catalog.AssertExpectations(t)
}

func TestHandler_BrowsePackagesRejectsBadQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantKey string
	}{
		{"price bracket", "price=cheap", i18n.ErrKeyInvalidPriceBracket},
		{"inverted duration", "duration=9-3", i18n.ErrKeyInvalidDurationBracket},
		{"sort key", "sort=popularity", i18n.ErrKeyInvalidSortKey},
		{"rating out of range", "rating=7", i18n.ErrKeyInvalidRating},
		{"page size above cap", "page_size=500", i18n.ErrKeyInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture()

			w := serve(t, f.router, http.MethodGet, "/api/packages?"+tt.query, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
			assert.Equal(t, i18n.GetTranslator().Translate(tt.wantKey, i18n.DefaultLocale), resp.Message)
			assert.NotEmpty(t, resp.Details)
			f.catalog.AssertNotCalled(t, "Browse", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_BrowsePackagesCatalogNotReady(t *testing.T) {
	f := newCatalogFixture()
	f.catalog.On("Browse", mock.Anything, dto.BrowseQuery{}).Return(nil, service.ErrNoSource)

	w := serve(t, f.router, http.MethodGet, "/api/packages", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, dto.ErrCodeUnavailable, decodeError(t, w).Error)
}

func TestHandler_GetPackage(t *testing.T) {
	t.Run("with itinerary", func(t *testing.T) {
		f := newCatalogFixture()
		f.catalog.On("Get", mock.Anything, "goa-beach-escape").Return(&goaPackage, nil)
		f.itineraries.On("Get", mock.Anything, "goa-beach-escape").Return(&model.Itinerary{
			PackageID: "goa-beach-escape",
			Days:      []model.ItineraryDay{{Day: 1, Title: "Arrival"}},
		}, nil)

		w := serve(t, f.router, http.MethodGet, "/api/packages/goa-beach-escape", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp, _ := decodeData[dto.PackageDetailResponse](t, w)
		assert.Equal(t, "5 Days, 4 Nights", resp.Package.DurationLabel)
		require.NotNil(t, resp.Itinerary)
		assert.Len(t, resp.Itinerary.Days, 1)
	})

	t.Run("without itinerary", func(t *testing.T) {
		f := newCatalogFixture()
		f.catalog.On("Get", mock.Anything, "goa-beach-escape").Return(&goaPackage, nil)
		f.itineraries.On("Get", mock.Anything, "goa-beach-escape").Return(nil, service.ErrItineraryNotFound)

		w := serve(t, f.router, http.MethodGet, "/api/packages/goa-beach-escape", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp, _ := decodeData[dto.PackageDetailResponse](t, w)
		assert.Nil(t, resp.Itinerary)
	})

	t.Run("unknown package", func(t *testing.T) {
		f := newCatalogFixture()
		f.catalog.On("Get", mock.Anything, "nope").Return(nil, service.ErrPackageNotFound)
		f.itineraries.On("Get", mock.Anything, "nope").Return(nil, service.ErrItineraryNotFound)

		w := serve(t, f.router, http.MethodGet, "/api/packages/nope", nil, "Accept-Language", "nl")

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error)
		assert.Equal(t, i18n.GetTranslator().Translate(i18n.ErrKeyPackageNotFound, "nl"), resp.Message)
	})
}

func TestHandler_GetSuggestions(t *testing.T) {
	f := newCatalogFixture()
	f.catalog.On("Suggestions", mock.Anything, "goa-beach-escape", maxSuggestionLimit).
		Return([]model.TourPackage{goaPackage}, nil)

	w := serve(t, f.router, http.MethodGet, "/api/packages/goa-beach-escape/suggestions?limit=50", nil)

	require.Equal(t, http.StatusOK, w.Code)
	cards, _ := decodeData[[]dto.PackageCard](t, w)
	assert.Len(t, cards, 1)

	w = serve(t, f.router, http.MethodGet, "/api/packages/goa-beach-escape/suggestions?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetItinerary(t *testing.T) {
	f := newCatalogFixture()
	f.itineraries.On("Get", mock.Anything, "goa-beach-escape").Return(nil, service.ErrItineraryNotFound)

	w := serve(t, f.router, http.MethodGet, "/api/packages/goa-beach-escape/itinerary", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, i18n.GetTranslator().Translate(i18n.ErrKeyItineraryNotFound, i18n.DefaultLocale), decodeError(t, w).Message)
}

func TestHandler_Categories(t *testing.T) {
	f := newCatalogFixture()
	f.catalog.On("Categories", mock.Anything).Return([]catalog.Category{
		{Label: "Beach & Island", Slug: "beach-island", Count: 2},
	})
	f.catalog.On("ResolveCategory", mock.Anything, "beach-island").Return("Beach & Island", nil)
	f.catalog.On("ResolveCategory", mock.Anything, "space").Return("", service.ErrCategoryNotFound)
	f.catalog.On("Browse", mock.Anything, dto.BrowseQuery{Category: "Beach & Island", Sort: "rating-desc"}).
		Return(&dto.BrowseResponse{Items: []dto.PackageCard{}}, nil)

	w := serve(t, f.router, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cats, _ := decodeData[[]catalog.Category](t, w)
	assert.Equal(t, "beach-island", cats[0].Slug)

	w = serve(t, f.router, http.MethodGet, "/api/categories/beach-island?sort=rating-desc&category=ignored", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, f.router, http.MethodGet, "/api/categories/space", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	f.catalog.AssertExpectations(t)
}

func TestHandler_DestinationsAndTrending(t *testing.T) {
	f := newCatalogFixture()
	f.catalog.On("Destinations", mock.Anything).Return([]string{"Bali", "Goa"})
	f.trending.On("List", mock.Anything, true).Return(nil, nil).Once()
	f.trending.On("List", mock.Anything, true).Return(nil, errors.New("mongo down")).Once()

	w := serve(t, f.router, http.MethodGet, "/api/destinations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dests, _ := decodeData[[]string](t, w)
	assert.Equal(t, []string{"Bali", "Goa"}, dests)

	w = serve(t, f.router, http.MethodGet, "/api/trending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items, _ := decodeData[[]model.TrendingDestination](t, w)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	w = serve(t, f.router, http.MethodGet, "/api/trending", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
