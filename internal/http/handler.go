package http

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/service"
)

const maxSuggestionLimit = 12

// Handler serves the public catalog routes.
type Handler struct {
	catalog     service.CatalogService
	itineraries service.ItineraryService
	trending    service.TrendingService
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithItineraries enables itinerary lookups on package detail routes.
func WithItineraries(s service.ItineraryService) HandlerOption {
	return func(h *Handler) {
		h.itineraries = s
	}
}

// WithTrending enables the trending destinations route.
func WithTrending(s service.TrendingService) HandlerOption {
	return func(h *Handler) {
		h.trending = s
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(catalog service.CatalogService, opts ...HandlerOption) *Handler {
	h := &Handler{catalog: catalog}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BrowsePackages handles GET /api/packages requests.
//
// @Summary      Browse tour packages
// @Description  Filters, sorts and paginates the catalog. Filters combine with AND. Price and duration take bracket strings such as "1000-2500" or "10+".
// @Tags         Catalog
// @Produce      json
// @Param        destination query string false "Destination, or All"
// @Param        price query string false "Price bracket" example(1000-2500)
// @Param        duration query string false "Duration bracket in days" example(4-7)
// @Param        rating query number false "Minimum rating"
// @Param        category query string false "Category label"
// @Param        tour_type query string false "Tour type"
// @Param        sort query string false "Sort key" Enums(recommended, price-asc, price-desc, rating-desc, duration-asc, duration-desc)
// @Param        page query int false "Page number" minimum(1)
// @Param        page_size query int false "Page size" minimum(1) maximum(48)
// @Success      200 {object} dto.SuccessResponse{data=dto.BrowseResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Failure      503 {object} dto.ErrorResponse "Catalog not loaded yet"
// @Router       /api/packages [get]
func (h *Handler) BrowsePackages(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := BindQuery[dto.BrowseQuery](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	resp, err := h.catalog.Browse(c.Request.Context(), *q)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(resp)
}

// GetPackage handles GET /api/packages/:id requests.
//
// @Summary      Get a tour package
// @Description  Returns one active package and its itinerary when one exists.
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Package ID"
// @Success      200 {object} dto.SuccessResponse{data=dto.PackageDetailResponse}
// @Failure      404 {object} dto.ErrorResponse "Package not found"
// @Router       /api/packages/{id} [get]
func (h *Handler) GetPackage(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id := c.Param("id")

	var (
		pkg       *model.TourPackage
		itinerary *model.Itinerary
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		pkg, err = h.catalog.Get(ctx, id)
		return err
	})
	if h.itineraries != nil {
		g.Go(func() error {
			it, err := h.itineraries.Get(ctx, id)
			if errors.Is(err, service.ErrItineraryNotFound) {
				return nil
			}
			itinerary = it
			return err
		})
	}
	if err := g.Wait(); err != nil {
		builder.Fail(err)
		return
	}

	builder.SuccessOK(dto.PackageDetailResponse{
		Package:   dto.NewPackageCard(*pkg),
		Itinerary: itinerary,
	})
}

// GetSuggestions handles GET /api/packages/:id/suggestions requests.
//
// @Summary      Related packages
// @Description  Returns packages sharing the destination or category of the given package.
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Package ID"
// @Param        limit query int false "Maximum results" minimum(1) maximum(12)
// @Success      200 {object} dto.SuccessResponse{data=[]dto.PackageCard}
// @Failure      404 {object} dto.ErrorResponse "Package not found"
// @Router       /api/packages/{id}/suggestions [get]
func (h *Handler) GetSuggestions(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := service.DefaultSuggestionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			builder.Fail(&dto.ValidationError{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = min(n, maxSuggestionLimit)
	}

	pkgs, err := h.catalog.Suggestions(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.NewPackageCards(pkgs))
}

// GetItinerary handles GET /api/packages/:id/itinerary requests.
//
// @Summary      Package itinerary
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Package ID"
// @Success      200 {object} dto.SuccessResponse{data=model.Itinerary}
// @Failure      404 {object} dto.ErrorResponse "Itinerary not found"
// @Router       /api/packages/{id}/itinerary [get]
func (h *Handler) GetItinerary(c *gin.Context) {
	builder := NewResponseBuilder(c)
	if h.itineraries == nil {
		builder.Fail(service.ErrItineraryNotFound)
		return
	}

	it, err := h.itineraries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(it)
}

// ListCategories handles GET /api/categories requests.
//
// @Summary      List categories
// @Description  Lists the categories in the current catalog with their URL slugs and package counts.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]catalog.Category}
// @Router       /api/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.catalog.Categories(c.Request.Context()))
}

// BrowseCategory handles GET /api/categories/:slug requests.
//
// @Summary      Browse one category
// @Description  Resolves the slug to its category label and browses the catalog with that category applied. Other query filters still apply.
// @Tags         Catalog
// @Produce      json
// @Param        slug path string true "Category slug" example(beach-island)
// @Param        sort query string false "Sort key"
// @Param        page query int false "Page number"
// @Success      200 {object} dto.SuccessResponse{data=dto.BrowseResponse}
// @Failure      404 {object} dto.ErrorResponse "Unknown category"
// @Router       /api/categories/{slug} [get]
func (h *Handler) BrowseCategory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	label, err := h.catalog.ResolveCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		builder.Fail(err)
		return
	}

	q, err := BindQuery[dto.BrowseQuery](c)
	if err != nil {
		builder.BindError(err)
		return
	}
	q.Category = label

	resp, err := h.catalog.Browse(c.Request.Context(), *q)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(resp)
}

// ListDestinations handles GET /api/destinations requests.
//
// @Summary      List destinations
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]string}
// @Router       /api/destinations [get]
func (h *Handler) ListDestinations(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.catalog.Destinations(c.Request.Context()))
}

// ListTrending handles GET /api/trending requests.
//
// @Summary      Trending destinations
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.TrendingDestination}
// @Router       /api/trending [get]
func (h *Handler) ListTrending(c *gin.Context) {
	builder := NewResponseBuilder(c)
	if h.trending == nil {
		builder.SuccessOK([]model.TrendingDestination{})
		return
	}

	items, err := h.trending.List(c.Request.Context(), true)
	if err != nil {
		builder.Fail(err)
		return
	}
	if items == nil {
		items = []model.TrendingDestination{}
	}
	builder.SuccessOK(items)
}
