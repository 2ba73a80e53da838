package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tour-package-service/internal/catalog"
	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/i18n"
	"github.com/guttosm/tour-package-service/internal/middleware"
	"github.com/guttosm/tour-package-service/internal/service"
)

const defaultLogPageSize = 50

// RefreshResponse reports the snapshot committed by a manual refresh.
type RefreshResponse struct {
	Version  uint64 `json:"catalog_version" example:"4"`
	Packages int    `json:"packages" example:"36"`
} // @name RefreshResponse

// AdminHandler serves the back-office routes.
type AdminHandler struct {
	catalog     service.CatalogService
	packages    service.PackageService
	itineraries service.ItineraryService
	trending    service.TrendingService
	leads       service.LeadService
	logs        service.LoggingService
	audit       middleware.LogSink
}

// AdminServices groups the services behind the admin routes. Routes for
// nil services are not registered.
type AdminServices struct {
	Catalog     service.CatalogService
	Packages    service.PackageService
	Itineraries service.ItineraryService
	Trending    service.TrendingService
	Leads       service.LeadService
	Logs        service.LoggingService
}

// NewAdminHandler creates an admin handler. audit may be nil.
func NewAdminHandler(svc AdminServices, audit middleware.LogSink) *AdminHandler {
	return &AdminHandler{
		catalog:     svc.Catalog,
		packages:    svc.Packages,
		itineraries: svc.Itineraries,
		trending:    svc.Trending,
		leads:       svc.Leads,
		logs:        svc.Logs,
		audit:       audit,
	}
}

// ListPackages handles GET /api/admin/packages requests.
//
// @Summary      List managed packages
// @Description  Lists every managed package, hidden ones included.
// @Tags         Admin
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.TourPackage}
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      403 {object} dto.ErrorResponse "Forbidden"
// @Security     BearerAuth
// @Router       /api/admin/packages [get]
func (h *AdminHandler) ListPackages(c *gin.Context) {
	builder := NewResponseBuilder(c)
	pkgs, err := h.packages.List(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	if pkgs == nil {
		pkgs = []model.TourPackage{}
	}
	builder.SuccessOK(pkgs)
}

// CreatePackage handles POST /api/admin/packages requests.
//
// @Summary      Create a package
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body dto.PackageRequest true "Package"
// @Success      201 {object} dto.SuccessResponse{data=model.TourPackage}
// @Failure      400 {object} dto.ErrorResponse "Invalid package"
// @Failure      409 {object} dto.ErrorResponse "Slug already in use"
// @Security     BearerAuth
// @Router       /api/admin/packages [post]
func (h *AdminHandler) CreatePackage(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.PackageRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	pkg, err := h.packages.Create(c.Request.Context(), *req)
	if err != nil {
		builder.Fail(err)
		return
	}
	middleware.AuditLog(h.audit, c, model.ActionPackageCreated, "package created", map[string]any{"package_id": pkg.ID})
	builder.SuccessCreated(pkg)
}

// UpdatePackage handles PUT /api/admin/packages/:id requests.
//
// @Summary      Update a package
// @Description  Replaces a managed package. Updating an upstream package stores a managed override.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Package ID"
// @Param        request body dto.PackageRequest true "Package"
// @Success      200 {object} dto.SuccessResponse{data=model.TourPackage}
// @Failure      404 {object} dto.ErrorResponse "Package not found"
// @Security     BearerAuth
// @Router       /api/admin/packages/{id} [put]
func (h *AdminHandler) UpdatePackage(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.PackageRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	pkg, err := h.packages.Update(c.Request.Context(), c.Param("id"), *req)
	if err != nil {
		builder.Fail(err)
		return
	}
	middleware.AuditLog(h.audit, c, model.ActionPackageUpdated, "package updated", map[string]any{"package_id": pkg.ID})
	builder.SuccessOK(pkg)
}

// DeletePackage handles DELETE /api/admin/packages/:id requests.
//
// @Summary      Hide a package
// @Tags         Admin
// @Param        id path string true "Package ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse "Package not found"
// @Security     BearerAuth
// @Router       /api/admin/packages/{id} [delete]
func (h *AdminHandler) DeletePackage(c *gin.Context) {
	id := c.Param("id")
	if err := h.packages.Delete(c.Request.Context(), id); err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	middleware.AuditLog(h.audit, c, model.ActionPackageDeleted, "package hidden", map[string]any{"package_id": id})
	NewResponseBuilder(c).NoContent()
}

// SaveItinerary handles PUT /api/admin/itineraries requests.
//
// @Summary      Create or replace an itinerary
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body dto.ItineraryRequest true "Itinerary"
// @Success      200 {object} dto.SuccessResponse{data=model.Itinerary}
// @Failure      404 {object} dto.ErrorResponse "Package not found"
// @Security     BearerAuth
// @Router       /api/admin/itineraries [put]
func (h *AdminHandler) SaveItinerary(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.ItineraryRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	it, err := h.itineraries.Save(c.Request.Context(), *req)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(it)
}

// DeleteItinerary handles DELETE /api/admin/itineraries/:id requests.
//
// @Summary      Delete an itinerary
// @Tags         Admin
// @Param        id path string true "Package ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse "Itinerary not found"
// @Security     BearerAuth
// @Router       /api/admin/itineraries/{id} [delete]
func (h *AdminHandler) DeleteItinerary(c *gin.Context) {
	if err := h.itineraries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	NewResponseBuilder(c).NoContent()
}

// ListTrending handles GET /api/admin/trending requests.
//
// @Summary      List trending destinations
// @Description  Lists every trending destination, inactive ones included.
// @Tags         Admin
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.TrendingDestination}
// @Security     BearerAuth
// @Router       /api/admin/trending [get]
func (h *AdminHandler) ListTrending(c *gin.Context) {
	builder := NewResponseBuilder(c)
	items, err := h.trending.List(c.Request.Context(), false)
	if err != nil {
		builder.Fail(err)
		return
	}
	if items == nil {
		items = []model.TrendingDestination{}
	}
	builder.SuccessOK(items)
}

// CreateTrending handles POST /api/admin/trending requests.
//
// @Summary      Add a trending destination
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body dto.TrendingRequest true "Destination"
// @Success      201 {object} dto.SuccessResponse{data=model.TrendingDestination}
// @Security     BearerAuth
// @Router       /api/admin/trending [post]
func (h *AdminHandler) CreateTrending(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.TrendingRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	item, err := h.trending.Create(c.Request.Context(), *req)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessCreated(item)
}

// UpdateTrending handles PUT /api/admin/trending/:id requests.
//
// @Summary      Update a trending destination
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Trending destination ID"
// @Param        request body dto.TrendingRequest true "Destination"
// @Success      200 {object} dto.SuccessResponse{data=model.TrendingDestination}
// @Failure      404 {object} dto.ErrorResponse "Not found"
// @Security     BearerAuth
// @Router       /api/admin/trending/{id} [put]
func (h *AdminHandler) UpdateTrending(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.TrendingRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	item, err := h.trending.Update(c.Request.Context(), c.Param("id"), *req)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(item)
}

// DeleteTrending handles DELETE /api/admin/trending/:id requests.
//
// @Summary      Delete a trending destination
// @Tags         Admin
// @Param        id path string true "Trending destination ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse "Not found"
// @Security     BearerAuth
// @Router       /api/admin/trending/{id} [delete]
func (h *AdminHandler) DeleteTrending(c *gin.Context) {
	if err := h.trending.Delete(c.Request.Context(), c.Param("id")); err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	NewResponseBuilder(c).NoContent()
}

// ListLeads handles GET /api/admin/leads requests.
//
// @Summary      List leads
// @Tags         Admin
// @Produce      json
// @Param        status query string false "Lead status" Enums(new, contacted, closed)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size" maximum(100)
// @Success      200 {object} dto.SuccessResponse{data=dto.ListResponse[model.Lead]}
// @Security     BearerAuth
// @Router       /api/admin/leads [get]
func (h *AdminHandler) ListLeads(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := BindQuery[dto.LeadListQuery](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	resp, err := h.leads.List(c.Request.Context(), *q)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(resp)
}

// ListLogs handles GET /api/admin/logs requests.
//
// @Summary      Query audit and request logs
// @Tags         Admin
// @Produce      json
// @Param        request_id query string false "Request ID"
// @Param        level query string false "Level" Enums(debug, info, warn, error)
// @Param        action query string false "Audit action"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size" maximum(200)
// @Success      200 {object} dto.SuccessResponse{data=dto.ListResponse[model.LogEntry]}
// @Security     BearerAuth
// @Router       /api/admin/logs [get]
func (h *AdminHandler) ListLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	q, err := BindQuery[dto.LogListQuery](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	page := max(q.Page, 1)
	size := q.PageSize
	if size <= 0 {
		size = defaultLogPageSize
	}
	opts := model.LogQueryOptions{
		RequestID:  q.RequestID,
		Level:      q.Level,
		ActionType: q.Action,
		Limit:      size,
		Skip:       (page - 1) * size,
	}

	total, err := h.logs.CountLogs(c.Request.Context(), opts)
	if err != nil {
		builder.Fail(err)
		return
	}
	entries, err := h.logs.QueryLogs(c.Request.Context(), opts)
	if err != nil {
		builder.Fail(err)
		return
	}
	if entries == nil {
		entries = []model.LogEntry{}
	}

	builder.SuccessOK(dto.ListResponse[model.LogEntry]{
		Items:      entries,
		Page:       page,
		PageSize:   size,
		TotalItems: int(total),
		TotalPages: catalog.TotalPages(int(total), size),
	})
}

// RefreshCatalog handles POST /api/admin/catalog/refresh requests.
//
// @Summary      Refresh the catalog
// @Description  Reloads the upstream and managed packages and commits a new snapshot.
// @Tags         Admin
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=RefreshResponse}
// @Failure      502 {object} dto.ErrorResponse "Upstream failed"
// @Failure      503 {object} dto.ErrorResponse "No package source configured"
// @Security     BearerAuth
// @Router       /api/admin/catalog/refresh [post]
func (h *AdminHandler) RefreshCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionCatalogRefresh, "catalog refresh failed", err, nil)
		if errors.Is(err, service.ErrNoSource) {
			builder.Fail(err)
			return
		}
		builder.Error(http.StatusBadGateway, i18n.ErrKeyUpstreamFailed, err)
		return
	}

	resp := RefreshResponse{}
	if snap := h.catalog.Snapshot(); snap != nil {
		resp.Version = snap.Version
		resp.Packages = len(snap.Packages)
	}
	middleware.AuditLog(h.audit, c, model.ActionCatalogRefresh, "catalog refreshed", map[string]any{"version": resp.Version})
	builder.SuccessWithMessage(http.StatusOK, resp, i18n.SuccessKeyCatalogRefreshed)
}
