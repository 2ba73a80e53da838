package http

import (
	"github.com/gin-gonic/gin"
)

// AdminRoutes registers the back-office routes.
type AdminRoutes struct {
	handler *AdminHandler
}

// NewAdminRoutes creates a new AdminRoutes instance.
func NewAdminRoutes(handler *AdminHandler) *AdminRoutes {
	return &AdminRoutes{handler: handler}
}

// RegisterRoutes registers the admin routes on rg, which the caller has
// already protected. Routes whose service is not configured are skipped.
func (r *AdminRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	h := r.handler

	if h.packages != nil {
		packages := rg.Group("/packages")
		{
			packages.GET("", h.ListPackages)
			packages.POST("", h.CreatePackage)
			packages.PUT("/:id", h.UpdatePackage)
			packages.DELETE("/:id", h.DeletePackage)
		}
	}

	if h.itineraries != nil {
		rg.PUT("/itineraries", h.SaveItinerary)
		rg.DELETE("/itineraries/:id", h.DeleteItinerary)
	}

	if h.trending != nil {
		trending := rg.Group("/trending")
		{
			trending.GET("", h.ListTrending)
			trending.POST("", h.CreateTrending)
			trending.PUT("/:id", h.UpdateTrending)
			trending.DELETE("/:id", h.DeleteTrending)
		}
	}

	if h.leads != nil {
		rg.GET("/leads", h.ListLeads)
	}
	if h.logs != nil {
		rg.GET("/logs", h.ListLogs)
	}
	if h.catalog != nil {
		rg.POST("/catalog/refresh", h.RefreshCatalog)
	}
}
