package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/tour-package-service/internal/middleware"
)

// CatalogRoutes registers the public catalog routes.
type CatalogRoutes struct {
	handler *Handler
}

// NewCatalogRoutes creates a new CatalogRoutes instance.
func NewCatalogRoutes(handler *Handler) *CatalogRoutes {
	return &CatalogRoutes{handler: handler}
}

// RegisterPublicRoutes registers the browse, detail and taxonomy routes.
func (r *CatalogRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	packages := rg.Group("/packages")
	{
		packages.GET("", r.handler.BrowsePackages)
		packages.GET("/:id", r.handler.GetPackage)
		packages.GET("/:id/suggestions", r.handler.GetSuggestions)
		packages.GET("/:id/itinerary", r.handler.GetItinerary)
	}

	rg.GET("/categories", r.handler.ListCategories)
	rg.GET("/categories/:slug", r.handler.BrowseCategory)
	rg.GET("/destinations", r.handler.ListDestinations)
	rg.GET("/trending", r.handler.ListTrending)
}

// LeadRoutes registers the public inquiry route.
type LeadRoutes struct {
	handler *LeadHandler
	limiter *middleware.ShardedRateLimiter
}

// NewLeadRoutes creates a new LeadRoutes instance. Lead submissions get
// their own per-client limit when cfg.LeadRateLimit is set.
func NewLeadRoutes(handler *LeadHandler, cfg *RouterConfig) *LeadRoutes {
	r := &LeadRoutes{handler: handler}
	if cfg.LeadRateLimit > 0 {
		window := cfg.RateWindow
		if window <= 0 {
			window = defaultRateWindow
		}
		r.limiter = middleware.NewRateLimiter(cfg.LeadRateLimit, window)
	}
	return r
}

// RegisterPublicRoutes registers POST /leads.
func (r *LeadRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	if r.limiter != nil {
		rg.POST("/leads", r.limiter.RateLimit(), r.handler.Submit)
		return
	}
	rg.POST("/leads", r.handler.Submit)
}
