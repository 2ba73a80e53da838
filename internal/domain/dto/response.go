package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/tour-package-service/internal/catalog"
	"github.com/guttosm/tour-package-service/internal/domain/model"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternal       = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeConflict       = "conflict"
	ErrCodeTimeout        = "timeout"
	ErrCodeUnavailable    = "service_unavailable"
	ErrCodeBadGateway     = "upstream_error"
)

// SuccessResponse wraps every successful API payload.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      any       `json:"data" swaggertype:"object"`
	Message   string    `json:"message,omitempty" example:"Catalog refreshed"`
	RequestID string    `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the error envelope.
// @Description Standardized error response
type ErrorResponse struct {
	Error     string            `json:"error" example:"invalid_request"`
	Message   string            `json:"message,omitempty" example:"price: use a range like 1000-2500 or 5000+"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates an ErrorResponse stamped with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID returns a copy carrying requestID.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus maps an HTTP status onto an error code.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	case http.StatusBadGateway:
		return ErrCodeBadGateway
	default:
		return ErrCodeInternal
	}
}

// PackageCard is a catalog entry with presentation fields derived from the package.
// @Description Tour package card
type PackageCard struct {
	model.TourPackage
	DurationLabel   string `json:"duration_label" example:"5 Days, 4 Nights"`
	DurationDays    int    `json:"duration_days" example:"5"`
	DiscountPercent int    `json:"discount_percent,omitempty" example:"19"`
} // @name PackageCard

// NewPackageCard derives the presentation fields for pkg.
func NewPackageCard(pkg model.TourPackage) PackageCard {
	return PackageCard{
		TourPackage:     pkg,
		DurationLabel:   catalog.FormatDuration(pkg.Duration),
		DurationDays:    catalog.ParseDurationDays(pkg.Duration),
		DiscountPercent: pkg.DiscountPercent(),
	}
}

// NewPackageCards maps pkgs onto cards, never returning nil.
func NewPackageCards(pkgs []model.TourPackage) []PackageCard {
	cards := make([]PackageCard, len(pkgs))
	for i, p := range pkgs {
		cards[i] = NewPackageCard(p)
	}
	return cards
}

// Pagination describes the page returned in a BrowseResponse.
type Pagination struct {
	Page       int                  `json:"page" example:"1"`
	PageSize   int                  `json:"page_size" example:"6"`
	TotalItems int                  `json:"total_items" example:"7"`
	TotalPages int                  `json:"total_pages" example:"2"`
	Strip      []catalog.PageMarker `json:"strip"`
} // @name Pagination

// AppliedFilters echoes the effective filters and sort back to the client.
type AppliedFilters struct {
	Destination string  `json:"destination" example:"all"`
	Price       string  `json:"price" example:"1000-2500"`
	Duration    string  `json:"duration" example:"all"`
	Rating      float64 `json:"rating" example:"0"`
	Category    string  `json:"category" example:"all"`
	TourType    string  `json:"tour_type" example:"all"`
	Sort        string  `json:"sort" example:"recommended"`
} // @name AppliedFilters

// NewAppliedFilters renders sel and key using the UI sentinels.
func NewAppliedFilters(sel catalog.Selection, key catalog.SortKey) AppliedFilters {
	orAll := func(s string) string {
		if s == "" {
			return catalog.AllSentinel
		}
		return s
	}
	return AppliedFilters{
		Destination: orAll(sel.Destination),
		Price:       sel.Price.String(),
		Duration:    sel.Duration.String(),
		Rating:      sel.MinRating,
		Category:    orAll(sel.Category),
		TourType:    orAll(sel.TourType),
		Sort:        string(key),
	}
}

// BrowseResponse is one page of the filtered, sorted catalog.
// @Description One page of catalog results
type BrowseResponse struct {
	Items       []PackageCard  `json:"items"`
	Pagination  Pagination     `json:"pagination"`
	Filters     AppliedFilters `json:"filters"`
	Version     uint64         `json:"catalog_version" example:"3"`
	RefreshedAt time.Time      `json:"refreshed_at"`
} // @name BrowseResponse

// PackageDetailResponse is a single package with optional itinerary.
type PackageDetailResponse struct {
	Package   PackageCard      `json:"package"`
	Itinerary *model.Itinerary `json:"itinerary,omitempty"`
} // @name PackageDetailResponse

// LeadResponse acknowledges a lead submission.
type LeadResponse struct {
	Reference string    `json:"reference" example:"TRV-8F3A2C1D"`
	Status    string    `json:"status" example:"new"`
	CreatedAt time.Time `json:"created_at"`
} // @name LeadResponse

// ListResponse is a generic paged admin listing.
type ListResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
