// Package dto defines the HTTP request and response shapes.
package dto

import (
	"strings"
	"time"

	"github.com/guttosm/tour-package-service/internal/catalog"
)

// MaxPageSize caps the page_size query parameter.
const MaxPageSize = 48

// BrowseQuery carries the catalog filter, sort and page query parameters.
//
// @Description Catalog browse query
type BrowseQuery struct {
	Destination string  `form:"destination" example:"goa"`
	Price       string  `form:"price" binding:"omitempty,bracket" example:"1000-2500"`
	Duration    string  `form:"duration" binding:"omitempty,bracket" example:"4-7"`
	Rating      float64 `form:"rating" binding:"omitempty,gte=0,lte=5" example:"4"`
	Category    string  `form:"category" example:"Beach & Island"`
	TourType    string  `form:"tour_type" example:"Group"`
	Sort        string  `form:"sort" binding:"omitempty,sortkey" example:"price-asc"`
	Page        int     `form:"page" binding:"omitempty,gte=1" example:"1"`
	PageSize    int     `form:"page_size" binding:"omitempty,gte=1,lte=48" example:"6"`
} // @name BrowseQuery

// Selection converts the query into a catalog selection. Bracket strings
// are validated at binding time, so errors here mean the validators were
// not registered.
func (q *BrowseQuery) Selection() (catalog.Selection, error) {
	price, err := catalog.ParseBracket(q.Price)
	if err != nil {
		return catalog.Selection{}, &ValidationError{Field: "price", Message: err.Error()}
	}
	duration, err := catalog.ParseBracket(q.Duration)
	if err != nil {
		return catalog.Selection{}, &ValidationError{Field: "duration", Message: err.Error()}
	}
	return catalog.Selection{
		MinRating:   q.Rating,
		Price:       price,
		Duration:    duration,
		Destination: q.Destination,
		Category:    q.Category,
		TourType:    q.TourType,
	}, nil
}

// SortKey returns the requested order, defaulting to recommended.
func (q *BrowseQuery) SortKey() catalog.SortKey {
	k, _ := catalog.ParseSortKey(q.Sort)
	return k
}

// PackageRequest is the admin create/update body for a managed package.
//
// @Description Managed tour package
type PackageRequest struct {
	Title         string   `json:"title" binding:"required,min=3,max=120" example:"Goa Beach Escape"`
	Slug          string   `json:"slug,omitempty" example:"goa-beach-escape"`
	Duration      string   `json:"duration" binding:"required" example:"4N/5D"`
	Destination   string   `json:"destination" binding:"required" example:"Goa, India"`
	Price         float64  `json:"price" binding:"gte=0" example:"1299"`
	OriginalPrice float64  `json:"original_price,omitempty" binding:"omitempty,gte=0" example:"1599"`
	Rating        float64  `json:"rating" binding:"gte=0,lte=5" example:"4.6"`
	Category      string   `json:"category,omitempty" example:"Beach & Island"`
	TourType      string   `json:"tour_type,omitempty" example:"Group"`
	Images        []string `json:"images,omitempty" binding:"omitempty,dive,url"`
	Highlights    []string `json:"highlights,omitempty"`
	Active        *bool    `json:"active,omitempty"`
} // @name PackageRequest

// ItineraryDayRequest is one day in an ItineraryRequest.
type ItineraryDayRequest struct {
	Day         int      `json:"day" binding:"required,gte=1" example:"1"`
	Title       string   `json:"title" binding:"required" example:"Arrival in Goa"`
	Description string   `json:"description,omitempty"`
	Meals       []string `json:"meals,omitempty" binding:"omitempty,dive,oneof=breakfast lunch dinner"`
	Stay        string   `json:"stay,omitempty"`
} // @name ItineraryDayRequest

// ItineraryRequest is the admin body for a package itinerary.
type ItineraryRequest struct {
	PackageID  string                `json:"package_id" binding:"required" example:"goa-beach-escape"`
	Days       []ItineraryDayRequest `json:"days" binding:"required,min=1,dive"`
	Inclusions []string              `json:"inclusions,omitempty"`
	Exclusions []string              `json:"exclusions,omitempty"`
} // @name ItineraryRequest

// TrendingRequest is the admin body for a trending destination.
type TrendingRequest struct {
	Name       string  `json:"name" binding:"required" example:"Bali"`
	Country    string  `json:"country,omitempty" example:"Indonesia"`
	ImageURL   string  `json:"image_url,omitempty" binding:"omitempty,url"`
	StartingAt float64 `json:"starting_at,omitempty" binding:"omitempty,gte=0" example:"899"`
	Rank       int     `json:"rank" binding:"gte=0" example:"1"`
	Active     *bool   `json:"active,omitempty"`
} // @name TrendingRequest

// LeadRequest is the public inquiry form body.
//
// @Description Inquiry submitted from a package page or the contact form
type LeadRequest struct {
	Name        string     `json:"name" binding:"required,min=2,max=100" example:"Priya Sharma"`
	Email       string     `json:"email" binding:"required,email" example:"priya@example.com"`
	Phone       string     `json:"phone,omitempty" binding:"omitempty,phone" example:"+91 98765 43210"`
	PackageID   string     `json:"package_id,omitempty" example:"goa-beach-escape"`
	Destination string     `json:"destination,omitempty" example:"Goa"`
	TravelDate  *time.Time `json:"travel_date,omitempty" example:"2025-12-20T00:00:00Z"`
	Travelers   int        `json:"travelers,omitempty" binding:"omitempty,gte=1,lte=50" example:"2"`
	Message     string     `json:"message,omitempty" binding:"max=2000"`
} // @name LeadRequest

// Normalize trims free-text fields and lowercases the email.
func (r *LeadRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Destination = strings.TrimSpace(r.Destination)
	r.Message = strings.TrimSpace(r.Message)
}

// Validate checks rules that struct tags cannot express.
func (r *LeadRequest) Validate() error {
	if r.TravelDate != nil && r.TravelDate.Before(time.Now().Truncate(24*time.Hour)) {
		return &ValidationError{Field: "travel_date", Message: "must not be in the past"}
	}
	return nil
}

// LeadListQuery filters the admin lead listing.
type LeadListQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=new contacted closed"`
	Page     int    `form:"page" binding:"omitempty,gte=1"`
	PageSize int    `form:"page_size" binding:"omitempty,gte=1,lte=100"`
}

// LogListQuery filters the admin audit log listing.
type LogListQuery struct {
	RequestID string `form:"request_id"`
	Level     string `form:"level" binding:"omitempty,oneof=debug info warn error"`
	Action    string `form:"action"`
	Page      int    `form:"page" binding:"omitempty,gte=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,gte=1,lte=200"`
}

// ValidationError is a single field validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
