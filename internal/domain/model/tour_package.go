// Package model defines the core domain entities for the tour package service.
package model

import "time"

// TourPackage is a sellable trip offering shown in the catalog.
// Packages come either from the upstream package-list API or from the
// admin-managed packages collection; both decode into this type.
//
// @Description Tour package as shown in the catalog
type TourPackage struct {
	ID            string    `bson:"_id" json:"id" example:"goa-beach-escape"`
	Title         string    `bson:"title" json:"title" example:"Goa Beach Escape"`
	Slug          string    `bson:"slug,omitempty" json:"slug" example:"goa-beach-escape"`
	Duration      string    `bson:"duration" json:"duration" example:"4N/5D"`
	Destination   string    `bson:"destination" json:"destination" example:"Goa, India"`
	Price         float64   `bson:"price" json:"price" example:"1299"`
	OriginalPrice float64   `bson:"original_price,omitempty" json:"original_price,omitempty" example:"1599"`
	Rating        float64   `bson:"rating" json:"rating" example:"4.6"`
	Category      string    `bson:"category,omitempty" json:"category,omitempty" example:"Beach & Island"`
	TourType      string    `bson:"tour_type,omitempty" json:"tour_type,omitempty" example:"Group"`
	Images        []string  `bson:"images,omitempty" json:"images,omitempty"`
	Highlights    []string  `bson:"highlights,omitempty" json:"highlights,omitempty"`
	Source        string    `bson:"source,omitempty" json:"source,omitempty" example:"managed"`
	Active        bool      `bson:"active" json:"-"`
	CreatedAt     time.Time `bson:"created_at,omitempty" json:"created_at,omitzero"`
	UpdatedAt     time.Time `bson:"updated_at,omitempty" json:"updated_at,omitzero"`
}

// Package origins.
const (
	SourceUpstream = "upstream"
	SourceManaged  = "managed"
	SourceSeed     = "seed"
)

// Discount returns the saving against the original price, or 0 when the
// package is not discounted.
func (p TourPackage) Discount() float64 {
	if p.OriginalPrice <= p.Price {
		return 0
	}
	return p.OriginalPrice - p.Price
}

// DiscountPercent returns the saving as a whole percentage of the original price.
func (p TourPackage) DiscountPercent() int {
	d := p.Discount()
	if d == 0 {
		return 0
	}
	return int(d/p.OriginalPrice*100 + 0.5)
}
