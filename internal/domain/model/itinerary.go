package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItineraryDay is one day of a package's day-by-day plan.
type ItineraryDay struct {
	Day         int      `bson:"day" json:"day" example:"1"`
	Title       string   `bson:"title" json:"title" example:"Arrival in Goa"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Meals       []string `bson:"meals,omitempty" json:"meals,omitempty"`
	Stay        string   `bson:"stay,omitempty" json:"stay,omitempty"`
}

// Itinerary is the full day plan attached to a tour package.
type Itinerary struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PackageID  string             `bson:"package_id" json:"package_id"`
	Days       []ItineraryDay     `bson:"days" json:"days"`
	Inclusions []string           `bson:"inclusions,omitempty" json:"inclusions,omitempty"`
	Exclusions []string           `bson:"exclusions,omitempty" json:"exclusions,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// TrendingDestination is a destination promoted on the landing page.
type TrendingDestination struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name" example:"Bali"`
	Country    string             `bson:"country,omitempty" json:"country,omitempty" example:"Indonesia"`
	ImageURL   string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	StartingAt float64            `bson:"starting_at,omitempty" json:"starting_at,omitempty" example:"899"`
	Rank       int                `bson:"rank" json:"rank" example:"1"`
	Active     bool               `bson:"active" json:"active"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
