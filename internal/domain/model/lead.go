package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead statuses.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusClosed    = "closed"
)

// Lead is an inquiry submitted through the website contact or package forms.
type Lead struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference   string             `bson:"reference" json:"reference"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PackageID   string             `bson:"package_id,omitempty" json:"package_id,omitempty"`
	Destination string             `bson:"destination,omitempty" json:"destination,omitempty"`
	TravelDate  *time.Time         `bson:"travel_date,omitempty" json:"travel_date,omitempty"`
	Travelers   int                `bson:"travelers,omitempty" json:"travelers,omitempty"`
	Message     string             `bson:"message,omitempty" json:"message,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Locale      string             `bson:"locale,omitempty" json:"locale,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// LeadQueryOptions filters the admin lead listing.
type LeadQueryOptions struct {
	Status string
	Limit  int
	Skip   int
}
