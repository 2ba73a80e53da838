// Package service contains the application logic of the tour package service.
package service

import "errors"

var (
	// ErrPackageNotFound is returned when no package in the current snapshot
	// or the managed collection has the requested ID.
	ErrPackageNotFound = errors.New("package not found")
	// ErrItineraryNotFound is returned when a package has no itinerary.
	ErrItineraryNotFound = errors.New("itinerary not found")
	// ErrTrendingNotFound is returned for an unknown trending destination ID.
	ErrTrendingNotFound = errors.New("trending destination not found")
	// ErrCategoryNotFound is returned for a slug that matches no category.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrConflict is returned when a write collides with an existing record.
	ErrConflict = errors.New("resource already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a token is malformed, forged or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrNoSource is returned by Refresh when neither an upstream nor a seed
	// source is configured.
	ErrNoSource = errors.New("no catalog source configured")
)
