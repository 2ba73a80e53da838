package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/repository"
)

// ItineraryService manages per-package day plans.
type ItineraryService interface {
	Get(ctx context.Context, packageID string) (*model.Itinerary, error)
	Save(ctx context.Context, req dto.ItineraryRequest) (*model.Itinerary, error)
	Delete(ctx context.Context, packageID string) error
}

// ItineraryServiceImpl implements ItineraryService.
type ItineraryServiceImpl struct {
	repo     repository.ItinerariesRepositoryInterface
	packages PackageLookup
}

// NewItineraryService creates an itinerary service. When packages is set,
// itineraries can only be saved for packages in the live catalog.
func NewItineraryService(repo repository.ItinerariesRepositoryInterface, packages PackageLookup) ItineraryService {
	return &ItineraryServiceImpl{repo: repo, packages: packages}
}

func (s *ItineraryServiceImpl) Get(ctx context.Context, packageID string) (*model.Itinerary, error) {
	it, err := s.repo.FindByPackageID(ctx, packageID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItineraryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find itinerary for %s: %w", packageID, err)
	}
	return it, nil
}

// Save replaces the itinerary of req.PackageID. Days are stored in day order.
func (s *ItineraryServiceImpl) Save(ctx context.Context, req dto.ItineraryRequest) (*model.Itinerary, error) {
	if s.packages != nil {
		if _, err := s.packages.Get(ctx, req.PackageID); err != nil {
			return nil, ErrPackageNotFound
		}
	}

	days := make([]model.ItineraryDay, len(req.Days))
	seen := make(map[int]bool, len(req.Days))
	for i, d := range req.Days {
		if seen[d.Day] {
			return nil, &dto.ValidationError{Field: "days", Message: fmt.Sprintf("day %d appears more than once", d.Day)}
		}
		seen[d.Day] = true
		days[i] = model.ItineraryDay{
			Day:         d.Day,
			Title:       d.Title,
			Description: d.Description,
			Meals:       d.Meals,
			Stay:        d.Stay,
		}
	}
	slices.SortFunc(days, func(a, b model.ItineraryDay) int {
		return cmp.Compare(a.Day, b.Day)
	})

	it := &model.Itinerary{
		PackageID:  req.PackageID,
		Days:       days,
		Inclusions: req.Inclusions,
		Exclusions: req.Exclusions,
	}
	if err := s.repo.Upsert(ctx, it); err != nil {
		return nil, fmt.Errorf("save itinerary for %s: %w", req.PackageID, err)
	}
	return it, nil
}

func (s *ItineraryServiceImpl) Delete(ctx context.Context, packageID string) error {
	err := s.repo.DeleteByPackageID(ctx, packageID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrItineraryNotFound
	}
	return err
}
