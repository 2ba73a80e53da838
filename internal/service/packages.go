package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/tour-package-service/internal/catalog"
	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/events"
	"github.com/guttosm/tour-package-service/internal/repository"
)

// Package mutation actions carried in events.CatalogChanged.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// PackageLookup finds a package in the live catalog.
type PackageLookup interface {
	Get(ctx context.Context, id string) (*model.TourPackage, error)
}

// PackageService manages admin-owned packages.
type PackageService interface {
	// List returns every managed package including hidden ones.
	List(ctx context.Context) ([]model.TourPackage, error)
	// Create adds a new package. Its ID is the slug.
	Create(ctx context.Context, req dto.PackageRequest) (*model.TourPackage, error)
	// Update replaces a package. Updating an upstream package stores a
	// managed override with the same ID.
	Update(ctx context.Context, id string, req dto.PackageRequest) (*model.TourPackage, error)
	// Delete hides a package from the catalog.
	Delete(ctx context.Context, id string) error
}

// PackageServiceImpl implements PackageService.
type PackageServiceImpl struct {
	repo    repository.PackagesRepositoryInterface
	catalog PackageLookup
	bus     *events.Bus
}

// NewPackageService creates a package service. catalog and bus may be nil.
func NewPackageService(repo repository.PackagesRepositoryInterface, catalog PackageLookup, bus *events.Bus) PackageService {
	return &PackageServiceImpl{repo: repo, catalog: catalog, bus: bus}
}

func (s *PackageServiceImpl) List(ctx context.Context) ([]model.TourPackage, error) {
	return s.repo.List(ctx)
}

func (s *PackageServiceImpl) Create(ctx context.Context, req dto.PackageRequest) (*model.TourPackage, error) {
	pkg := packageFromRequest(req)
	pkg.ID = pkg.Slug
	if pkg.ID == "" {
		return nil, &dto.ValidationError{Field: "title", Message: "must contain letters or digits"}
	}

	if s.catalog != nil {
		if _, err := s.catalog.Get(ctx, pkg.ID); err == nil {
			return nil, ErrConflict
		}
	}
	if err := s.repo.Create(ctx, pkg); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create package %s: %w", pkg.ID, err)
	}

	s.publish(ctx, pkg.ID, ActionCreated)
	return pkg, nil
}

func (s *PackageServiceImpl) Update(ctx context.Context, id string, req dto.PackageRequest) (*model.TourPackage, error) {
	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	pkg := packageFromRequest(req)
	pkg.ID = id
	pkg.CreatedAt = current.CreatedAt
	if req.Active == nil {
		pkg.Active = current.Active || current.Source != model.SourceManaged
	}

	if err := s.repo.Save(ctx, pkg); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("update package %s: %w", id, err)
	}

	s.publish(ctx, id, ActionUpdated)
	return pkg, nil
}

// Delete stores the package as inactive so that an upstream twin stays
// hidden after the next refresh.
func (s *PackageServiceImpl) Delete(ctx context.Context, id string) error {
	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	hidden := *current
	hidden.Active = false
	hidden.Source = model.SourceManaged
	if err := s.repo.Save(ctx, &hidden); err != nil {
		return fmt.Errorf("delete package %s: %w", id, err)
	}

	s.publish(ctx, id, ActionDeleted)
	return nil
}

// find looks id up in the managed collection, then in the live catalog.
func (s *PackageServiceImpl) find(ctx context.Context, id string) (*model.TourPackage, error) {
	pkg, err := s.repo.FindByID(ctx, id)
	if err == nil {
		return pkg, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find package %s: %w", id, err)
	}
	if s.catalog != nil {
		if pkg, err := s.catalog.Get(ctx, id); err == nil {
			return pkg, nil
		}
	}
	return nil, ErrPackageNotFound
}

func (s *PackageServiceImpl) publish(ctx context.Context, id, action string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.TopicCatalogChanged, events.CatalogChanged{PackageID: id, Action: action})
}

func packageFromRequest(req dto.PackageRequest) *model.TourPackage {
	slug := catalog.Slugify(req.Slug)
	if slug == "" {
		slug = catalog.Slugify(req.Title)
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	category := req.Category
	if category != "" {
		category = catalog.FormatCategoryLabel(category)
	}
	return &model.TourPackage{
		Title:         req.Title,
		Slug:          slug,
		Duration:      req.Duration,
		Destination:   req.Destination,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Rating:        req.Rating,
		Category:      category,
		TourType:      req.TourType,
		Images:        req.Images,
		Highlights:    req.Highlights,
		Source:        model.SourceManaged,
		Active:        active,
	}
}
