package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/repository"
)

// TrendingService manages the destinations promoted on the landing page.
type TrendingService interface {
	List(ctx context.Context, activeOnly bool) ([]model.TrendingDestination, error)
	Create(ctx context.Context, req dto.TrendingRequest) (*model.TrendingDestination, error)
	Update(ctx context.Context, id string, req dto.TrendingRequest) (*model.TrendingDestination, error)
	Delete(ctx context.Context, id string) error
}

// TrendingServiceImpl implements TrendingService.
type TrendingServiceImpl struct {
	repo repository.TrendingRepositoryInterface
}

func NewTrendingService(repo repository.TrendingRepositoryInterface) TrendingService {
	return &TrendingServiceImpl{repo: repo}
}

func (s *TrendingServiceImpl) List(ctx context.Context, activeOnly bool) ([]model.TrendingDestination, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *TrendingServiceImpl) Create(ctx context.Context, req dto.TrendingRequest) (*model.TrendingDestination, error) {
	d := trendingFromRequest(req)
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create trending destination: %w", err)
	}
	return d, nil
}

func (s *TrendingServiceImpl) Update(ctx context.Context, id string, req dto.TrendingRequest) (*model.TrendingDestination, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTrendingNotFound
	}
	current, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, trendingError(err)
	}

	d := trendingFromRequest(req)
	d.ID = oid
	d.CreatedAt = current.CreatedAt
	if req.Active == nil {
		d.Active = current.Active
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, trendingError(err)
	}
	return d, nil
}

func (s *TrendingServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrTrendingNotFound
	}
	return trendingError(s.repo.Delete(ctx, oid))
}

func trendingError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTrendingNotFound
	}
	return err
}

func trendingFromRequest(req dto.TrendingRequest) *model.TrendingDestination {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &model.TrendingDestination{
		Name:       req.Name,
		Country:    req.Country,
		ImageURL:   req.ImageURL,
		StartingAt: req.StartingAt,
		Rank:       req.Rank,
		Active:     active,
	}
}
