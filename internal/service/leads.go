package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/tour-package-service/internal/catalog"
	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/events"
	"github.com/guttosm/tour-package-service/internal/metrics"
	"github.com/guttosm/tour-package-service/internal/repository"
)

const (
	leadReferencePrefix = "TRV-"
	defaultLeadPageSize = 20
	maxReferenceRetries = 3
)

// LeadService accepts and lists customer inquiries.
type LeadService interface {
	// Submit stores an inquiry and returns it with its reference.
	Submit(ctx context.Context, req dto.LeadRequest, locale string) (*model.Lead, error)
	// List returns one page of leads, newest first.
	List(ctx context.Context, q dto.LeadListQuery) (*dto.ListResponse[model.Lead], error)
}

// LeadServiceImpl implements LeadService.
type LeadServiceImpl struct {
	repo     repository.LeadsRepositoryInterface
	packages PackageLookup
	bus      *events.Bus
	now      func() time.Time
}

// NewLeadService creates a lead service. packages and bus may be nil.
func NewLeadService(repo repository.LeadsRepositoryInterface, packages PackageLookup, bus *events.Bus) LeadService {
	return &LeadServiceImpl{repo: repo, packages: packages, bus: bus, now: time.Now}
}

// NewLeadReference returns a short human-friendly reference such as "TRV-8F3A2C1D".
func NewLeadReference() string {
	id := uuid.New()
	return leadReferencePrefix + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func (s *LeadServiceImpl) Submit(ctx context.Context, req dto.LeadRequest, locale string) (*model.Lead, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		metrics.RecordLead("rejected")
		return nil, err
	}

	lead := &model.Lead{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		PackageID:   req.PackageID,
		Destination: req.Destination,
		TravelDate:  req.TravelDate,
		Travelers:   req.Travelers,
		Message:     req.Message,
		Status:      model.LeadStatusNew,
		Locale:      locale,
		CreatedAt:   s.now().UTC(),
	}
	if strings.EqualFold(lead.Destination, catalog.AllSentinel) {
		lead.Destination = ""
	}
	if lead.PackageID != "" && s.packages != nil {
		if pkg, err := s.packages.Get(ctx, lead.PackageID); err == nil && lead.Destination == "" {
			lead.Destination = pkg.Destination
		}
	}

	var err error
	for range maxReferenceRetries {
		lead.ID = primitive.NilObjectID
		lead.Reference = NewLeadReference()
		err = s.repo.Create(ctx, lead)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		metrics.RecordLead("failed")
		return nil, fmt.Errorf("store lead: %w", err)
	}
	metrics.RecordLead("accepted")

	log.Info().
		Str("reference", lead.Reference).
		Str("package_id", lead.PackageID).
		Msg("lead received")

	if s.bus != nil {
		s.bus.Publish(ctx, events.TopicLeadSubmitted, events.LeadSubmitted{
			Reference: lead.Reference,
			PackageID: lead.PackageID,
			Email:     lead.Email,
		})
	}
	return lead, nil
}

func (s *LeadServiceImpl) List(ctx context.Context, q dto.LeadListQuery) (*dto.ListResponse[model.Lead], error) {
	page := max(q.Page, 1)
	size := q.PageSize
	if size <= 0 {
		size = defaultLeadPageSize
	}
	opts := model.LeadQueryOptions{Status: q.Status, Limit: size, Skip: (page - 1) * size}

	total, err := s.repo.Count(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}
	leads, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	return &dto.ListResponse[model.Lead]{
		Items:      leads,
		Page:       page,
		PageSize:   size,
		TotalItems: int(total),
		TotalPages: catalog.TotalPages(int(total), size),
	}, nil
}
