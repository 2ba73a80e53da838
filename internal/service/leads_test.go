//go:build !integration

package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/events"
	"github.com/guttosm/tour-package-service/internal/mocks"
	"github.com/guttosm/tour-package-service/internal/repository"
)

var referencePattern = regexp.MustCompile(`^TRV-[0-9A-F]{8}$`)

func TestNewLeadReference(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		ref := NewLeadReference()
		assert.Regexp(t, referencePattern, ref)
		seen[ref] = true
	}
	assert.Greater(t, len(seen), 95)
}

func TestLeadService_Submit(t *testing.T) {
	ctx := context.Background()
	req := dto.LeadRequest{
		Name:      "  Priya Sharma ",
		Email:     "Priya@Example.com",
		PackageID: "goa",
		Travelers: 2,
	}

	t.Run("stores and announces the lead", func(t *testing.T) {
		repo := new(mocks.MockLeadsRepositoryInterface)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(l *model.Lead) bool {
			return l.Name == "Priya Sharma" &&
				l.Email == "priya@example.com" &&
				l.Destination == "Goa, India" &&
				l.Status == model.LeadStatusNew &&
				l.Locale == "pt" &&
				referencePattern.MatchString(l.Reference)
		})).Return(nil)

		bus := events.NewBus()
		var announced events.LeadSubmitted
		bus.Subscribe(events.TopicLeadSubmitted, func(_ context.Context, e events.Event) {
			announced = e.Payload.(events.LeadSubmitted)
		})

		svc := NewLeadService(repo, stubLookup{"goa": {ID: "goa", Destination: "Goa, India"}}, bus)
		lead, err := svc.Submit(ctx, req, "pt")
		require.NoError(t, err)
		assert.Equal(t, lead.Reference, announced.Reference)
		assert.Equal(t, "goa", announced.PackageID)
		repo.AssertExpectations(t)
	})

	t.Run("retries on reference collision", func(t *testing.T) {
		repo := new(mocks.MockLeadsRepositoryInterface)
		repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := NewLeadService(repo, nil, nil).Submit(ctx, req, "en")
		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("travel date in the past", func(t *testing.T) {
		r := req
		past := time.Now().AddDate(0, 0, -3)
		r.TravelDate = &past

		_, err := NewLeadService(new(mocks.MockLeadsRepositoryInterface), nil, nil).Submit(ctx, r, "en")
		var verr *dto.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "travel_date", verr.Field)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(mocks.MockLeadsRepositoryInterface)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("no primary"))

		_, err := NewLeadService(repo, nil, nil).Submit(ctx, req, "en")
		assert.ErrorContains(t, err, "store lead")
	})
}

func TestLeadService_List(t *testing.T) {
	repo := new(mocks.MockLeadsRepositoryInterface)
	opts := model.LeadQueryOptions{Status: model.LeadStatusNew, Limit: 10, Skip: 10}
	repo.On("Count", mock.Anything, opts).Return(int64(25), nil)
	repo.On("List", mock.Anything, opts).Return([]model.Lead{{Reference: "TRV-00000001"}}, nil)

	got, err := NewLeadService(repo, nil, nil).List(context.Background(), dto.LeadListQuery{Status: "new", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 25, got.TotalItems)
	assert.Equal(t, 3, got.TotalPages)
	assert.Len(t, got.Items, 1)
}
