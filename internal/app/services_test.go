package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/events"
	"github.com/guttosm/tour-package-service/internal/service"
)

func TestInitializeServices_NoSource(t *testing.T) {
	cfg := testConfig("")

	svc := InitializeServices(cfg, nil, events.NewBus())
	defer svc.Catalog.Close()

	require.NotNil(t, svc.Catalog)
	assert.Nil(t, svc.UpstreamBreaker)
	assert.Nil(t, svc.Leads)
	assert.Nil(t, svc.Packages)
	assert.Nil(t, svc.Auth)
	assert.ErrorIs(t, svc.Catalog.Refresh(context.Background()), service.ErrNoSource)
}

func TestInitializeServices_SeedFile(t *testing.T) {
	cfg := testConfig(writeSeedFile(t, seedPackages))

	svc := InitializeServices(cfg, nil, events.NewBus())
	defer svc.Catalog.Close()

	require.NoError(t, svc.Catalog.Refresh(context.Background()))

	snap := svc.Catalog.Snapshot()
	assert.Equal(t, uint64(1), snap.Version)
	require.Len(t, snap.Packages, 2)
	assert.Equal(t, model.SourceSeed, snap.Packages[0].Source)
	assert.InDelta(t, 980, snap.Packages[1].Price, 0.001)
}

func TestInitializeServices_UpstreamWithSeedFallback(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantSource string
	}{
		{
			name:       "envelope from upstream",
			status:     http.StatusOK,
			body:       `{"data": [{"id": "lisbon-4", "title": "Lisbon Weekend", "price": 450}]}`,
			wantSource: model.SourceUpstream,
		},
		{
			name:       "upstream failure falls back to seed",
			status:     http.StatusBadGateway,
			body:       `oops`,
			wantSource: model.SourceSeed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer upstream.Close()

			cfg := testConfig(writeSeedFile(t, seedPackages))
			cfg.Catalog.SourceURL = upstream.URL

			svc := InitializeServices(cfg, nil, events.NewBus())
			defer svc.Catalog.Close()
			require.NotNil(t, svc.UpstreamBreaker)

			require.NoError(t, svc.Catalog.Refresh(context.Background()))

			snap := svc.Catalog.Snapshot()
			require.NotEmpty(t, snap.Packages)
			assert.Equal(t, tt.wantSource, snap.Packages[0].Source)
		})
	}
}

func TestInitializeServices_PublishesRefresh(t *testing.T) {
	bus := events.NewBus()
	var got []events.CatalogRefreshed
	bus.Subscribe(events.TopicCatalogRefreshed, func(_ context.Context, e events.Event) {
		got = append(got, e.Payload.(events.CatalogRefreshed))
	})

	svc := InitializeServices(testConfig(writeSeedFile(t, seedPackages)), nil, bus)
	defer svc.Catalog.Close()

	require.NoError(t, svc.Catalog.Refresh(context.Background()))
	require.NoError(t, svc.Catalog.Refresh(context.Background()))

	assert.Equal(t, []events.CatalogRefreshed{
		{Version: 1, Packages: 2},
		{Version: 2, Packages: 2},
	}, got)
}
