package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/tour-package-service/internal/catalog"
	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/events"
	"github.com/guttosm/tour-package-service/internal/metrics"
	"github.com/guttosm/tour-package-service/internal/repository"
	"github.com/guttosm/tour-package-service/internal/service/cache"
	"github.com/guttosm/tour-package-service/internal/source"
)

// DefaultSuggestionLimit is the number of related packages shown on a detail page.
const DefaultSuggestionLimit = 4

// Snapshot is an immutable view of the merged catalog. Packages holds
// only active packages in merge order.
type Snapshot struct {
	Packages    []model.TourPackage
	Version     uint64
	RefreshedAt time.Time

	index    map[string]int
	resolver *catalog.Resolver
}

func newSnapshot(pkgs []model.TourPackage, version uint64, at time.Time) *Snapshot {
	index := make(map[string]int, len(pkgs))
	labels := make([]string, 0, len(pkgs))
	for i, p := range pkgs {
		index[p.ID] = i
		if p.Category != "" {
			labels = append(labels, p.Category)
		}
	}
	return &Snapshot{
		Packages:    pkgs,
		Version:     version,
		RefreshedAt: at,
		index:       index,
		resolver:    catalog.NewResolver(labels),
	}
}

// CatalogService serves the browsable package catalog.
type CatalogService interface {
	// Browse filters, sorts and paginates the current snapshot.
	Browse(ctx context.Context, q dto.BrowseQuery) (*dto.BrowseResponse, error)
	// Get returns an active package by ID.
	Get(ctx context.Context, id string) (*model.TourPackage, error)
	// Suggestions returns up to limit packages related to id.
	Suggestions(ctx context.Context, id string, limit int) ([]model.TourPackage, error)
	// Categories lists the categories present in the snapshot.
	Categories(ctx context.Context) []catalog.Category
	// ResolveCategory maps a category slug onto its label.
	ResolveCategory(ctx context.Context, slug string) (string, error)
	// Destinations lists the distinct destinations in the snapshot.
	Destinations(ctx context.Context) []string
	// Refresh reloads the snapshot from its sources.
	Refresh(ctx context.Context) error
	// Snapshot returns the current snapshot.
	Snapshot() *Snapshot
	// Run refreshes every interval until ctx is done.
	Run(ctx context.Context, interval time.Duration)
}

// CatalogServiceImpl merges upstream and managed packages into snapshots
// and answers catalog queries from the latest committed one.
type CatalogServiceImpl struct {
	upstream source.Fetcher
	seed     source.Fetcher
	managed  repository.PackagesRepositoryInterface
	cache    cache.CacheWithMetrics[*dto.BrowseResponse]
	bus      *events.Bus
	pageSize int

	epoch    source.Epoch
	mu       sync.RWMutex
	snapshot *Snapshot
	version  uint64
	unsub    func()

	refreshes sync.WaitGroup
}

// CatalogOption configures a CatalogServiceImpl.
type CatalogOption func(*CatalogServiceImpl)

// WithUpstream sets the remote package list.
func WithUpstream(f source.Fetcher) CatalogOption {
	return func(s *CatalogServiceImpl) { s.upstream = f }
}

// WithSeed sets a fallback list used when the upstream is absent or failing.
func WithSeed(f source.Fetcher) CatalogOption {
	return func(s *CatalogServiceImpl) { s.seed = f }
}

// WithManagedPackages overlays admin-managed packages on the upstream list.
func WithManagedPackages(repo repository.PackagesRepositoryInterface) CatalogOption {
	return func(s *CatalogServiceImpl) { s.managed = repo }
}

// WithBrowseCache memoizes browse pages.
func WithBrowseCache(c cache.CacheWithMetrics[*dto.BrowseResponse]) CatalogOption {
	return func(s *CatalogServiceImpl) { s.cache = c }
}

// WithEventBus subscribes the service to catalog.changed and publishes
// catalog.refreshed after each commit.
func WithEventBus(bus *events.Bus) CatalogOption {
	return func(s *CatalogServiceImpl) { s.bus = bus }
}

// WithPageSize overrides catalog.DefaultPageSize.
func WithPageSize(n int) CatalogOption {
	return func(s *CatalogServiceImpl) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewCatalogService creates a catalog service with an empty snapshot.
func NewCatalogService(opts ...CatalogOption) *CatalogServiceImpl {
	s := &CatalogServiceImpl{pageSize: catalog.DefaultPageSize}
	for _, opt := range opts {
		opt(s)
	}
	s.snapshot = newSnapshot(nil, 0, time.Time{})

	if s.bus != nil {
		s.unsub = s.bus.Subscribe(events.TopicCatalogChanged, s.onCatalogChanged)
	}
	return s
}

// Close detaches the service from the event bus, waits for refreshes
// started by catalog.changed events and stops the browse cache.
func (s *CatalogServiceImpl) Close() {
	if s.unsub != nil {
		s.unsub()
	}
	s.refreshes.Wait()
	if s.cache != nil {
		s.cache.Stop()
	}
}

func (s *CatalogServiceImpl) onCatalogChanged(ctx context.Context, e events.Event) {
	changed, _ := e.Payload.(events.CatalogChanged)
	// Handlers run on the publisher's goroutine; refresh with a fresh
	// context so the admin request finishing does not cancel it.
	s.refreshes.Add(1)
	go func() {
		defer s.refreshes.Done()
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Minute)
		defer cancel()
		if err := s.Refresh(refreshCtx); err != nil {
			log.Warn().Err(err).
				Str("package_id", changed.PackageID).
				Str("action", changed.Action).
				Msg("catalog refresh after change failed")
		}
	}()
}

// Snapshot returns the current snapshot. Callers must not modify it.
func (s *CatalogServiceImpl) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Refresh loads the upstream (or seed) list and the managed overlay
// concurrently and commits the merge. A refresh that began before a newer
// one finishes is discarded. On failure the previous snapshot stays live.
func (s *CatalogServiceImpl) Refresh(ctx context.Context) error {
	if s.upstream == nil && s.seed == nil && s.managed == nil {
		return ErrNoSource
	}
	token := s.epoch.Begin()

	var base, managed []model.TourPackage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pkgs, err := s.loadBase(gctx)
		base = pkgs
		return err
	})
	if s.managed != nil {
		g.Go(func() error {
			pkgs, err := s.managed.List(gctx)
			if err != nil {
				return fmt.Errorf("load managed packages: %w", err)
			}
			managed = pkgs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	merged := mergePackages(base, managed)
	committed := s.epoch.Commit(token, func() {
		s.mu.Lock()
		s.version++
		s.snapshot = newSnapshot(merged, s.version, time.Now().UTC())
		s.mu.Unlock()
	})
	if !committed {
		log.Debug().Uint64("token", token).Msg("discarding superseded catalog refresh")
		return nil
	}

	snap := s.Snapshot()
	if s.cache != nil {
		s.cache.Clear()
	}
	metrics.RecordSnapshot(len(snap.Packages), snap.RefreshedAt)
	log.Info().
		Uint64("version", snap.Version).
		Int("packages", len(snap.Packages)).
		Int("managed", len(managed)).
		Msg("catalog snapshot committed")

	if s.bus != nil {
		s.bus.Publish(ctx, events.TopicCatalogRefreshed, events.CatalogRefreshed{
			Version:  snap.Version,
			Packages: len(snap.Packages),
		})
	}
	return nil
}

// loadBase fetches the upstream list, falling back to the seed file.
func (s *CatalogServiceImpl) loadBase(ctx context.Context) ([]model.TourPackage, error) {
	if s.upstream != nil {
		pkgs, err := s.upstream.FetchPackages(ctx)
		if err == nil {
			return pkgs, nil
		}
		if s.seed == nil || errors.Is(err, context.Canceled) {
			return nil, err
		}
		log.Warn().Err(err).Msg("upstream package list unavailable, using seed catalog")
	}
	if s.seed != nil {
		return s.seed.FetchPackages(ctx)
	}
	return nil, nil
}

// mergePackages overlays managed on base by ID. Managed packages replace
// their upstream twin in place; new ones are appended. Inactive managed
// packages hide their twin.
func mergePackages(base, managed []model.TourPackage) []model.TourPackage {
	overrides := make(map[string]model.TourPackage, len(managed))
	for _, m := range managed {
		overrides[m.ID] = m
	}

	out := make([]model.TourPackage, 0, len(base)+len(managed))
	seen := make(map[string]bool, len(base))
	for _, p := range base {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		if m, ok := overrides[p.ID]; ok {
			if m.Active {
				out = append(out, m)
			}
			continue
		}
		out = append(out, p)
	}
	for _, m := range managed {
		if !seen[m.ID] && m.Active {
			seen[m.ID] = true
			out = append(out, m)
		}
	}
	return out
}

// Browse answers a catalog page request.
func (s *CatalogServiceImpl) Browse(ctx context.Context, q dto.BrowseQuery) (*dto.BrowseResponse, error) {
	sel, err := q.Selection()
	if err != nil {
		return nil, err
	}
	key := q.SortKey()
	state := catalog.NewPaginationState(s.pageSize)
	if q.PageSize > 0 {
		state.PageSize = q.PageSize
	}
	if q.Page > 0 {
		state.Page = q.Page
	}

	snap := s.Snapshot()
	cacheKey := func(page int) string {
		return fmt.Sprintf("v%d|%s|%s|%d|%d", snap.Version, sel.Key(), key, page, state.PageSize)
	}
	if cached, ok := s.cachedPage(cacheKey(state.Page)); ok {
		metrics.RecordBrowse(string(key), true, 0, cached.Pagination.TotalItems)
		return cached, nil
	}

	start := time.Now()
	ordered := catalog.Apply(snap.Packages, sel, key)
	requested := state.Page
	state.Clamp(len(ordered))
	// Entries are stored under the clamped page only, so out-of-range
	// pages share the entry of the page they clamp to.
	if state.Page != requested {
		if cached, ok := s.cachedPage(cacheKey(state.Page)); ok {
			metrics.RecordBrowse(string(key), true, time.Since(start), cached.Pagination.TotalItems)
			return cached, nil
		}
	}
	page := catalog.Paginate(ordered, state.PageSize, state.Page)
	metrics.RecordBrowse(string(key), false, time.Since(start), page.TotalItems)

	resp := &dto.BrowseResponse{
		Items: dto.NewPackageCards(page.Items),
		Pagination: dto.Pagination{
			Page:       page.CurrentPage,
			PageSize:   page.PageSize,
			TotalItems: page.TotalItems,
			TotalPages: page.TotalPages,
			Strip:      page.Strip,
		},
		Filters:     dto.NewAppliedFilters(sel, key),
		Version:     snap.Version,
		RefreshedAt: snap.RefreshedAt,
	}
	if s.cache != nil {
		s.cache.Set(cacheKey(state.Page), resp)
		m := s.cache.Metrics()
		metrics.UpdateCacheMetrics(m.Size, m.Capacity)
	}
	return resp, nil
}

func (s *CatalogServiceImpl) cachedPage(key string) (*dto.BrowseResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

// Get returns the active package with id.
func (s *CatalogServiceImpl) Get(_ context.Context, id string) (*model.TourPackage, error) {
	snap := s.Snapshot()
	i, ok := snap.index[id]
	if !ok {
		return nil, ErrPackageNotFound
	}
	pkg := snap.Packages[i]
	return &pkg, nil
}

// Suggestions ranks packages sharing the category or destination of id by
// rating. The package itself is never suggested.
func (s *CatalogServiceImpl) Suggestions(ctx context.Context, id string, limit int) ([]model.TourPackage, error) {
	pkg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	snap := s.Snapshot()
	related := make([]model.TourPackage, 0, limit)
	for _, p := range snap.Packages {
		if p.ID == pkg.ID {
			continue
		}
		sameCategory := pkg.Category != "" && catalog.MatchCategory(&p, pkg.Category)
		sameDestination := pkg.Destination != "" && catalog.MatchDestination(&p, pkg.Destination)
		if sameCategory || sameDestination {
			related = append(related, p)
		}
	}
	catalog.Sort(related, catalog.SortRatingDesc)
	if len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// Categories lists categories with package counts, sorted by label.
func (s *CatalogServiceImpl) Categories(_ context.Context) []catalog.Category {
	return s.Snapshot().resolver.Categories()
}

// ResolveCategory returns the label for slug, or ErrCategoryNotFound when
// no package carries that category.
func (s *CatalogServiceImpl) ResolveCategory(_ context.Context, slug string) (string, error) {
	label, known := s.Snapshot().resolver.Resolve(slug)
	if !known {
		return "", ErrCategoryNotFound
	}
	return label, nil
}

// Destinations lists distinct destinations, sorted case-insensitively.
func (s *CatalogServiceImpl) Destinations(_ context.Context) []string {
	snap := s.Snapshot()
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range snap.Packages {
		d := strings.TrimSpace(p.Destination)
		k := strings.ToLower(d)
		if d == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out
}

// Run performs an initial refresh and then one every interval.
func (s *CatalogServiceImpl) Run(ctx context.Context, interval time.Duration) {
	if err := s.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("initial catalog refresh failed")
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Msg("periodic catalog refresh failed, serving previous snapshot")
			}
		}
	}
}
