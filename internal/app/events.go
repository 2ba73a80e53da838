package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/events"
	"github.com/guttosm/tour-package-service/internal/middleware"
)

// subscribeEvents attaches the process-wide event handlers. sink may be
// nil. The returned func removes every subscription.
func subscribeEvents(bus *events.Bus, sink middleware.LogSink) func() {
	unsubs := []func(){
		bus.Subscribe(events.TopicCatalogRefreshed, func(_ context.Context, e events.Event) {
			refreshed, ok := e.Payload.(events.CatalogRefreshed)
			if !ok || sink == nil {
				return
			}
			sink.Log(&model.LogEntry{
				Timestamp:  e.OccurredAt.UTC(),
				Level:      "info",
				Message:    "catalog snapshot committed",
				ActionType: model.ActionCatalogRefresh,
				Fields: map[string]any{
					"version":  refreshed.Version,
					"packages": refreshed.Packages,
				},
			})
		}),
		bus.Subscribe(events.TopicLeadSubmitted, func(_ context.Context, e events.Event) {
			lead, ok := e.Payload.(events.LeadSubmitted)
			if !ok {
				return
			}
			log.Info().
				Str("reference", lead.Reference).
				Str("package_id", lead.PackageID).
				Time("occurred_at", e.OccurredAt).
				Msg("New lead awaiting follow-up")
		}),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
