package events

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe(TopicCatalogChanged, func(_ context.Context, e Event) {
		got = append(got, "first:"+e.Payload.(CatalogChanged).PackageID)
	})
	bus.Subscribe(TopicCatalogChanged, func(_ context.Context, e Event) {
		got = append(got, "second:"+e.Payload.(CatalogChanged).Action)
	})
	bus.Subscribe(TopicLeadSubmitted, func(context.Context, Event) {
		got = append(got, "unrelated")
	})

	bus.Publish(context.Background(), TopicCatalogChanged, CatalogChanged{PackageID: "p1", Action: "update"})

	assert.Equal(t, []string{"first:p1", "second:update"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0

	unsubscribe := bus.Subscribe(TopicCatalogRefreshed, func(context.Context, Event) { calls++ })
	other := bus.Subscribe(TopicCatalogRefreshed, func(context.Context, Event) {})
	assert.Equal(t, 2, bus.Subscribers(TopicCatalogRefreshed))

	unsubscribe()
	unsubscribe()
	bus.Publish(context.Background(), TopicCatalogRefreshed, CatalogRefreshed{Version: 1})

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, bus.Subscribers(TopicCatalogRefreshed))
	other()
	assert.Equal(t, 0, bus.Subscribers(TopicCatalogRefreshed))
}

func TestBus_PanickingHandlerDoesNotStopDelivery(t *testing.T) {
	bus := NewBus()
	delivered := false

	bus.Subscribe(TopicLeadSubmitted, func(context.Context, Event) { panic("broken subscriber") })
	bus.Subscribe(TopicLeadSubmitted, func(context.Context, Event) { delivered = true })

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), TopicLeadSubmitted, LeadSubmitted{Reference: "TRV-1"})
	})
	assert.True(t, delivered)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	assert.NotPanics(t, func() {
		NewBus().Publish(context.Background(), TopicCatalogChanged, nil)
	})
}

func TestBus_ConcurrentUse(t *testing.T) {
	bus := NewBus()
	var mu sync.Mutex
	count := 0

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe(TopicCatalogChanged, func(context.Context, Event) {
				mu.Lock()
				count++
				mu.Unlock()
			})
		}()
		go func() {
			defer wg.Done()
			bus.Publish(context.Background(), TopicCatalogChanged, CatalogChanged{})
		}()
	}
	wg.Wait()

	mu.Lock()
	before := count
	mu.Unlock()
	bus.Publish(context.Background(), TopicCatalogChanged, CatalogChanged{})
	assert.Equal(t, before+20, count)
}
