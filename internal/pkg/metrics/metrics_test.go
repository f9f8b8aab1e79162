package metrics_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	err error
}

func (f fakePublisher) Publish(context.Context, ...order.DomainEvent) error {
	return f.err
}

func TestCountingPublisher(t *testing.T) {
	t.Run("counts events by kind", func(t *testing.T) {
		// Given a counting publisher in front of a working publisher
		m := metrics.New()
		p := metrics.NewCountingPublisher(fakePublisher{}, m)

		// When a creation and two status changes pass through
		err := p.Publish(context.Background(),
			order.OrderCreated{Number: "7KQ2M9XA1B"},
			order.ShopStatusChanged{Number: "7KQ2M9XA1B", To: "accepted"},
			order.ShopStatusChanged{Number: "7KQ2M9XA1B", To: "accepted"},
		)

		// Then the counters reflect them
		require.NoError(t, err)
		expected := `
# HELP marketplace_shop_status_changes_total Shop fulfillment status changes, by target status.
# TYPE marketplace_shop_status_changes_total counter
marketplace_shop_status_changes_total{status="accepted"} 2
`
		assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
			"marketplace_shop_status_changes_total"))
		assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP marketplace_orders_created_total Orders committed.
# TYPE marketplace_orders_created_total counter
marketplace_orders_created_total 1
`), "marketplace_orders_created_total"))
	})

	t.Run("passes failures through and counts them", func(t *testing.T) {
		m := metrics.New()
		p := metrics.NewCountingPublisher(fakePublisher{err: errors.New("down")}, m)

		err := p.Publish(context.Background(), order.OrderCreated{Number: "7KQ2M9XA1B"})

		require.Error(t, err)
		assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP marketplace_events_publish_failures_total Domain event batches that could not be published.
# TYPE marketplace_events_publish_failures_total counter
marketplace_events_publish_failures_total 1
`), "marketplace_events_publish_failures_total"))
	})
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := metrics.New()
	m.SubscriberAdded("shop")
	m.ObserveHTTP("GET", "/api/orders", 200, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `marketplace_realtime_subscribers{kind="shop"} 1`)
	assert.Contains(t, body, `marketplace_http_request_duration_seconds_count{code="200",method="GET",route="/api/orders"} 1`)
}
