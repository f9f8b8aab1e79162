// Package metrics holds the Prometheus collectors of the service. Collectors are
// registered on a private registry so tests can build as many as they like.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "marketplace"

// Metrics is the set of collectors exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	ordersCreated      prometheus.Counter
	statusChanges      *prometheus.CounterVec
	eventsFailed       prometheus.Counter
	httpRequests       *prometheus.HistogramVec
	realtimeSubs       *prometheus.GaugeVec
	realtimeDropped    prometheus.Counter
	realtimeBroadcasts prometheus.Counter
	realtimeRefresh    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders committed.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shop_status_changes_total",
			Help:      "Shop fulfillment status changes, by target status.",
		}, []string{"status"}),
		eventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_publish_failures_total",
			Help:      "Domain event batches that could not be published.",
		}),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
		realtimeSubs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_subscribers",
			Help:      "Connected realtime subscribers by topic kind.",
		}, []string{"kind"}),
		realtimeDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_frames_dropped_total",
			Help:      "Frames dropped because a subscriber was too slow.",
		}),
		realtimeBroadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_broadcasts_total",
			Help:      "Payloads broadcast to a topic.",
		}),
		realtimeRefresh: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "realtime_refresh_duration_seconds",
			Help:      "Time spent querying one realtime topic.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"kind", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ordersCreated,
		m.statusChanges,
		m.eventsFailed,
		m.httpRequests,
		m.realtimeSubs,
		m.realtimeDropped,
		m.realtimeBroadcasts,
		m.realtimeRefresh,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

// SubscriberAdded and SubscriberRemoved track realtime connections.
func (m *Metrics) SubscriberAdded(kind string) {
	m.realtimeSubs.WithLabelValues(kind).Inc()
}

func (m *Metrics) SubscriberRemoved(kind string) {
	m.realtimeSubs.WithLabelValues(kind).Dec()
}

func (m *Metrics) FrameDropped() {
	m.realtimeDropped.Inc()
}

func (m *Metrics) Broadcast() {
	m.realtimeBroadcasts.Inc()
}

// TopicRefreshed records the duration of one topic query.
func (m *Metrics) TopicRefreshed(kind string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.realtimeRefresh.WithLabelValues(kind, result).Observe(elapsed.Seconds())
}

// CountingPublisher counts domain events on their way to the wrapped publisher.
type CountingPublisher struct {
	next    ports.EventPublisher
	metrics *Metrics
}

func NewCountingPublisher(next ports.EventPublisher, m *Metrics) *CountingPublisher {
	return &CountingPublisher{next: next, metrics: m}
}

func (p *CountingPublisher) Publish(ctx context.Context, events ...order.DomainEvent) error {
	for _, e := range events {
		switch ev := e.(type) {
		case order.OrderCreated:
			p.metrics.ordersCreated.Inc()
		case order.ShopStatusChanged:
			p.metrics.statusChanges.WithLabelValues(ev.To).Inc()
		}
	}
	err := p.next.Publish(ctx, events...)
	if err != nil {
		p.metrics.eventsFailed.Inc()
	}
	return err
}
