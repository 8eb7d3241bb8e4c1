package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application. Each instance owns
// its registry, so tests can build as many as they like. Methods are safe to
// call on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	UsersCreated       prometheus.Counter
	ProfilesSaved      prometheus.Counter
	ProfileCacheHits   prometheus.Counter
	ProfileCacheMisses prometheus.Counter
	ProfileRequired    *prometheus.CounterVec
	TaxCalculations    *prometheus.CounterVec
	EventsPublished    *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aarthik_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aarthik_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UsersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "aarthik_users_created_total",
			Help: "Total number of registered accounts",
		}),
		ProfilesSaved: f.NewCounter(prometheus.CounterOpts{
			Name: "aarthik_profiles_saved_total",
			Help: "Total number of profile saves",
		}),
		ProfileCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "aarthik_profile_cache_hits_total",
			Help: "Profile reads served from Redis",
		}),
		ProfileCacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "aarthik_profile_cache_misses_total",
			Help: "Profile reads that fell through to the database",
		}),
		ProfileRequired: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aarthik_profile_required_total",
			Help: "Relevant-view requests answered with needs_profile, by catalog",
		}, []string{"catalog"}),
		TaxCalculations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aarthik_tax_calculations_total",
			Help: "Tax computations by entity type",
		}, []string{"entity_type"}),
		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aarthik_events_published_total",
			Help: "Domain events handed to the broker, by outcome",
		}, []string{"outcome"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) IncrementUsersCreated() {
	if m == nil {
		return
	}
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementProfilesSaved() {
	if m == nil {
		return
	}
	m.ProfilesSaved.Inc()
}

func (m *Metrics) IncrementCacheHit() {
	if m == nil {
		return
	}
	m.ProfileCacheHits.Inc()
}

func (m *Metrics) IncrementCacheMiss() {
	if m == nil {
		return
	}
	m.ProfileCacheMisses.Inc()
}

func (m *Metrics) IncrementProfileRequired(catalog string) {
	if m == nil {
		return
	}
	m.ProfileRequired.WithLabelValues(catalog).Inc()
}

func (m *Metrics) IncrementTaxCalculations(entityType string) {
	if m == nil {
		return
	}
	m.TaxCalculations.WithLabelValues(entityType).Inc()
}

func (m *Metrics) IncrementEventsPublished(outcome string) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(outcome).Inc()
}
