package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for the profile API.
type Metrics struct {
	projections     *prometheus.CounterVec
	profileMisses   prometheus.Counter
	requestDuration *prometheus.HistogramVec
	notifications   *prometheus.CounterVec
	wsConnections   prometheus.Gauge
}

var (
	defaultOnce sync.Once
	shared      *Metrics
)

// Default returns the instance registered with the global registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		shared = MustNew(prometheus.DefaultRegisterer)
	})
	return shared
}

// MustNew registers the collectors on reg. Already-registered collectors are
// reused; any other registration error panics.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wizspeek",
			Name:      "profile_projections_total",
			Help:      "Profile projections served, by the category access the viewer had.",
		}, []string{"access"}),
		profileMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wizspeek",
			Name:      "profile_not_found_total",
			Help:      "Profile lookups for users without a profile.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wizspeek",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wizspeek",
			Name:      "notifications_total",
			Help:      "Notifications dispatched by channel and outcome.",
		}, []string{"channel", "outcome"}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wizspeek",
			Subsystem: "websocket",
			Name:      "connections",
			Help:      "Open websocket connections.",
		}),
	}

	m.projections = register(reg, m.projections)
	m.profileMisses = register(reg, m.profileMisses)
	m.requestDuration = register(reg, m.requestDuration)
	m.notifications = register(reg, m.notifications)
	m.wsConnections = register(reg, m.wsConnections)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *Metrics) ObserveProjection(access string) {
	if m == nil {
		return
	}
	m.projections.WithLabelValues(access).Inc()
}

func (m *Metrics) IncProfileNotFound() {
	if m == nil {
		return
	}
	m.profileMisses.Inc()
}

func (m *Metrics) ObserveNotification(channel string, err error) {
	if m == nil {
		return
	}
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	m.notifications.WithLabelValues(channel, outcome).Inc()
}

func (m *Metrics) SetWebSocketConnections(n int) {
	if m == nil {
		return
	}
	m.wsConnections.Set(float64(n))
}

// Middleware records request latency labelled by the matched route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
