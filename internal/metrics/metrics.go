package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers the portal's Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpDuration        prometheus.Histogram
	applicationsCreated prometheus.Counter
	transitions         *prometheus.CounterVec
	interviewsScheduled prometheus.Counter
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "placify_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status_code"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "placify_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		applicationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "placify_applications_created_total",
			Help: "Applications submitted by students.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "placify_application_transitions_total",
			Help: "Application status transitions by target status.",
		}, []string{"status"}),
		interviewsScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "placify_interviews_scheduled_total",
			Help: "Interviews scheduled by companies.",
		}),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.applicationsCreated,
		c.transitions,
		c.interviewsScheduled,
	)
	return c
}

func (c *Collector) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordApplicationCreated() {
	c.applicationsCreated.Inc()
}

func (c *Collector) RecordTransition(status string) {
	c.transitions.WithLabelValues(status).Inc()
}

func (c *Collector) RecordInterviewScheduled() {
	c.interviewsScheduled.Inc()
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
