// Package metrics records what a run did against the platform: every
// remote request with its status and latency, and every claim outcome.
//
// A Collector owns a private registry (nothing is added to the default
// one). The CLI exports it once on exit with WriteTextfile, in the
// node_exporter textfile format.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
	"github.com/Rising-Edge-Group/ectf-public/pkg/regexcache"
)

// numericSegment collapses target IDs so the endpoint label stays bounded.
var numericSegment = regexcache.MustGet(`/\d+(/|$)`)

// Collector holds the run's Prometheus metrics. A nil *Collector is valid
// and records nothing.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	claimsTotal     *prometheus.CounterVec
	flagsAccepted   prometheus.Counter
	spinsTotal      prometheus.Counter
	targetsListed   prometheus.Gauge
}

// New creates a Collector with every metric registered.
func New() (*Collector, error) {
	ns := defaults.ToolName
	c := &Collector{
		registry: prometheus.NewRegistry(),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "requests_total",
				Help:      "Requests sent to the platform, by method, endpoint and status code",
			},
			[]string{"method", "endpoint", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "request_duration_seconds",
				Help:      "Platform request latency in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"method", "endpoint"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "errors_total",
				Help:      "Failed operations, by operation",
			},
			[]string{"operation"},
		),
		claimsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "claims_total",
				Help:      "Flag claims, by outcome",
			},
			[]string{"outcome"},
		),
		flagsAccepted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "flags_accepted_total",
				Help:      "Claims that awarded points",
			},
		),
		spinsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "spins_total",
				Help:      "Spin requests sent",
			},
		),
		targetsListed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "targets_listed",
				Help:      "Targets returned by the last listing",
			},
		),
	}

	collectors := []prometheus.Collector{
		c.requestsTotal,
		c.requestDuration,
		c.errorsTotal,
		c.claimsTotal,
		c.flagsAccepted,
		c.spinsTotal,
		c.targetsListed,
	}
	for _, col := range collectors {
		if err := c.registry.Register(col); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return c, nil
}

// Registry exposes the underlying registry for gathering.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ObserveRequest records one completed HTTP exchange. status 0 means the
// request failed before a response arrived.
func (c *Collector) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	endpoint := Endpoint(path)
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	c.requestsTotal.WithLabelValues(method, endpoint, code).Inc()
	c.requestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// ObserveError counts a failed operation such as "spin" or "claim".
func (c *Collector) ObserveError(operation string) {
	if c == nil {
		return
	}
	c.errorsTotal.WithLabelValues(operation).Inc()
}

// ObserveClaim counts a classified claim. outcome is the outcome's tag;
// accepted marks a claim that awarded points.
func (c *Collector) ObserveClaim(outcome string, accepted bool) {
	if c == nil {
		return
	}
	c.claimsTotal.WithLabelValues(outcome).Inc()
	if accepted {
		c.flagsAccepted.Inc()
	}
}

// ObserveSpin counts a spin request that reached the platform.
func (c *Collector) ObserveSpin() {
	if c == nil {
		return
	}
	c.spinsTotal.Inc()
}

// SetTargetsListed records the size of the last targets listing.
func (c *Collector) SetTargetsListed(n int) {
	if c == nil {
		return
	}
	c.targetsListed.Set(float64(n))
}

// WriteTextfile writes every metric to path atomically.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}

// Endpoint normalises a request path into a label value: numeric segments
// become ":id" and an empty path becomes "/".
//
//	/target/12/spin -> /target/:id/spin
func Endpoint(path string) string {
	if path == "" {
		return "/"
	}
	for numericSegment.MatchString(path) {
		path = numericSegment.ReplaceAllString(path, "/:id$1")
	}
	return path
}
