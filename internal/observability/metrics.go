package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "audio_tour"

// Provider owns a private Prometheus registry with the service's collectors.
type Provider struct {
	registry *prometheus.Registry

	httpRequestCounter *prometheus.CounterVec
	httpRequestLatency *prometheus.HistogramVec
	statsCounter       *prometheus.CounterVec
	statsLatency       *prometheus.HistogramVec
	statsSegments      *prometheus.HistogramVec
}

func NewProvider() (*Provider, error) {
	registry := prometheus.NewRegistry()

	latencyBuckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
	p := &Provider{
		registry: registry,
		httpRequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   latencyBuckets,
			},
			[]string{"method", "route", "status"},
		),
		statsCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "statistics_computed_total",
				Help:      "Statistics series computed, by kind and granularity.",
			},
			[]string{"kind", "granularity"},
		),
		statsLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "statistics_duration_seconds",
				Help:      "Time spent aggregating one statistics series.",
				Buckets:   latencyBuckets,
			},
			[]string{"kind"},
		),
		statsSegments: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "statistics_segments",
				Help:      "Number of buckets per statistics series.",
				Buckets:   []float64{1, 2, 4, 7, 12, 24},
			},
			[]string{"granularity"},
		),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.httpRequestCounter,
		p.httpRequestLatency,
		p.statsCounter,
		p.statsLatency,
		p.statsSegments,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ObserveStatistics records one computed series.
func (p *Provider) ObserveStatistics(kind, granularity string, segments int, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.statsCounter.WithLabelValues(kind, granularity).Inc()
	p.statsLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
	p.statsSegments.WithLabelValues(granularity).Observe(float64(segments))
}

// Middleware counts requests by route template, not raw path.
func (p *Provider) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		labels := []string{c.Method(), route, strconv.Itoa(status)}
		p.httpRequestCounter.WithLabelValues(labels...).Inc()
		p.httpRequestLatency.WithLabelValues(labels...).Observe(time.Since(started).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Provider) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
}
