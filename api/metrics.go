// Package api - Prometheus metrics
package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-basket/core/engine"
)

// Metrics holds the collectors of one server instance
type Metrics struct {
	registry  *prometheus.Registry
	quotes    *prometheus.CounterVec
	discounts *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics creates and registers the server collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		quotes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basket_quotes_total",
				Help: "Total number of quotes computed",
			},
			[]string{"year"},
		),
		discounts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basket_discounts_applied_total",
				Help: "Total number of bundle prices applied, by claiming service",
			},
			[]string{"service"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "basket_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.quotes,
		m.discounts,
		m.duration,
	)
	return m
}

// ObserveQuote records a computed quote
func (m *Metrics) ObserveQuote(q *engine.Quote) {
	m.quotes.WithLabelValues(q.Year.String()).Inc()
	for _, item := range q.Breakdown.Items {
		if item.Discounted {
			m.discounts.WithLabelValues(string(item.Service)).Inc()
		}
	}
}

// Middleware times every request by route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.duration.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
