package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "biblio"

// PrometheusHooks records lookup, cache and upstream HTTP events as
// Prometheus metrics. It implements LookupHooks, CacheHooks and HTTPHooks.
type PrometheusHooks struct {
	lookups        *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	cacheEvents    *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
	upstream       *prometheus.CounterVec
	upstreamTime   *prometheus.HistogramVec
	upstreamErrors *prometheus.CounterVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "lookups_total",
			Help:      "Total number of book lookups by outcome",
		}, []string{"outcome"}),
		lookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "lookup_duration_seconds",
			Help:      "Histogram of lookup durations in seconds by outcome",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 10), // 1ms up to ~4s
		}, []string{"outcome"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_events_total",
			Help:      "Cache hits, misses, writes and absorbed errors by key type",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by key type",
		}, []string{"key_type"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream catalog responses by host and status code",
		}, []string{"host", "status"}),
		upstreamTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Histogram of upstream catalog request durations in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"host"}),
		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_errors_total",
			Help:      "Upstream catalog requests that failed before a response",
		}, []string{"host"}),
	}

	if reg != nil {
		reg.MustRegister(h.lookups, h.lookupDuration, h.cacheEvents, h.cacheBytes,
			h.upstream, h.upstreamTime, h.upstreamErrors)
	}
	return h
}

func (h *PrometheusHooks) OnLookupStart(context.Context, string) {}

func (h *PrometheusHooks) OnLookupComplete(_ context.Context, _ string, outcome string, d time.Duration, _ error) {
	h.lookups.WithLabelValues(outcome).Inc()
	h.lookupDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (h *PrometheusHooks) OnCacheError(_ context.Context, keyType, op string, _ error) {
	h.cacheEvents.WithLabelValues(keyType, op+"_error").Inc()
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, _, host, _ string, statusCode int, d time.Duration) {
	h.upstream.WithLabelValues(host, strconv.Itoa(statusCode)).Inc()
	h.upstreamTime.WithLabelValues(host).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnError(_ context.Context, _, host, _ string, _ error) {
	h.upstreamErrors.WithLabelValues(host).Inc()
}

var (
	_ LookupHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
	_ HTTPHooks   = (*PrometheusHooks)(nil)
)
