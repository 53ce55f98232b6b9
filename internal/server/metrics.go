package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/tikzgrid/pkg/buildinfo"
	"github.com/matzehuels/tikzgrid/pkg/observability"
)

const namespace = "tikzgrid"

// Metrics is a Prometheus registry fed by HTTP middleware and by the
// observability hooks of the engine, palette and preview packages.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	composes        prometheus.Counter
	composeDiagrams prometheus.Counter
	composeColors   prometheus.Histogram
	droppedEdges    prometheus.Counter
	composeDuration prometheus.Histogram

	paletteLoads *prometheus.CounterVec
	paletteSaves *prometheus.CounterVec

	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram

	cacheOps *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		composes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compose",
			Name:      "grids_total",
			Help:      "Composed grids",
		}),
		composeDiagrams: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compose",
			Name:      "diagrams_total",
			Help:      "Diagrams emitted across all grids",
		}),
		composeColors: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "compose",
			Name:      "colors_per_grid",
			Help:      "Color definitions per composed grid",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		droppedEdges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compose",
			Name:      "dropped_edges_total",
			Help:      "Edges dropped because an endpoint did not exist",
		}),
		composeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "compose",
			Name:      "duration_seconds",
			Help:      "Time spent composing a grid",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		paletteLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "palette",
			Name:      "loads_total",
			Help:      "Palette loads by backend and whether defaults were used",
		}, []string{"backend", "fallback"}),
		paletteSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "palette",
			Name:      "saves_total",
			Help:      "Palette saves by backend and result",
		}, []string{"backend", "result"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "preview",
			Name:      "renders_total",
			Help:      "Graphviz renders by result",
		}, []string{"result"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "preview",
			Name:      "render_duration_seconds",
			Help:      "Graphviz render latency",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "operations_total",
			Help:      "Cache operations by key type and outcome",
		}, []string{"key_type", "op"}),
	}

	buildInfo := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "Build version and commit; always 1",
	}, []string{"version", "commit"})
	buildInfo.WithLabelValues(buildinfo.Version, buildinfo.Commit).Set(1)

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		buildInfo,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.requestDuration,
		m.composes, m.composeDiagrams, m.composeColors, m.droppedEdges, m.composeDuration,
		m.paletteLoads, m.paletteSaves,
		m.renders, m.renderDuration,
		m.cacheOps,
	)
	return m
}

// Install registers m as the process-wide observability hooks.
func (m *Metrics) Install() {
	observability.SetComposeHooks(m)
	observability.SetPaletteHooks(m)
	observability.SetPreviewHooks(m)
	observability.SetCacheHooks(m)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// =============================================================================
// observability hooks
// =============================================================================

func (m *Metrics) OnComposeComplete(_ context.Context, diagrams, colors, dropped int, d time.Duration) {
	m.composes.Inc()
	m.composeDiagrams.Add(float64(diagrams))
	m.composeColors.Observe(float64(colors))
	m.droppedEdges.Add(float64(dropped))
	m.composeDuration.Observe(d.Seconds())
}

func (m *Metrics) OnPaletteLoad(_ context.Context, backend string, _ int, fallback bool) {
	m.paletteLoads.WithLabelValues(backend, strconv.FormatBool(fallback)).Inc()
}

func (m *Metrics) OnPaletteSave(_ context.Context, backend string, _ int, err error) {
	m.paletteSaves.WithLabelValues(backend, result(err)).Inc()
}

func (m *Metrics) OnRenderComplete(_ context.Context, d time.Duration, err error) {
	m.renders.WithLabelValues(result(err)).Inc()
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ observability.ComposeHooks = (*Metrics)(nil)
	_ observability.PaletteHooks = (*Metrics)(nil)
	_ observability.PreviewHooks = (*Metrics)(nil)
	_ observability.CacheHooks   = (*Metrics)(nil)
)
