package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the panel renderer.
type Metrics struct {
	RendersTotal    *prometheus.CounterVec // labels: outcome={success,timeout,fetch,decode,dimension,parse,error}
	RenderDuration  prometheus.Histogram
	StageDuration   *prometheus.HistogramVec // labels: stage={radar,forecast,compose,encode}
	RendererRunning prometheus.Gauge
	LastSuccess     prometheus.Gauge

	// Collaborator metrics.
	FetchErrors   *prometheus.CounterVec // labels: source={browser,icon,upscaler}, kind={timeout,error,circuit_open}
	IconCache     *prometheus.CounterVec // labels: result={hit,miss}
	PublishErrors *prometheus.CounterVec // labels: sink
}

// NewMetrics creates and registers all renderer metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_panel",
			Name:      "renders_total",
			Help:      "Render passes by outcome.",
		}, []string{"outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_panel",
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete render pass including collaborator calls.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_panel",
			Name:      "stage_duration_seconds",
			Help:      "Duration of one render stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"stage"}),
		RendererRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_panel",
			Name:      "renderer_running",
			Help:      "1 when the render loop is active, 0 when shut down.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_panel",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful render.",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_panel",
			Name:      "fetch_errors_total",
			Help:      "Collaborator call failures by source and kind.",
		}, []string{"source", "kind"}),
		IconCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_panel",
			Name:      "icon_cache_total",
			Help:      "Icon cache lookups by result.",
		}, []string{"result"}),
		PublishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_panel",
			Name:      "publish_errors_total",
			Help:      "Failed frame publications by sink.",
		}, []string{"sink"}),
	}

	prometheus.MustRegister(
		m.RendersTotal,
		m.RenderDuration,
		m.StageDuration,
		m.RendererRunning,
		m.LastSuccess,
		m.FetchErrors,
		m.IconCache,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RendersTotal:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_panel", Name: "renders_total"}, []string{"outcome"}),
		RenderDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_panel", Name: "render_duration_seconds"}),
		StageDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_panel", Name: "stage_duration_seconds"}, []string{"stage"}),
		RendererRunning: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_panel", Name: "renderer_running"}),
		LastSuccess:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_panel", Name: "last_success_timestamp_seconds"}),
		FetchErrors:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_panel", Name: "fetch_errors_total"}, []string{"source", "kind"}),
		IconCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_panel", Name: "icon_cache_total"}, []string{"result"}),
		PublishErrors:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_panel", Name: "publish_errors_total"}, []string{"sink"}),
	}
}
