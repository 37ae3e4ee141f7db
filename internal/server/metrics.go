package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/statviz/pkg/buildinfo"
	"github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/observability"
)

const metricsNamespace = "statviz"

// Metrics records pipeline, cache and HTTP events as Prometheus metrics.
// It implements the observability hooks.
type Metrics struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	breakpoints   *prometheus.CounterVec
	cacheEvents   *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"stage", "chart_type"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "stage_errors_total",
			Help:      "Number of failed pipeline stages by error code.",
		}, []string{"stage", "code"}),
		breakpoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "pipeline",
			Name:      "layouts_total",
			Help:      "Number of computed layouts by chart type and breakpoint.",
		}, []string{"chart_type", "breakpoint"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Number of cache hits, misses and writes.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Number of bytes written to the cache.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(m.stageDuration, m.stageErrors, m.breakpoints, m.cacheEvents, m.cacheBytes, m.httpRequests, m.httpDuration)
	return m
}

// registerBuildInfo exposes the build as a constant gauge.
func registerBuildInfo(reg prometheus.Registerer, info buildinfo.Info) {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "build_info",
		Help:      "Build information of the running server.",
	}, []string{"version", "commit", "go_version"})
	g.WithLabelValues(info.Version, info.Short(), info.GoVersion).Set(1)
	reg.MustRegister(g)
}

func (m *Metrics) observe(stage, chartType string, d time.Duration, err error) {
	m.stageDuration.WithLabelValues(stage, chartType).Observe(d.Seconds())
	if err != nil {
		code := string(errors.GetCode(err))
		if code == "" {
			code = "unknown"
		}
		m.stageErrors.WithLabelValues(stage, code).Inc()
	}
}

func (m *Metrics) OnDecodeStart(context.Context, string) {}

func (m *Metrics) OnDecodeComplete(_ context.Context, _, chartType string, _ int, d time.Duration, err error) {
	m.observe("decode", chartType, d, err)
}

func (m *Metrics) OnLayoutStart(context.Context, string, float64) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, chartType, breakpoint string, d time.Duration, err error) {
	m.observe("layout", chartType, d, err)
	if err == nil {
		m.breakpoints.WithLabelValues(chartType, breakpoint).Inc()
	}
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.observe("render", "", d, err)
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

// instrument counts requests by route pattern, so chart names do not
// become label values.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
)
