// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                    liveness probe
//	GET  /metrics                    Prometheus metrics
//	GET  /charts                     names of the charts in the charts directory
//	GET  /charts/{name}.{format}     render a chart file; query: width, height,
//	                                 screen_width, screen_height, interactive, refresh
//	POST /render                     render an inline spec (JSON body: pipeline options)
//
// Each request is one measurement: the width query parameter plays the part
// of the container width, so a client handles a resize by requesting the
// chart again.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/statviz/pkg/buildinfo"
	"github.com/matzehuels/statviz/pkg/errors"
	"github.com/matzehuels/statviz/pkg/pipeline"
)

const (
	// maxBodySize limits POST /render bodies.
	maxBodySize = 4 << 20

	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// ChartsDir holds the chart specs served under /charts.
	ChartsDir string

	// Interactive adds hover highlighting to SVG and HTML output by default.
	Interactive bool

	Runner   *pipeline.Runner
	Logger   *log.Logger
	Registry *prometheus.Registry
}

// Server is the HTTP front end of the pipeline.
type Server struct {
	cfg     Config
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics *Metrics
	build   buildinfo.Info
	handler http.Handler
}

// New creates a server. A nil registry gets a fresh one with the Go and
// process collectors.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
		cfg.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	s := &Server{
		cfg:     cfg,
		runner:  cfg.Runner,
		logger:  cfg.Logger,
		metrics: NewMetrics(cfg.Registry),
		build:   buildinfo.Read(),
	}
	registerBuildInfo(cfg.Registry, s.build)
	s.handler = s.routes()
	return s
}

// Metrics returns the hooks to register with the observability package.
func (s *Server) Metrics() *Metrics { return s.metrics }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Registry, promhttp.HandlerOpts{}))
	r.Get("/charts", s.handleList)
	r.Get("/charts/{file}", s.handleChart)
	r.Post("/render", s.handleRender)
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr, "charts", s.cfg.ChartsDir)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", s.build})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := listCharts(s.cfg.ChartsDir)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "list charts"))
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"charts": names})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	name, format, ok := strings.Cut(file, ".")
	if !ok {
		format = pipeline.FormatSVG
	}
	if err := errors.ValidateChartName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	path := filepath.Join(s.cfg.ChartsDir, name+".toml")
	if _, err := os.Stat(path); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "chart %q not found", name))
		return
	}

	opts, err := queryOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.SpecPath = path
	opts.Formats = []string{format}
	s.render(w, r, opts)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if opts.Spec == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "spec is required"))
		return
	}
	if len(opts.Formats) > 1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request one format at a time"))
		return
	}
	s.render(w, r, opts)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	opts.Interactive = opts.Interactive || s.cfg.Interactive
	opts.Version = s.build.Version
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var format string
	var body []byte
	for f, data := range result.Artifacts {
		format, body = f, data
	}

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentTypes[format])
	h.Set("ETag", `"`+result.SpecHash[:16]+`"`)
	h.Set("X-Statviz-Version", s.build.Version)
	h.Set("X-Statviz-Cache", strconv.FormatBool(result.CacheInfo.RenderHit))
	if result.Stats.Breakpoint != "" {
		h.Set("X-Statviz-Breakpoint", result.Stats.Breakpoint)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// queryOptions reads the measurement and render flags from the query.
func queryOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	for name, dst := range map[string]*float64{
		"width":         &opts.Width,
		"height":        &opts.Height,
		"screen_width":  &opts.ScreenWidth,
		"screen_height": &opts.ScreenHeight,
		"scale":         &opts.Scale,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s %q", name, v)
		}
		*dst = f
	}
	opts.Interactive = q.Has("interactive") && q.Get("interactive") != "false"
	opts.Refresh = q.Has("refresh") && q.Get("refresh") != "false"
	opts.Title = q.Get("title")
	return opts, nil
}

func listCharts(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".toml"))
	}
	slices.Sort(names)
	return names, nil
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidChartType,
		errors.ErrCodeInvalidOrientation, errors.ErrCodeMissingProperty, errors.ErrCodeLoad:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", code, "error", err)
	}
	writeJSON(w, status, map[string]string{"code": string(code), "message": errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}
