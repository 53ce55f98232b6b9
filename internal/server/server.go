// Package server serves the tikzgrid web UI and its JSON API.
//
// Routes:
//
//	GET  /               embedded editor page
//	GET  /static/*       embedded assets
//	GET  /get_colors     current palette as a JSON array
//	POST /save_colors    replace the palette: {"palette": [...]}
//	POST /generate_grid  compose TikZ: GridRequest -> {"tikz_code": "..."}
//	POST /preview        render one diagram of a GridRequest (?graph=n&format=svg)
//	GET  /healthz        liveness probe
//	GET  /metrics        Prometheus metrics
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tikzgrid/internal/config"
	"github.com/matzehuels/tikzgrid/pkg/palette"
	"github.com/matzehuels/tikzgrid/pkg/preview"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 8 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server handles HTTP requests for one palette store.
type Server struct {
	cfg      config.Config
	store    palette.Store
	renderer *preview.Renderer
	metrics  *Metrics
	logger   *log.Logger
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics exposes m on /metrics and records request metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the access and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds a server. renderer may be nil, which disables /preview.
func New(cfg config.Config, store palette.Store, renderer *preview.Renderer, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		store:    store,
		renderer: renderer,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Handle("/static/*", staticHandler())
	r.Get("/healthz", s.handleHealth)

	r.Get("/get_colors", s.handleGetColors)
	r.Post("/save_colors", s.handleSaveColors)
	r.Post("/generate_grid", s.handleGenerateGrid)
	if s.renderer != nil {
		r.Post("/preview", s.handlePreview)
	}
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	return r
}

// Run listens on the configured address and serves until ctx is done.
// ready, if non-nil, is called with the base URL once the listener is open.
func (s *Server) Run(ctx context.Context, ready func(url string)) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, ready)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, ready func(url string)) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	url := baseURL(ln.Addr())
	s.logger.Info("listening", "url", url)
	if ready != nil {
		ready(url)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// baseURL returns a browsable URL for addr, replacing wildcard hosts with
// the loopback address.
func baseURL(addr net.Addr) string {
	host, port := "127.0.0.1", ""
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = strconv.Itoa(tcp.Port)
		if !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	} else {
		return "http://" + addr.String() + "/"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
