package http

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/pm25-forecast-service/internal/domain"
	"github.com/couchcryptid/pm25-forecast-service/internal/forecast"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

// Forecaster runs one prediction cycle for a form submission.
type Forecaster interface {
	Forecast(ctx context.Context, raw domain.RawInputs) (forecast.Result, error)
}

// Server serves the prediction page plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	forecaster Forecaster
	page       *template.Template
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, forecaster Forecaster, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		forecaster: forecaster,
		page:       template.Must(template.ParseFS(templateFS, "templates/index.html")),
		logger:     logger,
	}

	mux.HandleFunc("GET /{$}", s.handleForm)
	mux.HandleFunc("POST /{$}", s.handleSubmit)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
