package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/gaitcgm"
	"github.com/aretw0/gaitcgm/internal/presentation/graph"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the results of a batch over a read-only JSON API.
type Server struct {
	Batch    *gaitcgm.Batch
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithGatherer serves the gatherer's metrics on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.Gatherer = g }
}

// WithLogger sets the logger used for encoding failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// NewHandler creates the HTTP handler for a batch.
func NewHandler(batch *gaitcgm.Batch, opts ...Option) http.Handler {
	s := &Server{Batch: batch, Logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/models", func(r chi.Router) {
		r.Get("/", s.ListModels)
		r.Route("/{model}", func(r chi.Router) {
			r.Get("/", s.GetModel)
			r.Get("/schema", s.GetSchema)
			r.Get("/graph", s.GetGraph)
			r.Get("/trials/{trial}", s.GetTrial)
			r.Get("/trials/{trial}/axes/{name}", s.GetAxis)
			r.Get("/trials/{trial}/angles/{name}", s.GetAngle)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "gaitcgm-http",
		"version": strings.TrimSpace(gaitcgm.Version),
	})
}

// ListModels handles GET /models.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	out := make([]ModelSummary, 0, s.Batch.Len())
	for _, m := range s.Batch.Models() {
		out = append(out, summarizeModel(m))
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetModel handles GET /models/{model}.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	m, ok := s.model(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, summarizeModel(m))
}

// GetSchema handles GET /models/{model}/schema.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	m, ok := s.model(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, m.Schema())
}

// GetGraph handles GET /models/{model}/graph and returns Mermaid text.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	m, ok := s.model(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(m.Plan(), nil))
}

// GetTrial handles GET /models/{model}/trials/{trial}.
func (s *Server) GetTrial(w http.ResponseWriter, r *http.Request) {
	m, ok := s.model(w, r)
	if !ok {
		return
	}
	res, ok := m.Result(chi.URLParam(r, "trial"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "no result for trial %q", chi.URLParam(r, "trial"))
		return
	}
	s.writeJSON(w, http.StatusOK, TrialSummary{
		Model:        res.Model,
		Trial:        res.Trial,
		Frames:       res.Frames,
		AxisKeys:     res.AxisKeys,
		AngleKeys:    res.AngleKeys,
		Measurements: res.Measurements,
	})
}

// GetAxis handles GET /models/{model}/trials/{trial}/axes/{name}.
func (s *Server) GetAxis(w http.ResponseWriter, r *http.Request) {
	m, ok := s.model(w, r)
	if !ok {
		return
	}
	res, ok := m.Result(chi.URLParam(r, "trial"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "no result for trial %q", chi.URLParam(r, "trial"))
		return
	}
	name := chi.URLParam(r, "name")
	series, ok := res.Axes[name]
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown axis %q", name)
		return
	}
	s.writeJSON(w, http.StatusOK, mapAxis(series))
}

// GetAngle handles GET /models/{model}/trials/{trial}/angles/{name}.
func (s *Server) GetAngle(w http.ResponseWriter, r *http.Request) {
	m, ok := s.model(w, r)
	if !ok {
		return
	}
	res, ok := m.Result(chi.URLParam(r, "trial"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "no result for trial %q", chi.URLParam(r, "trial"))
		return
	}
	name := chi.URLParam(r, "name")
	series, ok := res.Angles[name]
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown angle %q", name)
		return
	}
	s.writeJSON(w, http.StatusOK, mapAngle(series))
}

func (s *Server) model(w http.ResponseWriter, r *http.Request) (*gaitcgm.Model, bool) {
	name := chi.URLParam(r, "model")
	m, ok := s.Batch.Lookup(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown model %q", name)
	}
	return m, ok
}

// writeJSON encodes v before touching the response, so an encoding failure
// becomes a 500 instead of a truncated 200.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(map[string]string{"error": "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.Logger.Debug("response write failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, format string, args ...any) {
	s.writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}
