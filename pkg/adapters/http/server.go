package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/blackboard"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Library is the read side of the tree catalog.
type Library interface {
	Trees() ([]string, error)
	Spec(ctx context.Context, name string) (domain.Spec, error)
}

// Server is a read-mostly inspector over a tree library and an agent runtime.
type Server struct {
	Library  Library
	Agents   ports.AgentRuntime
	Registry *registry.Registry
	Streams  *StreamManager

	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithRegistry enables the node catalog and category shapes in graphs.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Server) { s.Registry = r }
}

// WithGatherer serves /metrics from g instead of the default Prometheus registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates the inspector.
func NewServer(lib Library, agents ports.AgentRuntime, opts ...Option) *Server {
	s := &Server{
		Library:  lib,
		Agents:   agents,
		Streams:  NewStreamManager(),
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger
	return s
}

// NewHandler creates a new HTTP handler for the inspector.
func NewHandler(lib Library, agents ports.AgentRuntime, opts ...Option) http.Handler {
	return NewServer(lib, agents, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.GetHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/nodes", s.ListNodes)

	r.Route("/trees", func(r chi.Router) {
		r.Get("/", s.ListTrees)
		r.Get("/{name}", s.GetTree)
		r.Get("/{name}/graph", s.GetGraph)
	})

	r.Route("/agents", func(r chi.Router) {
		r.Get("/", s.ListAgents)
		r.Post("/", s.SpawnAgent)
		r.Get("/{id}", s.GetAgent)
		r.Delete("/{id}", s.RemoveAgent)
		r.Post("/{id}/tick", s.TickAgent)
		r.Get("/{id}/debug", s.GetDebug)
		r.Get("/{id}/events", s.SubscribeEvents)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(arbor.Version),
	})
}

// ListNodes handles GET /nodes.
func (s *Server) ListNodes(w http.ResponseWriter, r *http.Request) {
	if s.Registry == nil {
		s.writeJSON(w, http.StatusOK, []registry.Descriptor{})
		return
	}
	s.writeJSON(w, http.StatusOK, s.Registry.Describe())
}

// ListTrees handles GET /trees.
func (s *Server) ListTrees(w http.ResponseWriter, r *http.Request) {
	names, err := s.Library.Trees()
	if err != nil {
		s.fail(w, "ListTrees", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, names)
}

// GetTree handles GET /trees/{name}.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	spec, err := s.Library.Spec(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "GetTree", err)
		return
	}
	s.writeJSON(w, http.StatusOK, spec)
}

// GetGraph handles GET /trees/{name}/graph. With ?agent=<id>, node statuses
// published by Debug decorators of that agent are overlaid.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	spec, err := s.Library.Spec(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "GetGraph", err)
		return
	}

	var overlay *graph.Overlay
	if id := r.URL.Query().Get("agent"); id != "" {
		snap, err := s.Agents.Inspect(r.Context(), id)
		if err != nil {
			s.fail(w, "GetGraph", err)
			return
		}
		overlay = statusOverlay(snap.Local)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(spec, s.Registry, overlay))
}

// ListAgents handles GET /agents.
func (s *Server) ListAgents(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Agents.List(r.Context())
	if err != nil {
		s.fail(w, "ListAgents", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// SpawnRequest is the body of POST /agents.
type SpawnRequest struct {
	Tree string `json:"tree"`
	ID   string `json:"id,omitempty"`
}

// SpawnAgent handles POST /agents.
func (s *Server) SpawnAgent(w http.ResponseWriter, r *http.Request) {
	var body SpawnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Tree == "" {
		http.Error(w, "Invalid request body: tree is required", http.StatusBadRequest)
		s.logger.Warn("SpawnAgent: Invalid request body", "error", err)
		return
	}

	snap, err := s.Agents.Spawn(r.Context(), body.Tree, body.ID)
	if err != nil {
		s.fail(w, "SpawnAgent", err)
		return
	}
	s.Streams.Broadcast(snap.AgentID, domain.Diff(nil, snap))
	s.writeJSON(w, http.StatusCreated, snap)
}

// GetAgent handles GET /agents/{id}.
func (s *Server) GetAgent(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Agents.Inspect(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetAgent", err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// RemoveAgent handles DELETE /agents/{id}.
func (s *Server) RemoveAgent(w http.ResponseWriter, r *http.Request) {
	if err := s.Agents.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "RemoveAgent", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TickRequest is the body of POST /agents/{id}/tick.
type TickRequest struct {
	Delta float64 `json:"delta"`
}

// TickAgent handles POST /agents/{id}/tick.
func (s *Server) TickAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body TickRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("TickAgent: Invalid request body", "error", err)
		return
	}

	before, err := s.Agents.Inspect(r.Context(), id)
	if err != nil {
		s.fail(w, "TickAgent", err)
		return
	}
	after, err := s.Agents.Tick(r.Context(), id, body.Delta)
	if err != nil {
		s.fail(w, "TickAgent", err)
		return
	}

	if diff := domain.Diff(before, after); diff != nil {
		s.logger.Debug("TickAgent: Diff calculated", "agent_id", id, "keys", len(diff.Local))
		s.Streams.Broadcast(id, diff)
	}
	s.writeJSON(w, http.StatusOK, after)
}

// GetDebug handles GET /agents/{id}/debug.
func (s *Server) GetDebug(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Agents.Inspect(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetDebug", err)
		return
	}
	entries := make(map[string]any)
	for k, v := range snap.Local {
		if strings.HasPrefix(k, blackboard.DebugPrefix) {
			entries[k] = v
		}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// statusOverlay collects "debug.<label>:status" entries.
func statusOverlay(local map[string]any) *graph.Overlay {
	overlay := &graph.Overlay{Status: make(map[string]domain.Status)}
	for k, v := range local {
		if !strings.HasPrefix(k, blackboard.DebugPrefix) || !strings.HasSuffix(k, ":status") {
			continue
		}
		label := strings.TrimSuffix(strings.TrimPrefix(k, blackboard.DebugPrefix), ":status")
		if status, ok := toStatus(v); ok {
			overlay.Status[label] = status
		}
	}
	return overlay
}

func toStatus(v any) (domain.Status, bool) {
	switch s := v.(type) {
	case domain.Status:
		return s, true
	case string:
		st, err := domain.ParseStatus(s)
		return st, err == nil
	default:
		i, ok := domain.ToInt(v)
		return domain.Status(i), ok
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrTreeNotFound),
		errors.Is(err, domain.ErrAgentNotFound),
		errors.Is(err, domain.ErrSnapshotNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domain.ErrAgentExists):
		code = http.StatusConflict
	}
	if code == http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), code)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
