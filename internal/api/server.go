// Package api provides the REST API over the hash database.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mostypc123/neartha-mlist/internal/core"
	"github.com/mostypc123/neartha-mlist/internal/intelligence"
	"github.com/mostypc123/neartha-mlist/internal/pipeline"
	"github.com/mostypc123/neartha-mlist/internal/reporting"
	"github.com/mostypc123/neartha-mlist/internal/store"
)

// Server holds the API state.
type Server struct {
	store     store.Store
	collector *pipeline.Collector
	index     *intelligence.Index
	logger    *zap.SugaredLogger
}

// NewServer creates a Server. The index is loaded lazily on first lookup
// and reloaded after every collect.
func NewServer(s store.Store, collector *pipeline.Collector, logger *zap.SugaredLogger) *Server {
	return &Server{
		store:     s,
		collector: collector,
		index:     intelligence.NewIndex(),
		logger:    logger,
	}
}

// Start runs the API server on the given port.
func (s *Server) Start(port int) error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/health", s.handleHealth)

	r.Get("/api/v1/stats", s.handleStats)
	r.Get("/api/v1/partitions", s.handleListPartitions)
	r.Get("/api/v1/partitions/{name}", s.handleListDatasets)
	r.Get("/api/v1/partitions/{name}/{file}", s.handleGetDataset)
	r.Get("/api/v1/lookup/{sha256}", s.handleLookup)
	r.Post("/api/v1/collect", s.handleCollect)

	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "neartha-mlist",
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := reporting.Aggregate(s.store, s.logger, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleListPartitions(w http.ResponseWriter, r *http.Request) {
	partitions, err := s.store.Partitions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if partitions == nil {
		partitions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"partitions": partitions,
		"total":      len(partitions),
	})
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	files, err := s.store.List(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if files == nil {
		files = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"partition": name,
		"files":     files,
		"total":     len(files),
	})
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	file := chi.URLParam(r, "file")
	ds, err := s.store.Get(name, file)
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "dataset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "sha256")
	if !core.IsSHA256(hash) {
		writeError(w, http.StatusBadRequest, "not a sha256 hash")
		return
	}

	if s.index.Count() == 0 {
		if err := s.index.Load(s.store, s.logger); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	sightings := s.index.Lookup(hash)
	if sightings == nil {
		sightings = []intelligence.Sighting{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sha256":    hash,
		"known":     len(sightings) > 0,
		"sightings": sightings,
	})
}

func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	report := s.collector.Run(r.Context())

	if err := s.index.Load(s.store, s.logger); err != nil {
		s.logger.Errorw("index reload failed", "error", err)
	}

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
