// Package handlers provides HTTP handlers for portfolio optimization
// operations.
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/quantfolio/frontier/internal/modules/optimization"
	"github.com/quantfolio/frontier/internal/modules/runs"
)

// RunReader lists and fetches stored optimization runs.
type RunReader interface {
	Get(id string) (*runs.Run, error)
	List(limit int) ([]runs.Run, error)
}

// Handler handles optimization HTTP requests.
type Handler struct {
	svc     *optimization.Service
	runRepo RunReader
	log     zerolog.Logger
}

// NewHandler creates a new optimization handler. runRepo may be nil when
// run history is disabled.
func NewHandler(svc *optimization.Service, runRepo RunReader, log zerolog.Logger) *Handler {
	return &Handler{
		svc:     svc,
		runRepo: runRepo,
		log:     log.With().Str("handler", "optimization").Logger(),
	}
}

// RegisterRoutes mounts the optimization routes on a chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/optimize", h.HandleOptimize)
	r.Post("/frontier", h.HandleFrontier)
	r.Get("/runs", h.HandleListRuns)
	r.Get("/runs/{id}", h.HandleGetRun)
}

// HandleOptimize handles POST /api/optimize
func (h *Handler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimization.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.svc.Optimize(req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, optimization.ErrSingularMatrix) || errors.Is(err, optimization.ErrDegenerateNormalization) {
			status = http.StatusUnprocessableEntity
		}
		h.log.Warn().Err(err).Str("strategy", req.Strategy).Msg("Optimization failed")
		h.writeError(w, status, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleFrontier handles POST /api/frontier
func (h *Handler) HandleFrontier(w http.ResponseWriter, r *http.Request) {
	var req optimization.FrontierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	samples, err := h.svc.SampleFrontier(req)
	if err != nil {
		h.log.Warn().Err(err).Msg("Frontier sampling failed")
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"samples": samples,
			"count":   len(samples),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleListRuns handles GET /api/runs
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	if h.runRepo == nil {
		h.writeError(w, http.StatusNotFound, "Run history is disabled")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	list, err := h.runRepo.List(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list runs")
		h.writeError(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"runs":  list,
			"count": len(list),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetRun handles GET /api/runs/{id}
func (h *Handler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	if h.runRepo == nil {
		h.writeError(w, http.StatusNotFound, "Run history is disabled")
		return
	}

	id := chi.URLParam(r, "id")
	run, err := h.runRepo.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Run not found")
			return
		}
		h.log.Error().Err(err).Str("run_id", id).Msg("Failed to get run")
		h.writeError(w, http.StatusInternalServerError, "Failed to get run")
		return
	}

	weights, err := optimization.DecodeRunWeights(run.Payload)
	if err != nil {
		h.log.Error().Err(err).Str("run_id", id).Msg("Failed to decode run payload")
		h.writeError(w, http.StatusInternalServerError, "Failed to decode run payload")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"run":     run,
			"weights": weights,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}
