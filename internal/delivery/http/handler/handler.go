package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/user/company-analyzer/internal/delivery/http/request"
	"github.com/user/company-analyzer/internal/delivery/http/response"
	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/internal/repository"
)

const healthCheckTimeout = 2 * time.Second

// AnalysisService is the part of the analysis use case the API needs.
type AnalysisService interface {
	Submit(ctx context.Context, url string) (*entity.AnalysisJob, error)
	Get(ctx context.Context, id string) (*entity.AnalysisJob, error)
}

type Handler struct {
	service AnalysisService
	store   repository.Pinger
	logger  *zap.Logger
}

// NewHandler creates the API handlers. store may be nil when the job store
// has no remote dependency to check.
func NewHandler(service AnalysisService, store repository.Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

func (h *Handler) HandleSubmitAnalysis(w http.ResponseWriter, r *http.Request) {
	var req request.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Normalize(); err != nil {
		h.writeJSONError(w, "Invalid URL: "+err.Error(), http.StatusBadRequest)
		return
	}

	job, err := h.service.Submit(r.Context(), req.URL)
	if err != nil {
		h.logger.Error("failed to submit analysis", zap.String("url", req.URL), zap.Error(err))
		h.writeJSONError(w, "Failed to start analysis", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, job)
}

func (h *Handler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			h.writeJSONError(w, "Analysis not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load analysis", zap.String("job_id", id), zap.Error(err))
		h.writeJSONError(w, "Failed to load analysis", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, job)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.writeJSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Error("health check failed for job store", zap.Error(err))
		h.writeJSON(w, http.StatusServiceUnavailable, response.HealthResponse{
			Status: "unhealthy",
			Checks: map[string]string{"job_store": "unhealthy"},
		})
		return
	}

	h.writeJSON(w, http.StatusOK, response.HealthResponse{
		Status: "ok",
		Checks: map[string]string{"job_store": "healthy"},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Message: message})
}
