package handlers

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"topicmap-backend/application/consolidation"
	"topicmap-backend/application/services"
	"topicmap-backend/pkg/common"
)

const maxGraphPayloadBytes = 10 << 20 // 10 MiB

// GraphHandler handles graph-related HTTP requests
type GraphHandler struct {
	graphService *services.GraphService
	pipeline     *consolidation.Pipeline
	logger       *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(graphService *services.GraphService, pipeline *consolidation.Pipeline, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		graphService: graphService,
		pipeline:     pipeline,
		logger:       logger,
	}
}

// GetGraph handles GET /graph. A graph that has never been saved
// comes back empty, not 404; clients poll this endpoint.
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	g, err := h.graphService.Load(r.Context())
	if err != nil {
		h.logger.Error("Failed to load graph", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, g)
}

// ReplaceGraph handles POST /graph. The body is a full graph payload
// that replaces the stored snapshot after schema validation.
func (h *GraphHandler) ReplaceGraph(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxGraphPayloadBytes))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "failed to read request body")
		return
	}

	g, err := h.graphService.Replace(r.Context(), body)
	if err != nil {
		h.logger.Warn("Graph replace rejected", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, g)
}

// Consolidate handles POST /graph/consolidate. It runs the full
// merge pipeline synchronously and returns the consolidated graph.
func (h *GraphHandler) Consolidate(w http.ResponseWriter, r *http.Request) {
	g, err := h.pipeline.Run(r.Context())
	if err != nil {
		h.logger.Error("Consolidation failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, g)
}

// Stats handles GET /graph/stats
func (h *GraphHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.graphService.Stats(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute graph stats", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, stats)
}
