// Package handlers contains the HTTP handlers for the operational API.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/stitchd-io/stitchd/pkg/catalog/store"
)

// HealthHandler handles health check endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Readiness probe: Can the server reach the catalog database?
//   - Catalog detail: Row counts and reprocessing backlog
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a new health handler.
//
// The store parameter may be nil, in which case readiness and catalog
// detail checks will return unhealthy status.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK if the server process is running. This endpoint is designed
// for Kubernetes liveness probes and should always succeed as long as the
// HTTP server is responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthyResponse(map[string]string{
		"service": "stitchd",
	}))
}

// Readiness handles GET /health/ready - readiness probe.
//
// Returns 200 OK if the catalog database answers a ping, 503 Service
// Unavailable otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("catalog store not initialized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.store.Healthcheck(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, healthyResponse(map[string]interface{}{
		"latency": time.Since(start).String(),
	}))
}

// CatalogStatus represents the catalog detail response.
type CatalogStatus struct {
	Entities          int64 `json:"entities"`
	FinalEntities     int64 `json:"final_entities"`
	ReferenceEdges    int64 `json:"reference_edges"`
	NeedsReprocessing int64 `json:"needs_reprocessing"`
}

// Catalog handles GET /health/catalog - catalog detail.
//
// Reports row counts for the three catalog tables plus the number of
// entities currently flagged for reprocessing.
func (h *HealthHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("catalog store not initialized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var (
		status CatalogStatus
		err    error
	)

	if status.Entities, err = h.store.CountEntities(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse(err.Error()))
		return
	}
	if status.FinalEntities, err = h.store.CountFinalEntities(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse(err.Error()))
		return
	}
	if status.ReferenceEdges, err = h.store.CountEdges(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse(err.Error()))
		return
	}
	if status.NeedsReprocessing, err = h.store.CountEntitiesNeedingReprocessing(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, healthyResponse(status))
}
