package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchd-io/stitchd/pkg/catalog/models"
	"github.com/stitchd-io/stitchd/pkg/catalog/store"
)

func createTestStore(t *testing.T) *store.GORMStore {
	t.Helper()
	s, err := store.New(&store.Config{
		Type: store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{
			Path: ":memory:",
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLiveness(t *testing.T) {
	handler := NewHealthHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.Liveness(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestReadinessWithoutStore(t *testing.T) {
	handler := NewHealthHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	handler.Readiness(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Contains(t, resp.Error, "not initialized")
}

func TestReadinessWithStore(t *testing.T) {
	handler := NewHealthHandler(createTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	handler.Readiness(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestCatalogCounts(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.CreateEntity(ctx, &models.Entity{Ref: "component/website", ResultHash: "hash-1"})
	require.NoError(t, err)
	require.NoError(t, s.UpsertFinalEntity(ctx, &models.FinalEntity{EntityID: id, Hash: "final-1"}))
	require.NoError(t, s.AddProviderEdge(ctx, "provider:github", "component/website"))

	handler := NewHealthHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/health/catalog", nil)
	rec := httptest.NewRecorder()

	handler.Catalog(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string        `json:"status"`
		Data   CatalogStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, int64(1), resp.Data.Entities)
	assert.Equal(t, int64(1), resp.Data.FinalEntities)
	assert.Equal(t, int64(1), resp.Data.ReferenceEdges)
	assert.Equal(t, int64(0), resp.Data.NeedsReprocessing)
}

func TestCatalogWithoutStore(t *testing.T) {
	handler := NewHealthHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/health/catalog", nil)
	rec := httptest.NewRecorder()

	handler.Catalog(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
