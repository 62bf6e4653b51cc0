package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/costing"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
)

func TestRouter_HealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = doJSON(t, router, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/costing/sessions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_APIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	costingService := service.NewCostingService(costing.NewEngine())
	t.Cleanup(costingService.Stop)

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	cfg.EnableAuth = true
	cfg.APIKeys = map[string]bool{"secret-key": true}
	cfg.CostingService = costingService

	router := NewRouter(NewHealthHandler(), cfg)

	// Without a key
	w := doJSON(t, router, http.MethodPost, "/api/costing/sessions", `{"product_name": "Jugo"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// With a valid key
	req := httptest.NewRequest(http.MethodPost, "/api/costing/sessions", nil)
	req.Header.Set("X-API-Key", "secret-key")
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	// Empty body fails binding, but the request got past authentication.
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Health endpoints stay public.
	w = doJSON(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RateLimiting(t *testing.T) {
	gin.SetMode(gin.TestMode)

	costingService := service.NewCostingService(costing.NewEngine())
	t.Cleanup(costingService.Stop)

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 2
	cfg.CostingService = costingService

	router := NewRouter(NewHealthHandler(), cfg)

	for i := 0; i < 2; i++ {
		w := doJSON(t, router, http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
