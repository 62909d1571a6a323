package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCorsRouter(origin string) *gin.Engine {
	r := gin.New()
	r.Use(Cors(origin))
	r.GET("/api/v1/heatmap", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCors(t *testing.T) {
	handler := newCorsRouter("")

	t.Run("handles OPTIONS preflight request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/heatmap", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
		}

		if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
			t.Errorf("expected wildcard origin, got %q", origin)
		}

		if methods := rec.Header().Get("Access-Control-Allow-Methods"); methods == "" {
			t.Error("expected Access-Control-Allow-Methods header to be set")
		}
	})

	t.Run("passes GET request to next handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/heatmap", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("uses the configured origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/heatmap", nil)
		rec := httptest.NewRecorder()

		newCorsRouter("https://pvat.example.org").ServeHTTP(rec, req)

		if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "https://pvat.example.org" {
			t.Errorf("expected configured origin, got %q", origin)
		}
	})

	t.Run("sets CORS headers on all requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/heatmap", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		for _, header := range []string{
			"Access-Control-Allow-Origin",
			"Access-Control-Allow-Methods",
			"Access-Control-Allow-Headers",
			"Access-Control-Expose-Headers",
			"Access-Control-Max-Age",
		} {
			if rec.Header().Get(header) == "" {
				t.Errorf("expected %s header to be set", header)
			}
		}
	})
}
