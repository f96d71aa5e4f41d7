package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type pingRouter struct{}

func (pingRouter) Routes(routes gin.IRouter) {
	routes.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name string
		ping func(context.Context) error
		want int
	}{
		{"up", func(context.Context) error { return nil }, http.StatusOK},
		{"down", func(context.Context) error { return errors.New("refused") }, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		r := gin.New()
		r.GET("/health", Health(tt.ping))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if w.Code != tt.want {
			t.Errorf("%s: code = %d", tt.name, w.Code)
		}
	}
}

func TestSetupApiRoutesMountsUnderApi(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupApiRoutes(r, pingRouter{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Errorf("code = %d body = %q", w.Code, w.Body.String())
	}
}
