package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAllowExhaustsBucket(t *testing.T) {
	l := NewTokenBucket(3, 3)

	for i := 0; i < 3; i++ {
		if !l.allow("10.0.0.1") {
			t.Fatalf("request %d denied within capacity", i+1)
		}
	}
	if l.allow("10.0.0.1") {
		t.Error("request over capacity allowed")
	}
	// Another client has its own bucket.
	if !l.allow("10.0.0.2") {
		t.Error("fresh client denied")
	}
}

func TestZeroCapacityFallsBackToRate(t *testing.T) {
	l := NewTokenBucket(0, 5)
	for i := 0; i < 5; i++ {
		if !l.allow("c") {
			t.Fatalf("request %d denied, capacity should default to rate", i+1)
		}
	}
	if l.allow("c") {
		t.Error("sixth request allowed")
	}
}

func TestGinMiddlewareRejectsWithRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewTokenBucket(1, 1).GinMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", second.Header().Get("Retry-After"))
	}
}
