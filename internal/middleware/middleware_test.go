package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-optimizer/pkg/log"
)

func newEngine(mw Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw.CORS(), mw.RequestLogger())
	r.POST("/limited", mw.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimit(t *testing.T) {
	r := newEngine(New(log.NewNop(), Config{RateLimitPerMin: 1}))

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("first request = %d", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want 429", code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newEngine(New(log.NewNop(), Config{}))
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, w.Code)
		}
	}
}

func TestCORSAndRequestID(t *testing.T) {
	r := newEngine(New(log.NewNop(), Config{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/limited", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	req.Header.Set(headerRequestID, "req-1")
	r.ServeHTTP(w, req)
	if w.Header().Get(headerRequestID) != "req-1" {
		t.Errorf("request id = %q", w.Header().Get(headerRequestID))
	}
}
