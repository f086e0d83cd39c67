package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCORS_AllowedOrigin(t *testing.T) {
	h := CORS(MiddlewareConfig{AllowedOrigins: []string{"http://shop.local"}})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/search", http.NoBody)
	req.Header.Set("Origin", "http://shop.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://shop.local" {
		t.Errorf("allow origin = %q", got)
	}
}

func TestCORS_UnknownOrigin(t *testing.T) {
	h := CORS(MiddlewareConfig{AllowedOrigins: []string{"http://shop.local"}})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/products", http.NoBody)
	req.Header.Set("Origin", "http://evil.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow origin = %q, want none", got)
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(MiddlewareConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute})(okHandler())

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodPost, "/api/search", http.NoBody)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes[i] = rr.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first requests = %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", codes[2])
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	h := RateLimit(MiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute, RateLimitDisabled: true})(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products", http.NoBody)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, rr.Code)
		}
	}
}
