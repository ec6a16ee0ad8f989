package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/candleview/internal/domain/dto"
	"github.com/guttosm/candleview/internal/middleware"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := NewRouter(NewHandler(&mockChartService{out: okSet()}, testDefaults), RouterOptions{RateLimitPerMinute: 1000})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/charts?n_clicks=1&symbol=AAPL&start_date=2022-01-01&end_date=2022-01-10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	var out dto.ChartsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.Candlestick.IsEmpty() || out.DailyChange.IsEmpty() {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestNewRouter_DashboardAndAssets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(&mockChartService{}, testDefaults), RouterOptions{RateLimitPerMinute: 1000})

	cases := []struct {
		path     string
		contains string
	}{
		{path: "/", contains: `value="AAPL"`},
		{path: "/assets/styles.css", contains: ".error-message"},
		{path: "/assets/example.pdf", contains: "%PDF-"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.contains) {
				t.Fatalf("body of %s does not contain %q", tc.path, tc.contains)
			}
		})
	}
}

func TestNewRouter_RateLimitScopedToAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(&mockChartService{}, testDefaults), RouterOptions{RateLimitPerMinute: 2})
	t.Cleanup(func() { middleware.SetRateLimit(60, time.Minute) })
	NewHealthHandler("yahoo", nil).Register(r)

	get := func(path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}

	for i := 0; i < 5; i++ {
		for _, path := range []string{"/", "/assets/styles.css", "/healthz", "/readyz"} {
			if code := get(path); code != http.StatusOK {
				t.Fatalf("GET %s #%d = %d, want 200", path, i+1, code)
			}
		}
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i, code := range want {
		if got := get("/api/v1/defaults"); got != code {
			t.Fatalf("API request %d = %d, want %d", i+1, got, code)
		}
	}
}
