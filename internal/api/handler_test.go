package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/candleview/config"
	"github.com/guttosm/candleview/internal/chart"
	"github.com/guttosm/candleview/internal/domain/dto"
	"github.com/guttosm/candleview/internal/service"
)

var testDefaults = config.DashboardConfig{Symbol: "AAPL", StartDate: "2022-01-01", EndDate: "2022-12-31"}

type mockChartService struct {
	out  service.ChartSet
	last service.Trigger
	hits int
}

func (m *mockChartService) BuildCharts(_ context.Context, trig service.Trigger) service.ChartSet {
	m.hits++
	m.last = trig
	if trig.Clicks <= 0 {
		return service.ChartSet{Candlestick: chart.Empty(), DailyChange: chart.Empty()}
	}
	return m.out
}

var _ service.ChartService = (*mockChartService)(nil)

func setupRouterWithMock(s service.ChartService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, testDefaults)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/charts", h.GetCharts)
	v1.GET("/defaults", h.GetDefaults)
	return r
}

func okSet() service.ChartSet {
	return service.ChartSet{
		Candlestick: chart.Figure{Data: []chart.Trace{{Type: chart.TypeCandlestick, Name: chart.CandlesticksName, X: []string{"2022-01-03"}}}},
		DailyChange: chart.Figure{Data: []chart.Trace{{Type: chart.TypeBar, Name: chart.DailyChangeName, X: []string{"2022-01-03"}}}},
	}
}

func TestGetCharts_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockChartService
		query  string
		status int
		assert func(t *testing.T, m *mockChartService, body dto.ChartsResponse)
	}{
		{
			name:   "invalid n_clicks",
			svc:    &mockChartService{},
			query:  "/api/v1/charts?n_clicks=abc",
			status: http.StatusBadRequest,
		},
		{
			name:   "before first trigger",
			svc:    &mockChartService{out: okSet()},
			query:  "/api/v1/charts?n_clicks=0&start_date=garbage",
			status: http.StatusOK,
			assert: func(t *testing.T, m *mockChartService, body dto.ChartsResponse) {
				if !body.Candlestick.IsEmpty() || !body.DailyChange.IsEmpty() || body.Error != "" {
					t.Fatalf("expected placeholders, got %+v", body)
				}
			},
		},
		{
			name:   "invalid date becomes error text",
			svc:    &mockChartService{out: okSet()},
			query:  "/api/v1/charts?n_clicks=1&symbol=AAPL&start_date=2022/01/01",
			status: http.StatusOK,
			assert: func(t *testing.T, m *mockChartService, body dto.ChartsResponse) {
				if m.hits != 0 {
					t.Fatalf("service must not run on invalid query")
				}
				if !strings.HasPrefix(body.Error, "Error: invalid start_date") || body.ErrorKind != string(service.KindInvalidQuery) {
					t.Fatalf("unexpected error slot: %q (%s)", body.Error, body.ErrorKind)
				}
				if !body.Candlestick.IsEmpty() || !body.DailyChange.IsEmpty() {
					t.Fatalf("charts must be placeholders")
				}
			},
		},
		{
			name:   "defaults fill missing dates",
			svc:    &mockChartService{out: okSet()},
			query:  "/api/v1/charts?n_clicks=2&symbol=msft&settings=show-ma&settings=show-volume",
			status: http.StatusOK,
			assert: func(t *testing.T, m *mockChartService, body dto.ChartsResponse) {
				q := m.last.Query
				if m.last.Clicks != 2 || q.Symbol != "msft" {
					t.Fatalf("unexpected trigger %+v", m.last)
				}
				if q.Start.Format("2006-01-02") != "2022-01-01" || q.End.Format("2006-01-02") != "2022-12-31" {
					t.Fatalf("defaults not applied: %v..%v", q.Start, q.End)
				}
				if !q.Options.ShowMovingAverages || !q.Options.ShowVolume {
					t.Fatalf("settings not parsed: %+v", q.Options)
				}
				if body.Error != "" || body.Candlestick.IsEmpty() {
					t.Fatalf("unexpected body %+v", body)
				}
			},
		},
		{
			name: "service failure passes through",
			svc: &mockChartService{out: service.ChartSet{
				Candlestick: chart.Empty(), DailyChange: chart.Empty(),
				Error: "Error: yahoo fetch ZZZZ: boom", ErrorKind: service.KindFetchFailed,
			}},
			query:  "/api/v1/charts?n_clicks=1&symbol=ZZZZ&start_date=2022-01-01&end_date=2022-01-10",
			status: http.StatusOK,
			assert: func(t *testing.T, m *mockChartService, body dto.ChartsResponse) {
				if body.Error != "Error: yahoo fetch ZZZZ: boom" || body.ErrorKind != "fetch_failed" {
					t.Fatalf("unexpected body %+v", body)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.query, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				var body dto.ChartsResponse
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				tc.assert(t, tc.svc, body)
			}
		})
	}
}

func TestGetCharts_PlaceholderJSON(t *testing.T) {
	r := setupRouterWithMock(&mockChartService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/charts", nil))

	want := `{"candlestick":{"data":[],"layout":{}},"error":"","daily_change":{"data":[],"layout":{}}}`
	if w.Body.String() != want {
		t.Fatalf("body = %s\nwant %s", w.Body.String(), want)
	}
}

func TestGetDefaults(t *testing.T) {
	r := setupRouterWithMock(&mockChartService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/defaults", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body dto.DefaultsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Symbol != "AAPL" || body.StartDate != "2022-01-01" || body.EndDate != "2022-12-31" || len(body.Settings) != 0 || len(body.Options) != 2 {
		t.Fatalf("unexpected defaults %+v", body)
	}
}

func TestGetCharts_InvalidClicksError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &mockChartService{}
	h := NewHandler(svc, testDefaults)

	var recorded int
	r := gin.New()
	r.GET("/api/v1/charts", func(c *gin.Context) {
		c.Next()
		recorded = len(c.Errors)
	}, h.GetCharts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/charts?n_clicks=two", nil))

	if w.Code != http.StatusBadRequest || svc.hits != 0 {
		t.Fatalf("status=%d service hits=%d", w.Code, svc.hits)
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Message != "invalid n_clicks, expected an integer" || !strings.Contains(body.ErrorDetails, "two") {
		t.Fatalf("unexpected body %+v", body)
	}
	if recorded != 1 {
		t.Fatalf("error not recorded on context: %d", recorded)
	}
}
