package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/candleview/config"
	"github.com/guttosm/candleview/internal/domain/dto"
	"github.com/guttosm/candleview/internal/domain/models"
	"github.com/guttosm/candleview/internal/middleware"
	"github.com/guttosm/candleview/internal/service"
)

// Handler provides HTTP handlers for the chart dashboard.
//
// Responsibilities:
//   - Collect the trigger count, symbol, date range and chart settings from the request
//   - Delegate chart construction to the ChartService
//   - Translate the resulting ChartSet into the response DTO
type Handler struct {
	svc      service.ChartService
	defaults config.DashboardConfig
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.ChartService): builds the charts for each trigger.
//   - defaults (config.DashboardConfig): collector values used when a field is omitted.
func NewHandler(svc service.ChartService, defaults config.DashboardConfig) *Handler {
	return &Handler{svc: svc, defaults: defaults}
}

// GetCharts handles GET /api/v1/charts requests.
//
// Query Parameters:
//   - n_clicks (int, optional): number of times the update button was pressed; 0 returns placeholders.
//   - symbol (string): ticker symbol, e.g. "AAPL".
//   - start_date, end_date (string, optional): YYYY-MM-DD; default to the dashboard defaults.
//   - settings (string, repeatable): "show-ma" and/or "show-volume".
//
// Responses:
//   - 200 OK: ChartsResponse. A failed build is still 200, with both figures empty and the error slot set.
//   - 400 Bad Request: n_clicks is not an integer.
//
// GetCharts godoc
// @Summary      Build dashboard charts
// @Description  Fetches daily prices for the symbol and returns a candlestick figure (optionally with 50/200-day moving averages and volume) and a daily price change figure
// @Tags         charts
// @Produce      json
// @Param        n_clicks    query     int     false  "Trigger count" example(1)
// @Param        symbol      query     string  false  "Ticker symbol" example(AAPL)
// @Param        start_date  query     string  false  "Start date YYYY-MM-DD" example(2022-01-01)
// @Param        end_date    query     string  false  "End date YYYY-MM-DD" example(2022-12-31)
// @Param        settings    query     []string  false  "Chart settings" collectionFormat(multi) Enums(show-ma, show-volume)
// @Success      200         {object}  dto.ChartsResponse  "Charts or error text"
// @Failure      400         {object}  dto.ErrorResponse   "Bad Request"
// @Router       /api/v1/charts [get]
func (h *Handler) GetCharts(c *gin.Context) {
	// ─── Trigger count ────────────────────────────────────────
	clicks := 0
	if s := strings.TrimSpace(c.Query("n_clicks")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid n_clicks, expected an integer", err)
			return
		}
		clicks = n
	}

	trig := service.Trigger{Clicks: clicks}
	if clicks <= 0 {
		c.JSON(http.StatusOK, toResponse(h.svc.BuildCharts(c.Request.Context(), trig)))
		return
	}

	// ─── Query fields ─────────────────────────────────────────
	q, err := h.parseQuery(c)
	if err != nil {
		c.JSON(http.StatusOK, toResponse(service.Failure(&service.ChartError{Kind: service.KindInvalidQuery, Err: err})))
		return
	}
	trig.Query = q

	c.JSON(http.StatusOK, toResponse(h.svc.BuildCharts(c.Request.Context(), trig)))
}

func (h *Handler) parseQuery(c *gin.Context) (models.Query, error) {
	start, err := parseDate("start_date", c.DefaultQuery("start_date", h.defaults.StartDate))
	if err != nil {
		return models.Query{}, err
	}
	end, err := parseDate("end_date", c.DefaultQuery("end_date", h.defaults.EndDate))
	if err != nil {
		return models.Query{}, err
	}

	return models.Query{
		Symbol:  c.Query("symbol"),
		Start:   start,
		End:     end,
		Options: models.ParseOptions(c.QueryArray("settings")),
	}, nil
}

func parseDate(field, s string) (time.Time, error) {
	d, err := time.Parse(config.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q, expected YYYY-MM-DD", field, s)
	}
	return d, nil
}

func toResponse(set service.ChartSet) dto.ChartsResponse {
	return dto.ChartsResponse{
		Candlestick: set.Candlestick,
		Error:       set.Error,
		DailyChange: set.DailyChange,
		ErrorKind:   string(set.ErrorKind),
	}
}

// GetDefaults handles GET /api/v1/defaults.
//
// GetDefaults godoc
// @Summary      Collector defaults
// @Description  Returns the initial symbol, date range and chart settings of the dashboard form
// @Tags         charts
// @Produce      json
// @Success      200  {object}  dto.DefaultsResponse
// @Router       /api/v1/defaults [get]
func (h *Handler) GetDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, h.defaultsResponse())
}

func (h *Handler) defaultsResponse() dto.DefaultsResponse {
	return dto.DefaultsResponse{
		Symbol:    h.defaults.Symbol,
		StartDate: h.defaults.StartDate,
		EndDate:   h.defaults.EndDate,
		Settings:  []string{},
		Options: []dto.Option{
			{Label: "Show Moving Averages", Value: models.OptionShowMovingAverages},
			{Label: "Show Volume", Value: models.OptionShowVolume},
		},
	}
}

// Dashboard renders the single-page dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.defaultsResponse())
}
