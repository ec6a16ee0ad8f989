package dto

import "github.com/guttosm/candleview/internal/chart"

// ChartsResponse represents the JSON structure returned by GET /api/v1/charts.
//
// It mirrors the three dashboard outputs: the candlestick figure, the error
// slot and the daily price change figure. ErrorKind is empty on success.
type ChartsResponse struct {
	Candlestick chart.Figure `json:"candlestick"`
	Error       string       `json:"error" example:"Error: no data returned for symbol ZZZZ"`
	DailyChange chart.Figure `json:"daily_change"`
	ErrorKind   string       `json:"error_kind,omitempty" example:"no_data"`
}

// DefaultsResponse carries the collector's initial field values.
type DefaultsResponse struct {
	Symbol    string   `json:"symbol" example:"AAPL"`
	StartDate string   `json:"start_date" example:"2022-01-01"`
	EndDate   string   `json:"end_date" example:"2022-12-31"`
	Settings  []string `json:"settings"`
	Options   []Option `json:"options"`
}

// Option is one entry of the chart settings checklist.
type Option struct {
	Label string `json:"label" example:"Show Moving Averages"`
	Value string `json:"value" example:"show-ma"`
}
