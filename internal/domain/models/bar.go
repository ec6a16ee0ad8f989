package models

import (
	"sort"
	"time"
)

// Bar is one trading day of a price history.
//
// Date is always a UTC calendar date (00:00:00 UTC). Volume is zero when the
// upstream provider does not report it.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Change is the daily price change of the bar (close - open).
func (b Bar) Change() float64 {
	return b.Close - b.Open
}

// PriceSeries is a date-ordered daily price history for one symbol.
// It is built once per chart request and never mutated afterwards.
type PriceSeries struct {
	Symbol string `json:"symbol"`
	Bars   []Bar  `json:"bars"`
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewPriceSeries normalizes raw bars into a PriceSeries: dates are truncated to
// UTC calendar dates, bars are sorted ascending and, for duplicate dates, the
// last bar given wins.
func NewPriceSeries(symbol string, bars []Bar) *PriceSeries {
	byDate := make(map[time.Time]int, len(bars))
	out := make([]Bar, 0, len(bars))
	for _, b := range bars {
		b.Date = DateOf(b.Date)
		if idx, ok := byDate[b.Date]; ok {
			out[idx] = b
			continue
		}
		byDate[b.Date] = len(out)
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return &PriceSeries{Symbol: symbol, Bars: out}
}
