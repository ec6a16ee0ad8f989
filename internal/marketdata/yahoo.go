package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	"github.com/guttosm/candleview/internal/domain/models"
)

// chartIter is the subset of the finance-go chart iterator the provider consumes.
// Meta is only valid once the request has succeeded (Err returns nil).
type chartIter interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
	Meta() finance.ChartMeta
}

// setHTTPClient replaces finance-go's package-level client; overridden in tests.
var setHTTPClient = finance.SetHTTPClient

// YahooProvider implements Provider using the Yahoo Finance chart API.
type YahooProvider struct {
	get func(*chart.Params) chartIter
}

// NewYahooProvider creates a provider backed by finance-go. finance-go keeps a
// single process-wide HTTP client, so a positive timeout replaces it.
func NewYahooProvider(timeout time.Duration) *YahooProvider {
	if timeout > 0 {
		setHTTPClient(&http.Client{Timeout: timeout})
	}
	return &YahooProvider{
		get: func(p *chart.Params) chartIter { return chart.Get(p) },
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

func toDatetime(t time.Time) *datetime.Datetime {
	return &datetime.Datetime{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// exchangeLocation is the timezone the exchange stamps its daily bars in.
func exchangeLocation(meta finance.ChartMeta) *time.Location {
	if meta.ExchangeTimezoneName != "" {
		if loc, err := time.LoadLocation(meta.ExchangeTimezoneName); err == nil {
			return loc
		}
	}
	return time.FixedZone(meta.Timezone, meta.Gmtoffset)
}

// tradingDate is the exchange-local calendar date of a bar timestamp.
func tradingDate(ts int, loc *time.Location) time.Time {
	y, m, d := time.Unix(int64(ts), 0).In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FetchDaily downloads daily bars for [start, end]. Yahoo treats the end of
// the range as exclusive, so one day is added to keep end inclusive.
func (p *YahooProvider) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Interval: datetime.OneDay,
		Start:    toDatetime(start),
		End:      toDatetime(end.AddDate(0, 0, 1)),
	}
	params.Context = &ctx

	iter := p.get(params)
	var raw []*finance.ChartBar
	for iter.Next() {
		if b := iter.Bar(); b != nil {
			raw = append(raw, b)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}
	if err := iter.Err(); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "no data found") {
			return nil, fmt.Errorf("yahoo %s: %w: %v", symbol, ErrUnknownSymbol, err)
		}
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}

	var bars []models.Bar
	if len(raw) > 0 {
		loc := exchangeLocation(iter.Meta())
		for _, b := range raw {
			bar := models.Bar{
				Date:   tradingDate(b.Timestamp, loc),
				Open:   toFloat(b.Open),
				High:   toFloat(b.High),
				Low:    toFloat(b.Low),
				Close:  toFloat(b.Close),
				Volume: int64(b.Volume),
			}
			if usable(bar) {
				bars = append(bars, bar)
			}
		}
	}

	series, err := finish(symbol, bars)
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, err)
	}
	return series, nil
}
