package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/guttosm/candleview/internal/domain/models"
)

const fmpDateLayout = "2006-01-02"

// FMPProvider implements Provider using the Financial Modeling Prep end-of-day API.
type FMPProvider struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewFMPProvider instantiates a new FMP provider.
func NewFMPProvider(baseURL, apiKey string, timeout time.Duration) *FMPProvider {
	return &FMPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (p *FMPProvider) Name() string { return "fmp" }

// FetchDaily fetches the full end-of-day history for [start, end].
func (p *FMPProvider) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error) {
	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("from", start.Format(fmpDateLayout))
	params.Add("to", end.Format(fmpDateLayout))
	params.Add("apikey", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/historical-price-eod/full?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("fmp request: %w", err)
	}

	resp, err := p.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching daily history for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fmp: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("fmp: malformed response for %s", symbol)
	}

	root := gjson.ParseBytes(body)
	if msg := root.Get("Error Message"); msg.Exists() {
		return nil, fmt.Errorf("fmp: %s", msg.String())
	}

	bars, err := parseFMPBars(root)
	if err != nil {
		return nil, err
	}
	series, err := finish(symbol, bars)
	if err != nil {
		return nil, fmt.Errorf("fmp %s: %w", symbol, err)
	}
	return series, nil
}

// parseFMPBars reads bars from either a bare array or the legacy
// {"symbol": ..., "historical": [...]} envelope.
func parseFMPBars(root gjson.Result) ([]models.Bar, error) {
	data := root
	if !root.IsArray() {
		data = root.Get("historical")
	}

	rows := data.Array()
	bars := make([]models.Bar, 0, len(rows))
	for idx := range rows {
		dt, err := time.Parse(fmpDateLayout, rows[idx].Get("date").String())
		if err != nil {
			return nil, fmt.Errorf("parsing bar date: %w", err)
		}
		bar := models.Bar{
			Date:   dt,
			Open:   rows[idx].Get("open").Float(),
			High:   rows[idx].Get("high").Float(),
			Low:    rows[idx].Get("low").Float(),
			Close:  rows[idx].Get("close").Float(),
			Volume: rows[idx].Get("volume").Int(),
		}
		if usable(bar) {
			bars = append(bars, bar)
		}
	}
	return bars, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
