package marketdata

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/candleview/internal/domain/models"
)

var (
	// ErrNoData is returned when the upstream request succeeded but yielded no usable bars.
	ErrNoData = errors.New("no data returned")
	// ErrUnknownSymbol is returned when the upstream explicitly rejects the symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// Provider fetches daily price history. Implementations must return bars
// ascending by date, one per calendar date, and ErrNoData (wrapped) when
// nothing usable comes back. Start and End are inclusive calendar dates.
type Provider interface {
	Name() string
	FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error)
}

// Pinger is implemented by providers backed by a resource that can be probed for readiness.
type Pinger interface {
	Ping() error
}

// finish normalizes raw bars and maps an empty result to ErrNoData.
func finish(symbol string, bars []models.Bar) (*models.PriceSeries, error) {
	series := models.NewPriceSeries(symbol, bars)
	if series.Len() == 0 {
		return nil, ErrNoData
	}
	return series, nil
}

// usable reports whether a bar carries real prices. Providers report holidays
// and halted sessions as all-zero or null rows.
func usable(b models.Bar) bool {
	return !(b.Open == 0 && b.High == 0 && b.Low == 0 && b.Close == 0)
}
