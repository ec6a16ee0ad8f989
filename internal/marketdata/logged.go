package marketdata

import (
	"context"
	"time"

	"github.com/guttosm/candleview/internal/domain/models"
	"github.com/guttosm/candleview/internal/logger"
)

type loggedProvider struct {
	Provider
}

// WithLogging wraps p so that every fetch is logged with its outcome and duration.
// The wrapper keeps Pinger when p implements it.
func WithLogging(p Provider) Provider {
	lp := loggedProvider{Provider: p}
	if pinger, ok := p.(Pinger); ok {
		return loggedPinger{loggedProvider: lp, pinger: pinger}
	}
	return lp
}

func (p loggedProvider) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error) {
	log := logger.FromContext(ctx, "marketdata")
	began := time.Now()

	series, err := p.Provider.FetchDaily(ctx, symbol, start, end)
	if err != nil {
		log.Warn().Err(err).
			Str("provider", p.Name()).
			Str("symbol", symbol).
			Dur("elapsed", time.Since(began)).
			Msg("fetch failed")
		return nil, err
	}

	log.Debug().
		Str("provider", p.Name()).
		Str("symbol", symbol).
		Int("bars", series.Len()).
		Dur("elapsed", time.Since(began)).
		Msg("fetch done")
	return series, nil
}

type loggedPinger struct {
	loggedProvider
	pinger Pinger
}

func (p loggedPinger) Ping() error { return p.pinger.Ping() }
