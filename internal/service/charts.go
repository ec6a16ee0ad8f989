package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/candleview/internal/chart"
	"github.com/guttosm/candleview/internal/domain/models"
	"github.com/guttosm/candleview/internal/indicators"
	"github.com/guttosm/candleview/internal/logger"
	"github.com/guttosm/candleview/internal/marketdata"
)

// ErrorKind classifies a failed chart build. The dashboard shows the same
// "Error: <message>" text for every kind; the kind is for clients and logs.
type ErrorKind string

const (
	KindInvalidQuery  ErrorKind = "invalid_query"
	KindFetchFailed   ErrorKind = "fetch_failed"
	KindNoData        ErrorKind = "no_data"
	KindComputeFailed ErrorKind = "compute_failed"
)

// ChartError is a failed chart build.
type ChartError struct {
	Kind ErrorKind
	Err  error
}

func (e *ChartError) Error() string { return e.Err.Error() }
func (e *ChartError) Unwrap() error { return e.Err }

// Trigger is one activation of the dashboard's update button. Clicks is the
// number of activations so far; zero means the page has not been triggered yet.
type Trigger struct {
	Clicks int
	Query  models.Query
}

// ChartSet is the three dashboard outputs of one trigger.
type ChartSet struct {
	Candlestick chart.Figure
	Error       string
	DailyChange chart.Figure
	ErrorKind   ErrorKind
}

// ChartService builds the dashboard charts.
type ChartService interface {
	BuildCharts(ctx context.Context, trig Trigger) ChartSet
}

type chartService struct {
	provider marketdata.Provider
}

// NewChartService returns a ChartService fetching from provider.
func NewChartService(provider marketdata.Provider) ChartService {
	return &chartService{provider: provider}
}

// placeholders is the output before the first trigger.
func placeholders() ChartSet {
	return ChartSet{Candlestick: chart.Empty(), DailyChange: chart.Empty()}
}

// Failure replaces both charts with placeholders and fills the error slot.
func Failure(err error) ChartSet {
	out := placeholders()
	out.Error = "Error: " + err.Error()
	out.ErrorKind = KindFetchFailed

	var ce *ChartError
	if errors.As(err, &ce) {
		out.ErrorKind = ce.Kind
	}
	return out
}

// BuildCharts runs one trigger to completion. Either both figures are built
// and Error is empty, or both figures are placeholders and Error is set.
func (s *chartService) BuildCharts(ctx context.Context, trig Trigger) ChartSet {
	if trig.Clicks <= 0 {
		return placeholders()
	}

	log := logger.FromContext(ctx, "charts")
	began := time.Now()

	out, err := s.build(ctx, trig.Query)
	if err != nil {
		res := Failure(err)
		log.Warn().Err(err).
			Str("symbol", trig.Query.Symbol).
			Str("kind", string(res.ErrorKind)).
			Msg("chart build failed")
		return res
	}

	log.Debug().
		Str("symbol", trig.Query.Symbol).
		Bool("show_ma", trig.Query.Options.ShowMovingAverages).
		Bool("show_volume", trig.Query.Options.ShowVolume).
		Dur("elapsed", time.Since(began)).
		Msg("charts built")
	return out
}

func (s *chartService) build(ctx context.Context, q models.Query) (ChartSet, error) {
	symbol := strings.ToUpper(strings.TrimSpace(q.Symbol))
	if symbol == "" {
		return ChartSet{}, &ChartError{Kind: KindInvalidQuery, Err: errors.New("symbol is required")}
	}

	series, err := s.provider.FetchDaily(ctx, symbol, q.Start, q.End)
	if err != nil {
		kind := KindFetchFailed
		if errors.Is(err, marketdata.ErrNoData) {
			kind = KindNoData
		}
		return ChartSet{}, &ChartError{Kind: kind, Err: err}
	}
	if series.Len() == 0 {
		return ChartSet{}, &ChartError{Kind: KindNoData, Err: fmt.Errorf("%s: %w", symbol, marketdata.ErrNoData)}
	}

	var overlays []chart.Overlay
	if q.Options.ShowMovingAverages {
		short, long, err := indicators.MovingAverages(series)
		if err != nil {
			return ChartSet{}, &ChartError{Kind: KindComputeFailed, Err: fmt.Errorf("moving averages: %w", err)}
		}
		overlays = append(overlays,
			chart.Overlay{Name: fmt.Sprintf("%d-day MA", indicators.ShortWindow), Values: short},
			chart.Overlay{Name: fmt.Sprintf("%d-day MA", indicators.LongWindow), Values: long},
		)
	}

	candles := chart.Candlestick(symbol, series, overlays...)
	if q.Options.ShowVolume {
		candles = chart.WithVolume(candles, series)
	}

	return ChartSet{
		Candlestick: candles,
		DailyChange: chart.DailyChange(series),
	}, nil
}
