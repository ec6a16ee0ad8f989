package indicators

import (
	"fmt"
	"time"

	"github.com/guttosm/candleview/internal/domain/models"
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// Moving average windows drawn on the candlestick chart.
const (
	ShortWindow = 50
	LongWindow  = 200
)

// TimeSeries converts a price series into a techan time series of daily candles.
// Bars must be strictly ascending by date.
func TimeSeries(series *models.PriceSeries) (*techan.TimeSeries, error) {
	ts := techan.NewTimeSeries()
	for i, b := range series.Bars {
		candle := techan.NewCandle(techan.NewTimePeriod(b.Date, 24*time.Hour))
		candle.OpenPrice = big.NewDecimal(b.Open)
		candle.MaxPrice = big.NewDecimal(b.High)
		candle.MinPrice = big.NewDecimal(b.Low)
		candle.ClosePrice = big.NewDecimal(b.Close)
		candle.Volume = big.NewFromInt(int(b.Volume))
		if !ts.AddCandle(candle) {
			return nil, fmt.Errorf("bar %d (%s) is not after the previous bar", i, b.Date.Format("2006-01-02"))
		}
	}
	return ts, nil
}

// SMA returns the simple moving average of close prices over window bars,
// aligned with ts. Entry i is nil until the window is full (i < window-1).
func SMA(ts *techan.TimeSeries, window int) ([]*float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window must be positive, got %d", window)
	}
	sma := techan.NewSimpleMovingAverage(techan.NewClosePriceIndicator(ts), window)
	out := make([]*float64, len(ts.Candles))
	for i := window - 1; i < len(ts.Candles); i++ {
		v := sma.Calculate(i).Float()
		out[i] = &v
	}
	return out, nil
}

// MovingAverages computes the short and long close-price SMAs from one time series.
func MovingAverages(series *models.PriceSeries) (short, long []*float64, err error) {
	ts, err := TimeSeries(series)
	if err != nil {
		return nil, nil, err
	}
	if short, err = SMA(ts, ShortWindow); err != nil {
		return nil, nil, err
	}
	if long, err = SMA(ts, LongWindow); err != nil {
		return nil, nil, err
	}
	return short, long, nil
}
