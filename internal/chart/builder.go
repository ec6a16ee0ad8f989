package chart

import "github.com/guttosm/candleview/internal/domain/models"

// Trace names.
const (
	CandlesticksName = "Candlesticks"
	VolumeName       = "Volume"
	DailyChangeName  = "Daily Price Change"
)

// Overlay is a line series drawn over the candlesticks. Values must be aligned
// with the series bars; nil entries are not plotted.
type Overlay struct {
	Name   string
	Values []*float64
}

// Candlestick builds the price chart: one candlestick trace with a point per
// bar, followed by one line trace per overlay.
func Candlestick(symbol string, series *models.PriceSeries, overlays ...Overlay) Figure {
	n := series.Len()
	candles := Trace{
		Type:  TypeCandlestick,
		Name:  CandlesticksName,
		X:     make([]string, n),
		Open:  make([]float64, n),
		High:  make([]float64, n),
		Low:   make([]float64, n),
		Close: make([]float64, n),
	}
	for i, b := range series.Bars {
		candles.X[i] = dateLabel(b.Date)
		candles.Open[i] = b.Open
		candles.High[i] = b.High
		candles.Low[i] = b.Low
		candles.Close[i] = b.Close
	}

	fig := Figure{Data: []Trace{candles}}
	for _, ov := range overlays {
		fig.Data = append(fig.Data, Trace{
			Type: TypeScatter,
			Name: ov.Name,
			Mode: "lines",
			X:    candles.X,
			Y:    ov.Values,
		})
	}

	fig.Layout = Layout{
		Title: title("Candlestick Chart for " + symbol),
		XAxis: &Axis{
			Title:       title("Date"),
			RangeSlider: &RangeSlider{Visible: false},
		},
		YAxis:        &Axis{Title: title("Price")},
		PaperBGColor: "lightgray",
	}
	return fig
}

// WithVolume adds a volume bar trace on a secondary y axis to a candlestick figure.
func WithVolume(fig Figure, series *models.PriceSeries) Figure {
	n := series.Len()
	vol := Trace{
		Type:  TypeBar,
		Name:  VolumeName,
		X:     make([]string, n),
		Y:     make([]*float64, n),
		YAxis: "y2",
	}
	for i, b := range series.Bars {
		v := float64(b.Volume)
		vol.X[i] = dateLabel(b.Date)
		vol.Y[i] = &v
	}

	noGrid := false
	fig.Data = append(fig.Data, vol)
	fig.Layout.YAxis2 = &Axis{
		Title:      title("Volume"),
		Overlaying: "y",
		Side:       "right",
		ShowGrid:   &noGrid,
	}
	return fig
}

// DailyChange builds the bar chart of close - open for every bar.
func DailyChange(series *models.PriceSeries) Figure {
	n := series.Len()
	bars := Trace{
		Type: TypeBar,
		Name: DailyChangeName,
		X:    make([]string, n),
		Y:    make([]*float64, n),
	}
	for i, b := range series.Bars {
		c := b.Change()
		bars.X[i] = dateLabel(b.Date)
		bars.Y[i] = &c
	}

	return Figure{
		Data: []Trace{bars},
		Layout: Layout{
			Title: title("Daily Price Change"),
			XAxis: &Axis{Title: title("Date")},
			YAxis: &Axis{Title: title("Price Change")},
		},
	}
}
