// Package chart builds declarative figure descriptions for the dashboard.
//
// Figures serialize to the JSON shape Plotly.js accepts in Plotly.react, so the
// browser renders them without any further transformation.
package chart

import "time"

// Trace types understood by the renderer.
const (
	TypeCandlestick = "candlestick"
	TypeScatter     = "scatter"
	TypeBar         = "bar"
)

// Figure is one chart: a list of traces and their layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single data series. X holds calendar dates (YYYY-MM-DD).
// Y entries are pointers so that missing points encode as null and are not drawn.
type Trace struct {
	Type  string     `json:"type"`
	Name  string     `json:"name"`
	Mode  string     `json:"mode,omitempty"`
	X     []string   `json:"x"`
	Y     []*float64 `json:"y,omitempty"`
	Open  []float64  `json:"open,omitempty"`
	High  []float64  `json:"high,omitempty"`
	Low   []float64  `json:"low,omitempty"`
	Close []float64  `json:"close,omitempty"`
	YAxis string     `json:"yaxis,omitempty"`
}

// Layout is the subset of the renderer's layout options the dashboard uses.
type Layout struct {
	Title        *Text  `json:"title,omitempty"`
	XAxis        *Axis  `json:"xaxis,omitempty"`
	YAxis        *Axis  `json:"yaxis,omitempty"`
	YAxis2       *Axis  `json:"yaxis2,omitempty"`
	PaperBGColor string `json:"paper_bgcolor,omitempty"`
}

// Text is a title element.
type Text struct {
	Text string `json:"text"`
}

// Axis configures one axis.
type Axis struct {
	Title       *Text        `json:"title,omitempty"`
	RangeSlider *RangeSlider `json:"rangeslider,omitempty"`
	Overlaying  string       `json:"overlaying,omitempty"`
	Side        string       `json:"side,omitempty"`
	ShowGrid    *bool        `json:"showgrid,omitempty"`
}

// RangeSlider toggles the x axis range slider.
type RangeSlider struct {
	Visible bool `json:"visible"`
}

// Empty returns the placeholder figure shown before the first trigger and after a failure.
func Empty() Figure {
	return Figure{Data: []Trace{}}
}

// IsEmpty reports whether f has no traces.
func (f Figure) IsEmpty() bool {
	return len(f.Data) == 0
}

// Trace returns the first trace with the given name.
func (f Figure) Trace(name string) (Trace, bool) {
	for _, tr := range f.Data {
		if tr.Name == name {
			return tr, true
		}
	}
	return Trace{}, false
}

func title(s string) *Text { return &Text{Text: s} }

func dateLabel(t time.Time) string { return t.Format("2006-01-02") }
