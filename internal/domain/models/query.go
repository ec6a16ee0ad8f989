package models

import "time"

// Checklist values posted by the dashboard's chart settings.
const (
	OptionShowMovingAverages = "show-ma"
	OptionShowVolume         = "show-volume"
)

// Options are the display toggles of a chart request.
type Options struct {
	ShowMovingAverages bool `json:"show_moving_averages"`
	ShowVolume         bool `json:"show_volume"`
}

// ParseOptions maps checklist values to Options. Unknown values are ignored.
func ParseOptions(values []string) Options {
	var o Options
	for _, v := range values {
		switch v {
		case OptionShowMovingAverages:
			o.ShowMovingAverages = true
		case OptionShowVolume:
			o.ShowVolume = true
		}
	}
	return o
}

// Query is everything the chart builder needs for one trigger. Start and End
// are calendar dates; Start <= End is deliberately not enforced here.
type Query struct {
	Symbol  string
	Start   time.Time
	End     time.Time
	Options Options
}
