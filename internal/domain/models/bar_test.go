package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestNewPriceSeries_SortsAndDedupes(t *testing.T) {
	ny, _ := time.LoadLocation("America/New_York")
	in := []Bar{
		{Date: time.Date(2022, 1, 4, 9, 30, 0, 0, ny), Open: 3, Close: 4},
		{Date: time.Date(2022, 1, 3, 14, 30, 0, 0, time.UTC), Open: 1, Close: 2},
		{Date: day(2022, 1, 4), Open: 5, Close: 6},
	}

	got := NewPriceSeries("AAPL", in)
	want := &PriceSeries{Symbol: "AAPL", Bars: []Bar{
		{Date: day(2022, 1, 3), Open: 1, Close: 2},
		{Date: day(2022, 1, 4), Open: 5, Close: 6},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestPriceSeries_Change(t *testing.T) {
	s := NewPriceSeries("X", []Bar{
		{Date: day(2022, 1, 3), Open: 10, Close: 12.5},
		{Date: day(2022, 1, 4), Open: 12.5, Close: 11},
	})
	if s.Bars[0].Change() != 2.5 || s.Bars[1].Change() != -1.5 {
		t.Fatalf("unexpected changes: %v %v", s.Bars[0].Change(), s.Bars[1].Change())
	}

	var empty *PriceSeries
	if empty.Len() != 0 {
		t.Fatalf("nil series should have zero length")
	}
}

func TestParseOptions(t *testing.T) {
	cases := []struct {
		in   []string
		want Options
	}{
		{nil, Options{}},
		{[]string{"show-ma"}, Options{ShowMovingAverages: true}},
		{[]string{"show-volume", "bogus"}, Options{ShowVolume: true}},
		{[]string{"show-ma", "show-volume"}, Options{ShowMovingAverages: true, ShowVolume: true}},
	}
	for _, c := range cases {
		got := ParseOptions(c.in)
		if got != c.want {
			t.Fatalf("ParseOptions(%v) = %+v, want %+v", c.in, got, c.want)
		}
	}
}
