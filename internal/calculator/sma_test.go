package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"TradeAdvisor/internal/model"
)

func seriesFromCloses(closes []float64) *model.PriceSeries {
	base := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Date: base.AddDate(0, 0, i), Open: c, High: c * 1.01, Low: c * 0.99, Close: c, Volume: 1000}
	}
	return &model.PriceSeries{Symbol: "TEST", Bars: bars}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAddMovingAverages_LengthAndAbsence(t *testing.T) {
	series := seriesFromCloses([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	out, err := AddMovingAverages(series, 3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != series.Len() {
		t.Fatalf("expected %d bars, got %d", series.Len(), len(out))
	}
	for i := 0; i < 2; i++ {
		if out[i].ShortMA != nil {
			t.Errorf("bar %d: shortMA should be absent", i)
		}
	}
	for i := 0; i < 4; i++ {
		if out[i].LongMA != nil {
			t.Errorf("bar %d: longMA should be absent", i)
		}
	}
	for i := 2; i < len(out); i++ {
		if out[i].ShortMA == nil {
			t.Errorf("bar %d: shortMA should be present", i)
		}
	}
	for i := 4; i < len(out); i++ {
		if out[i].LongMA == nil {
			t.Errorf("bar %d: longMA should be present", i)
		}
	}
}

func TestAddMovingAverages_Values(t *testing.T) {
	series := seriesFromCloses([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	out, err := AddMovingAverages(series, 3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := []struct {
		idx   int
		short float64
		long  float64
	}{
		{2, 2, math.NaN()},
		{4, 4, 3},
		{9, 9, 8},
	}
	for _, tt := range tests {
		if got := *out[tt.idx].ShortMA; !approx(got, tt.short) {
			t.Errorf("bar %d: shortMA = %v, want %v", tt.idx, got, tt.short)
		}
		if !math.IsNaN(tt.long) {
			if got := *out[tt.idx].LongMA; !approx(got, tt.long) {
				t.Errorf("bar %d: longMA = %v, want %v", tt.idx, got, tt.long)
			}
		}
	}
}

func TestAddMovingAverages_InvalidWindow(t *testing.T) {
	series := seriesFromCloses([]float64{1, 2, 3})
	tests := []struct{ short, long int }{
		{0, 5},
		{-1, 5},
		{5, 5},
		{5, 3},
	}
	for _, tt := range tests {
		if _, err := AddMovingAverages(series, tt.short, tt.long); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("windows (%d, %d): expected ErrInvalidWindow, got %v", tt.short, tt.long, err)
		}
	}
}

func TestAddMovingAverages_EmptySeries(t *testing.T) {
	if _, err := AddMovingAverages(&model.PriceSeries{Symbol: "TEST"}, 2, 3); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
	if _, err := AddMovingAverages(nil, 2, 3); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("nil series: expected ErrEmptySeries, got %v", err)
	}
}

func TestAddMovingAverages_SeriesShorterThanWindow(t *testing.T) {
	series := seriesFromCloses([]float64{5, 6, 7})
	out, err := AddMovingAverages(series, 2, 5)
	if err != nil {
		t.Fatalf("short series should not be an error: %v", err)
	}
	for i, bar := range out {
		if bar.LongMA != nil {
			t.Errorf("bar %d: longMA should be absent for a series shorter than the window", i)
		}
	}
	if out[0].ShortMA != nil {
		t.Error("bar 0: shortMA should be absent")
	}
	if out[1].ShortMA == nil || !approx(*out[1].ShortMA, 5.5) {
		t.Errorf("bar 1: shortMA = %v, want 5.5", out[1].ShortMA)
	}
}
