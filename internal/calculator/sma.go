// Package calculator computes trailing simple moving averages over a price series.
package calculator

import (
	"errors"

	"TradeAdvisor/internal/model"
)

var (
	// ErrInvalidWindow is returned when shortWindow < 1 or longWindow <= shortWindow.
	ErrInvalidWindow = errors.New("calculator: invalid moving average windows")
	// ErrEmptySeries is returned when the input series has no bars.
	ErrEmptySeries = errors.New("calculator: empty price series")
)

// AddMovingAverages augments each bar of the series with two trailing simple
// moving averages of the close price. The average over a window is undefined
// (nil) for the first window-1 bars; a series shorter than a window simply
// yields an all-nil column, not an error. Output length always equals input
// length.
func AddMovingAverages(series *model.PriceSeries, shortWindow, longWindow int) ([]model.IndicatedBar, error) {
	if shortWindow < 1 || longWindow <= shortWindow {
		return nil, ErrInvalidWindow
	}
	if series == nil || len(series.Bars) == 0 {
		return nil, ErrEmptySeries
	}

	out := make([]model.IndicatedBar, len(series.Bars))
	for i, bar := range series.Bars {
		out[i] = model.IndicatedBar{Bar: bar}
		if i >= shortWindow-1 {
			ma := windowMean(series.Bars, i, shortWindow)
			out[i].ShortMA = &ma
		}
		if i >= longWindow-1 {
			ma := windowMean(series.Bars, i, longWindow)
			out[i].LongMA = &ma
		}
	}
	return out, nil
}

// windowMean averages the closes over bars [end-window+1, end].
func windowMean(bars []model.Bar, end, window int) float64 {
	sum := 0.0
	for i := end - window + 1; i <= end; i++ {
		sum += bars[i].Close
	}
	return sum / float64(window)
}
