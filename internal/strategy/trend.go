package strategy

import "TradeAdvisor/internal/model"

// ClassifyTrend labels the relationship between the current price and the two
// moving averages. This is a formatting concern independent of the crossover
// engine: callers get INSUFFICIENT_DATA when either average is undefined.
//
// Strength is the percentage gap between the averages relative to the long
// one, always reported as a positive magnitude except for bullish alignment
// where it carries the sign of the short-over-long spread.
func ClassifyTrend(price float64, shortMA, longMA *float64) (model.TrendLabel, float64) {
	if shortMA == nil || longMA == nil {
		return model.TrendInsufficientData, 0
	}
	s, l := *shortMA, *longMA
	switch {
	case price > s && s > l:
		return model.TrendStrongBullish, (s - l) / l * 100
	case price > s && s < l:
		return model.TrendMixedBullish, (l - s) / l * 100
	case price < s && s < l:
		return model.TrendStrongBearish, (l - s) / l * 100
	default:
		return model.TrendMixedBearish, (s - l) / l * 100
	}
}
