// Package strategy detects moving-average crossovers and annotates each
// resulting signal with stop-loss and take-profit prices.
package strategy

import (
	"errors"

	"TradeAdvisor/internal/model"
)

// ErrInvalidRiskParams is returned when a risk percentage is not positive.
var ErrInvalidRiskParams = errors.New("strategy: risk percentages must be positive")

// Default risk configuration, overridable per invocation (1:2 risk/reward).
const (
	DefaultStopLossPct   = 0.05
	DefaultTakeProfitPct = 0.10
)

// FindCrossoverSignals scans the indicated series for points where the short
// moving average crosses the long one and returns the signals in input order.
//
// A bar is eligible only when both averages are defined for it and for the
// immediately preceding bar. A BUY fires when the short average moves from
// at-or-below to strictly above the long one, a SELL on the reverse. A bar
// where the averages are exactly equal is a neutral pivot: it emits nothing
// itself and the next bar's comparison resolves it.
//
// No crossovers, or fewer than two eligible bars, yields an empty (non-nil)
// slice, not an error.
func FindCrossoverSignals(bars []model.IndicatedBar, symbol string, stopLossPct, takeProfitPct float64) ([]model.Signal, error) {
	if stopLossPct <= 0 || takeProfitPct <= 0 {
		return nil, ErrInvalidRiskParams
	}

	signals := []model.Signal{}
	for i := 1; i < len(bars); i++ {
		prev, cur := bars[i-1], bars[i]
		if prev.ShortMA == nil || prev.LongMA == nil || cur.ShortMA == nil || cur.LongMA == nil {
			continue
		}

		prevDiff := *prev.ShortMA - *prev.LongMA
		curDiff := *cur.ShortMA - *cur.LongMA

		var dir model.Direction
		switch {
		case prevDiff <= 0 && curDiff > 0:
			dir = model.DirectionBuy
		case prevDiff >= 0 && curDiff < 0:
			dir = model.DirectionSell
		default:
			continue
		}

		sig := model.Signal{
			Symbol:      symbol,
			Date:        cur.Date,
			Direction:   dir,
			EntryPrice:  cur.Close,
			ShortMA:     *cur.ShortMA,
			LongMA:      *cur.LongMA,
			PrevShortMA: *prev.ShortMA,
			PrevLongMA:  *prev.LongMA,
		}
		if dir == model.DirectionBuy {
			sig.StopLoss = cur.Close * (1 - stopLossPct)
			sig.TakeProfit = cur.Close * (1 + takeProfitPct)
		} else {
			sig.StopLoss = cur.Close * (1 + stopLossPct)
			sig.TakeProfit = cur.Close * (1 - takeProfitPct)
		}
		signals = append(signals, sig)
	}
	return signals, nil
}

// CountSignals tallies the list by direction.
func CountSignals(signals []model.Signal) model.SignalCounts {
	counts := model.SignalCounts{Total: len(signals)}
	for _, s := range signals {
		if s.Direction == model.DirectionBuy {
			counts.Buy++
		} else {
			counts.Sell++
		}
	}
	return counts
}
