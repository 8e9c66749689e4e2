// Package provider supplies ordered daily price series for a symbol over a
// lookback period. Implementations wrap a third-party market-data source and
// either produce a well-formed series or fail with ErrDataUnavailable.
package provider

import (
	"context"
	"errors"
	"fmt"

	"TradeAdvisor/internal/model"
)

var (
	// ErrDataUnavailable marks provider-side failures: unknown symbol,
	// empty range, or upstream fetch failure. Unrecoverable for the
	// invocation; the core performs no retries.
	ErrDataUnavailable = errors.New("provider: data unavailable")

	// ErrInvalidPeriod is returned for an unrecognized lookback period.
	ErrInvalidPeriod = errors.New("provider: invalid period")
)

// Provider fetches the daily bar series for one symbol. Calls are
// synchronous and single-shot; timeout policy belongs to the caller's ctx.
type Provider interface {
	FetchDailyBars(ctx context.Context, symbol, period string) (*model.PriceSeries, error)
	Name() string
}

// periodDays maps the accepted lookback periods to trading-day counts.
var periodDays = map[string]int{
	"1mo": 22,
	"3mo": 64,
	"6mo": 128,
	"1y":  252,
	"2y":  504,
}

// PeriodDays validates a period descriptor and returns its approximate
// trading-day count.
func PeriodDays(period string) (int, error) {
	days, ok := periodDays[period]
	if !ok {
		return 0, fmt.Errorf("%w: %q (want one of 1mo, 3mo, 6mo, 1y, 2y)", ErrInvalidPeriod, period)
	}
	return days, nil
}
