package provider

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"TradeAdvisor/internal/model"
)

// FinanceProvider fetches daily bars through the finance-go chart client.
// Alternative to YahooProvider behind the same interface.
type FinanceProvider struct{}

// NewFinanceProvider creates a finance-go backed provider.
func NewFinanceProvider() *FinanceProvider { return &FinanceProvider{} }

func (p *FinanceProvider) Name() string { return "finance" }

// FetchDailyBars returns the daily series for the period, ascending by date.
func (p *FinanceProvider) FetchDailyBars(ctx context.Context, symbol, period string) (*model.PriceSeries, error) {
	days, err := PeriodDays(period)
	if err != nil {
		return nil, err
	}

	// Over-fetch by calendar days so weekends and holidays still leave
	// enough trading days, then trim.
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -(days*7/5 + 14))

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)
	bars := make([]model.Bar, 0, days)
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := iter.Bar()
		bars = append(bars, model.Bar{
			Date:   time.Unix(int64(b.Timestamp), 0).UTC().Truncate(24 * time.Hour),
			Open:   b.Open.InexactFloat64(),
			High:   b.High.InexactFloat64(),
			Low:    b.Low.InexactFloat64(),
			Close:  b.Close.InexactFloat64(),
			Volume: float64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: finance chart for %s: %v", ErrDataUnavailable, symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: finance: no data for %s", ErrDataUnavailable, symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	bars = dedupeByDate(bars)
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now().UTC()}, nil
}
