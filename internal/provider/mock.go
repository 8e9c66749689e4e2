package provider

import (
	"context"
	"sync"
	"time"

	"TradeAdvisor/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
// Safe for concurrent fetches.
type MockProvider struct {
	Price  float64
	Series *model.PriceSeries
	Err    error

	mu    sync.Mutex
	calls int
}

func (m *MockProvider) Name() string { return "mock" }

// Calls reports how many valid fetches reached the provider.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockProvider) FetchDailyBars(_ context.Context, symbol, period string) (*model.PriceSeries, error) {
	days, err := PeriodDays(period)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Series != nil {
		return m.Series, nil
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Bars:      GenerateBars(m.Price, days),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// GenerateBars builds a gently trending series around basePrice, one bar per
// weekday ending today.
func GenerateBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, 0, count)
	day := time.Now().UTC().Truncate(24 * time.Hour)
	dates := make([]time.Time, 0, count)
	for len(dates) < count {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			dates = append(dates, day)
		}
		day = day.AddDate(0, 0, -1)
	}
	for i := count - 1; i >= 0; i-- {
		p := basePrice * (1 + float64((count-1-i)-count/2)*0.001)
		bars = append(bars, model.Bar{
			Date:   dates[i],
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
	}
	return bars
}
