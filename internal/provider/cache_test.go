package provider

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"TradeAdvisor/internal/model"
)

func tempStore(t *testing.T) *BarStore {
	t.Helper()
	store, err := NewBarStore(filepath.Join(t.TempDir(), "bars.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSeries(symbol string, fetchedAt time.Time) *model.PriceSeries {
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, 3)
	for i := range bars {
		p := 100 + float64(i)
		bars[i] = model.Bar{Date: base.AddDate(0, 0, i), Open: p, High: p + 1, Low: p - 1, Close: p, Volume: 1000}
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: fetchedAt}
}

func TestBarStoreRoundtrip(t *testing.T) {
	store := tempStore(t)
	series := sampleSeries("TEST", time.Now().UTC())

	if err := store.Put("6mo", series); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get("TEST", "6mo", time.Hour)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a cached series")
	}
	if got.Len() != 3 {
		t.Fatalf("len = %d, want 3", got.Len())
	}
	for i, b := range got.Bars {
		want := series.Bars[i]
		if !b.Date.Equal(want.Date) || b.Close != want.Close || b.Volume != want.Volume {
			t.Errorf("bar %d = %+v, want %+v", i, b, want)
		}
	}
}

func TestBarStoreMissAndStale(t *testing.T) {
	store := tempStore(t)

	got, err := store.Get("NOPE", "6mo", time.Hour)
	if err != nil || got != nil {
		t.Fatalf("miss should be nil, nil; got %v, %v", got, err)
	}

	stale := sampleSeries("TEST", time.Now().UTC().Add(-2*time.Hour))
	if err := store.Put("6mo", stale); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err = store.Get("TEST", "6mo", time.Hour)
	if err != nil || got != nil {
		t.Fatalf("stale entry should read as a miss; got %v, %v", got, err)
	}
}

func TestBarStorePutReplaces(t *testing.T) {
	store := tempStore(t)
	first := sampleSeries("TEST", time.Now().UTC())
	if err := store.Put("6mo", first); err != nil {
		t.Fatalf("put: %v", err)
	}

	second := sampleSeries("TEST", time.Now().UTC())
	second.Bars = second.Bars[:2]
	second.Bars[0].Close = 999
	if err := store.Put("6mo", second); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := store.Get("TEST", "6mo", time.Hour)
	if err != nil || got == nil {
		t.Fatalf("get: %v, %v", got, err)
	}
	if got.Len() != 2 || got.Bars[0].Close != 999 {
		t.Fatalf("stale bars survived the replace: %+v", got.Bars)
	}
}

func TestCachedProviderReadThrough(t *testing.T) {
	store := tempStore(t)
	mock := &MockProvider{Series: sampleSeries("TEST", time.Now().UTC())}
	cached := &CachedProvider{Upstream: mock, Store: store, TTL: time.Hour, Log: zerolog.Nop()}

	first, err := cached.FetchDailyBars(context.Background(), "TEST", "6mo")
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := cached.FetchDailyBars(context.Background(), "TEST", "6mo")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if mock.Calls() != 1 {
		t.Fatalf("upstream called %d times, want 1", mock.Calls())
	}
	if first.Len() != second.Len() {
		t.Fatalf("cached series differs: %d vs %d bars", first.Len(), second.Len())
	}
}

func TestCachedProviderName(t *testing.T) {
	cached := &CachedProvider{Upstream: &MockProvider{}, Log: zerolog.Nop()}
	if cached.Name() != "mock+cache" {
		t.Errorf("name = %q", cached.Name())
	}
}
