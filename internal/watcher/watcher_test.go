package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"TradeAdvisor/internal/analyzer"
	"TradeAdvisor/internal/model"
	"TradeAdvisor/internal/provider"
)

type recordingNotifier struct {
	signals []*model.Signal
	err     error
}

func (r *recordingNotifier) NotifySignal(sig *model.Signal) error {
	if r.err != nil {
		return r.err
	}
	r.signals = append(r.signals, sig)
	return nil
}

// freshSignalSeries ends on the crossover bar, so the detected BUY counts as
// fresh and gets notified.
func freshSignalSeries() *model.PriceSeries {
	closes := []float64{10, 10, 10, 12}
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Date: base.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return &model.PriceSeries{Symbol: "TEST", Bars: bars, FetchedAt: time.Now().UTC()}
}

func watchOptions() analyzer.Options {
	return analyzer.Options{ShortWindow: 2, LongWindow: 3, StopLossPct: 0.05, TakeProfitPct: 0.10}
}

func TestRunOnce_NotifiesFreshSignal(t *testing.T) {
	mock := &provider.MockProvider{Series: freshSignalSeries()}
	sink := &recordingNotifier{}
	w := New(analyzer.New(mock, zerolog.Nop()), sink, zerolog.Nop(), []string{"TEST"}, "6mo", watchOptions())

	w.RunOnce(context.Background())

	if len(sink.signals) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sink.signals))
	}
	sig := sink.signals[0]
	if sig.Direction != model.DirectionBuy || sig.EntryPrice != 12 {
		t.Errorf("unexpected signal %+v", sig)
	}
}

func TestRunOnce_NoDuplicateNotifications(t *testing.T) {
	mock := &provider.MockProvider{Series: freshSignalSeries()}
	sink := &recordingNotifier{}
	w := New(analyzer.New(mock, zerolog.Nop()), sink, zerolog.Nop(), []string{"TEST"}, "6mo", watchOptions())

	w.RunOnce(context.Background())
	w.RunOnce(context.Background())

	if len(sink.signals) != 1 {
		t.Fatalf("same signal notified %d times, want 1", len(sink.signals))
	}
}

func TestRunOnce_IgnoresHistoricalSignal(t *testing.T) {
	// One flat bar after the crossover: the signal is no longer on the
	// latest bar and must not be alerted.
	series := freshSignalSeries()
	last := series.Bars[len(series.Bars)-1]
	series.Bars = append(series.Bars, model.Bar{
		Date: last.Date.AddDate(0, 0, 1), Open: 12, High: 12, Low: 12, Close: 12, Volume: 1000,
	})

	mock := &provider.MockProvider{Series: series}
	sink := &recordingNotifier{}
	w := New(analyzer.New(mock, zerolog.Nop()), sink, zerolog.Nop(), []string{"TEST"}, "6mo", watchOptions())

	w.RunOnce(context.Background())

	if len(sink.signals) != 0 {
		t.Fatalf("historical signal must not notify, got %d", len(sink.signals))
	}
}

func TestRunOnce_AnalysisFailureIsIsolated(t *testing.T) {
	bad := &provider.MockProvider{Err: provider.ErrDataUnavailable}
	sink := &recordingNotifier{}
	w := New(analyzer.New(bad, zerolog.Nop()), sink, zerolog.Nop(), []string{"BAD"}, "6mo", watchOptions())

	w.RunOnce(context.Background()) // must not panic

	if len(sink.signals) != 0 {
		t.Fatalf("expected no notifications, got %d", len(sink.signals))
	}
}

func TestRunOnce_NotifyErrorRetriesNextRun(t *testing.T) {
	mock := &provider.MockProvider{Series: freshSignalSeries()}
	sink := &recordingNotifier{err: errors.New("telegram down")}
	w := New(analyzer.New(mock, zerolog.Nop()), sink, zerolog.Nop(), []string{"TEST"}, "6mo", watchOptions())

	w.RunOnce(context.Background())
	if len(sink.signals) != 0 {
		t.Fatal("failed delivery must not be recorded")
	}

	sink.err = nil
	w.RunOnce(context.Background())
	if len(sink.signals) != 1 {
		t.Fatalf("signal must be redelivered after a notify failure, got %d", len(sink.signals))
	}
}

func TestRunOnce_ConcurrentRuns(t *testing.T) {
	mock := &provider.MockProvider{Series: freshSignalSeries()}
	sink := &recordingNotifier{}
	w := New(analyzer.New(mock, zerolog.Nop()), sink, zerolog.Nop(), []string{"TEST"}, "6mo", watchOptions())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.RunOnce(context.Background())
		}()
	}
	wg.Wait()

	if len(sink.signals) != 1 {
		t.Fatalf("overlapping runs notified %d times, want 1", len(sink.signals))
	}
}

func TestRegister_InvalidSpec(t *testing.T) {
	w := New(analyzer.New(&provider.MockProvider{}, zerolog.Nop()), &recordingNotifier{}, zerolog.Nop(), nil, "6mo", watchOptions())
	if err := w.Register("not a cron spec"); err == nil {
		t.Fatal("expected an error for a malformed spec")
	}
	if err := w.Register("0 0 22 * * 1-5"); err != nil {
		t.Fatalf("six-field spec must register: %v", err)
	}
}
