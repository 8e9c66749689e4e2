// Package analyzer wires the full pipeline: fetch a price series, compute the
// moving averages, detect crossover signals, and classify the current trend.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"TradeAdvisor/internal/calculator"
	"TradeAdvisor/internal/metrics"
	"TradeAdvisor/internal/model"
	"TradeAdvisor/internal/provider"
	"TradeAdvisor/internal/strategy"
)

// Options are the per-invocation pipeline parameters. Every computation is a
// pure function of these inputs plus the fetched series; the analyzer itself
// holds no mutable state between invocations.
type Options struct {
	ShortWindow   int
	LongWindow    int
	StopLossPct   float64
	TakeProfitPct float64
}

// DefaultOptions returns the standard 20/50 crossover with 5% stop and 10% target.
func DefaultOptions() Options {
	return Options{
		ShortWindow:   20,
		LongWindow:    50,
		StopLossPct:   strategy.DefaultStopLossPct,
		TakeProfitPct: strategy.DefaultTakeProfitPct,
	}
}

// Analyzer runs the signal pipeline against a data provider. Invocations for
// different symbols share no mutable state and may run concurrently.
type Analyzer struct {
	provider provider.Provider
	log      zerolog.Logger
}

// New creates an Analyzer on top of the given provider.
func New(p provider.Provider, log zerolog.Logger) *Analyzer {
	return &Analyzer{provider: p, log: log}
}

// Analyze executes one synchronous pipeline run for the symbol and period.
// Configuration errors are reported before any fetch happens.
func (a *Analyzer) Analyze(ctx context.Context, symbol, period string, opts Options) (*model.Analysis, error) {
	if opts.ShortWindow < 1 || opts.LongWindow <= opts.ShortWindow {
		return nil, calculator.ErrInvalidWindow
	}
	if opts.StopLossPct <= 0 || opts.TakeProfitPct <= 0 {
		return nil, strategy.ErrInvalidRiskParams
	}

	start := time.Now()
	series, err := a.provider.FetchDailyBars(ctx, symbol, period)
	metrics.FetchDuration.WithLabelValues(a.provider.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(symbol, "fetch_error").Inc()
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	a.log.Debug().Str("symbol", symbol).Str("period", period).Int("bars", series.Len()).Msg("series fetched")

	indicated, err := calculator.AddMovingAverages(series, opts.ShortWindow, opts.LongWindow)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(symbol, "error").Inc()
		return nil, fmt.Errorf("indicators for %s: %w", symbol, err)
	}

	signals, err := strategy.FindCrossoverSignals(indicated, symbol, opts.StopLossPct, opts.TakeProfitPct)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(symbol, "error").Inc()
		return nil, fmt.Errorf("signals for %s: %w", symbol, err)
	}
	for _, s := range signals {
		metrics.SignalsDetected.WithLabelValues(string(s.Direction)).Inc()
	}

	latest := indicated[len(indicated)-1]
	trend, strength := strategy.ClassifyTrend(latest.Close, latest.ShortMA, latest.LongMA)

	metrics.AnalysesTotal.WithLabelValues(symbol, "ok").Inc()
	a.log.Info().
		Str("symbol", symbol).
		Str("trend", string(trend)).
		Int("signals", len(signals)).
		Msg("analysis complete")

	return &model.Analysis{
		Symbol:        symbol,
		Period:        period,
		CurrentPrice:  latest.Close,
		ShortMA:       latest.ShortMA,
		LongMA:        latest.LongMA,
		Trend:         trend,
		TrendStrength: strength,
		DataPoints:    len(indicated),
		Signals:       signals,
		SignalCounts:  strategy.CountSignals(signals),
		Series:        indicated,
		AnalyzedAt:    time.Now().UTC(),
	}, nil
}
