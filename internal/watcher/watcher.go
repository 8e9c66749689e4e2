// Package watcher periodically re-runs the analysis pipeline for a watchlist
// and pushes freshly detected signals through a Notifier. Each run is an
// ordinary batch invocation of the synchronous pipeline; there is no
// streaming or intraday handling.
package watcher

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"TradeAdvisor/internal/analyzer"
	"TradeAdvisor/internal/notifier"
)

// Watcher schedules recurring analyses via cron.
type Watcher struct {
	cron     *cron.Cron
	analyzer *analyzer.Analyzer
	notifier notifier.Notifier
	log      zerolog.Logger

	symbols []string
	period  string
	opts    analyzer.Options

	// last notified signal ID per symbol, to avoid repeat alerts.
	// Cron activations run in their own goroutines, so access is locked.
	mu       sync.Mutex
	notified map[string]string
}

// New creates a Watcher. Cron specs use the seconds field.
func New(a *analyzer.Analyzer, n notifier.Notifier, log zerolog.Logger, symbols []string, period string, opts analyzer.Options) *Watcher {
	return &Watcher{
		cron:     cron.New(cron.WithSeconds()),
		analyzer: a,
		notifier: n,
		log:      log,
		symbols:  symbols,
		period:   period,
		opts:     opts,
		notified: make(map[string]string),
	}
}

// Register adds the watch task under the given cron spec.
func (w *Watcher) Register(spec string) error {
	if _, err := w.cron.AddFunc(spec, func() { w.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start begins the cron loop.
func (w *Watcher) Start() { w.cron.Start() }

// Stop halts the cron loop and waits for a running task to finish.
func (w *Watcher) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

// RunOnce analyzes every watchlist symbol and notifies about any signal that
// fired on the most recent bar.
func (w *Watcher) RunOnce(ctx context.Context) {
	for _, symbol := range w.symbols {
		if err := w.checkSymbol(ctx, symbol); err != nil {
			w.log.Error().Err(err).Str("symbol", symbol).Msg("watch analysis failed")
		}
	}
}

func (w *Watcher) checkSymbol(ctx context.Context, symbol string) error {
	analysis, err := w.analyzer.Analyze(ctx, symbol, w.period, w.opts)
	if err != nil {
		return err
	}

	latest := analysis.LatestSignal()
	if latest == nil {
		return nil
	}
	lastBarDate := analysis.Series[len(analysis.Series)-1].Date
	if !latest.Date.Equal(lastBarDate) {
		return nil // signal is historical, not fresh
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.notified[symbol] == latest.ID() {
		return nil
	}

	if err := w.notifier.NotifySignal(latest); err != nil {
		return fmt.Errorf("notify %s: %w", latest.ID(), err)
	}
	w.notified[symbol] = latest.ID()
	w.log.Info().Str("signal", latest.ID()).Msg("signal notified")
	return nil
}
