// Package notifier delivers signal alerts produced by the watch loop.
package notifier

import (
	"github.com/rs/zerolog"

	"TradeAdvisor/internal/model"
)

// Notifier pushes a detected signal to an external channel.
type Notifier interface {
	NotifySignal(sig *model.Signal) error
}

// LogNotifier writes signal alerts to the structured log. Used when no
// Telegram credentials are configured.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n *LogNotifier) NotifySignal(sig *model.Signal) error {
	n.Log.Info().
		Str("symbol", sig.Symbol).
		Str("direction", string(sig.Direction)).
		Float64("entry", sig.EntryPrice).
		Float64("stop", sig.StopLoss).
		Float64("target", sig.TakeProfit).
		Msg("crossover signal")
	return nil
}
