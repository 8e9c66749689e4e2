package notifier

import (
	"fmt"
	"strings"

	"TradeAdvisor/internal/model"
)

// FormatSignal formats one crossover signal as a Telegram HTML message.
func FormatSignal(sig *model.Signal) string {
	var b strings.Builder

	arrow := "📈"
	if sig.Direction == model.DirectionSell {
		arrow = "📉"
	}
	b.WriteString(fmt.Sprintf("%s <b>%s %s</b> | %s\n\n", arrow, sig.Symbol, sig.Direction, sig.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Entry: %.2f\n", sig.EntryPrice))
	b.WriteString(fmt.Sprintf("Stop loss: %.2f\n", sig.StopLoss))
	b.WriteString(fmt.Sprintf("Take profit: %.2f\n\n", sig.TakeProfit))
	b.WriteString(fmt.Sprintf("Short MA: %.2f (prev %.2f)\n", sig.ShortMA, sig.PrevShortMA))
	b.WriteString(fmt.Sprintf("Long MA: %.2f (prev %.2f)\n", sig.LongMA, sig.PrevLongMA))

	return b.String()
}

// FormatAnalysis formats a full analysis as a plain-text CLI report.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s (%s)\n", a.Symbol, a.Period))
	b.WriteString(strings.Repeat("-", 35) + "\n")
	b.WriteString(fmt.Sprintf("Current price: %.2f\n", a.CurrentPrice))
	if a.ShortMA != nil {
		b.WriteString(fmt.Sprintf("Short MA:      %.2f\n", *a.ShortMA))
	} else {
		b.WriteString("Short MA:      not enough data\n")
	}
	if a.LongMA != nil {
		b.WriteString(fmt.Sprintf("Long MA:       %.2f\n", *a.LongMA))
	} else {
		b.WriteString("Long MA:       not enough data\n")
	}
	b.WriteString(fmt.Sprintf("Trend:         %s (%.2f%%)\n", a.Trend, a.TrendStrength))
	b.WriteString(fmt.Sprintf("Data points:   %d\n\n", a.DataPoints))

	b.WriteString(fmt.Sprintf("Signals: %d total (%d BUY, %d SELL)\n",
		a.SignalCounts.Total, a.SignalCounts.Buy, a.SignalCounts.Sell))
	// Show the most recent few
	start := 0
	if len(a.Signals) > 3 {
		start = len(a.Signals) - 3
	}
	for _, s := range a.Signals[start:] {
		b.WriteString(fmt.Sprintf("  %s %-4s at %.2f (stop %.2f, target %.2f)\n",
			s.Date.Format("2006-01-02"), s.Direction, s.EntryPrice, s.StopLoss, s.TakeProfit))
	}
	return b.String()
}
