package model

import "time"

// TrendLabel classifies the current price against both moving averages.
// This is a presentation heuristic layered on top of the crossover engine.
type TrendLabel string

const (
	TrendStrongBullish    TrendLabel = "STRONG_BULLISH"
	TrendMixedBullish     TrendLabel = "MIXED_BULLISH"
	TrendStrongBearish    TrendLabel = "STRONG_BEARISH"
	TrendMixedBearish     TrendLabel = "MIXED_BEARISH"
	TrendInsufficientData TrendLabel = "INSUFFICIENT_DATA"
)

// SignalCounts summarizes the signal list by direction.
type SignalCounts struct {
	Total int `json:"total"`
	Buy   int `json:"buy"`
	Sell  int `json:"sell"`
}

// Analysis is the full result of one pipeline invocation for a symbol.
type Analysis struct {
	Symbol        string         `json:"symbol"`
	Period        string         `json:"period"`
	CurrentPrice  float64        `json:"currentPrice"`
	ShortMA       *float64       `json:"shortMA"`
	LongMA        *float64       `json:"longMA"`
	Trend         TrendLabel     `json:"trend"`
	TrendStrength float64        `json:"trendStrength"`
	DataPoints    int            `json:"dataPoints"`
	Signals       []Signal       `json:"signals"`
	SignalCounts  SignalCounts   `json:"signalCounts"`
	Series        []IndicatedBar `json:"series"`
	AnalyzedAt    time.Time      `json:"analyzedAt"`
}

// LatestSignal returns the most recent signal, or nil when none exist.
func (a *Analysis) LatestSignal() *Signal {
	if len(a.Signals) == 0 {
		return nil
	}
	return &a.Signals[len(a.Signals)-1]
}
