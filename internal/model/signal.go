package model

import (
	"fmt"
	"time"
)

// Direction indicates which way a crossover signal points.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// Signal is one crossover event with its risk annotation. Signals are
// immutable once produced; identity is (symbol, date, direction).
// The MA values at and immediately before the crossover are carried
// for auditability.
type Signal struct {
	Symbol      string    `json:"symbol"`
	Date        time.Time `json:"date"`
	Direction   Direction `json:"direction"`
	EntryPrice  float64   `json:"entryPrice"`
	StopLoss    float64   `json:"stopLoss"`
	TakeProfit  float64   `json:"takeProfit"`
	ShortMA     float64   `json:"shortMA"`
	LongMA      float64   `json:"longMA"`
	PrevShortMA float64   `json:"prevShortMA"`
	PrevLongMA  float64   `json:"prevLongMA"`
}

// ID returns the boundary identifier "{SYMBOL}_{YYYYMMDD}_{DIRECTION}".
func (s *Signal) ID() string {
	return fmt.Sprintf("%s_%s_%s", s.Symbol, s.Date.Format("20060102"), s.Direction)
}
