package model

import "time"

// Bar represents one trading day's OHLCV record.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds the ordered daily bars for one symbol over one period.
// Dates are strictly ascending and unique; non-trading days are simply absent.
type PriceSeries struct {
	Symbol    string    `json:"symbol"`
	Bars      []Bar     `json:"bars"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// LastClose returns the close of the most recent bar, or 0 for an empty series.
func (s *PriceSeries) LastClose() float64 {
	if len(s.Bars) == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}

// IndicatedBar is a Bar extended with the two trailing simple moving averages.
// A nil pointer means the average is undefined because fewer than window bars
// of history exist; it is never encoded as zero.
type IndicatedBar struct {
	Bar
	ShortMA *float64 `json:"shortMA,omitempty"`
	LongMA  *float64 `json:"longMA,omitempty"`
}
