package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSignalID(t *testing.T) {
	sig := Signal{
		Symbol:    "AAPL",
		Date:      time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		Direction: DirectionBuy,
	}
	if got := sig.ID(); got != "AAPL_20250605_BUY" {
		t.Errorf("ID = %q, want AAPL_20250605_BUY", got)
	}
	sig.Direction = DirectionSell
	if got := sig.ID(); got != "AAPL_20250605_SELL" {
		t.Errorf("ID = %q, want AAPL_20250605_SELL", got)
	}
}

func TestIndicatedBarJSON_OmitsAbsentAverages(t *testing.T) {
	bar := IndicatedBar{
		Bar: Bar{Date: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), Close: 10},
	}
	data, err := json.Marshal(bar)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "shortMA") || strings.Contains(string(data), "longMA") {
		t.Errorf("absent averages must be omitted, got %s", data)
	}

	v := 10.5
	bar.ShortMA = &v
	data, err = json.Marshal(bar)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"shortMA":10.5`) {
		t.Errorf("present average must be encoded, got %s", data)
	}
}

func TestPriceSeriesLastClose(t *testing.T) {
	empty := &PriceSeries{}
	if empty.LastClose() != 0 {
		t.Error("empty series should report 0")
	}
	s := &PriceSeries{Bars: []Bar{{Close: 1}, {Close: 2.5}}}
	if s.LastClose() != 2.5 {
		t.Errorf("lastClose = %v, want 2.5", s.LastClose())
	}
}

func TestAnalysisLatestSignal(t *testing.T) {
	a := &Analysis{}
	if a.LatestSignal() != nil {
		t.Error("no signals should yield nil")
	}
	a.Signals = []Signal{
		{Direction: DirectionBuy, Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
		{Direction: DirectionSell, Date: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)},
	}
	latest := a.LatestSignal()
	if latest == nil || latest.Direction != DirectionSell {
		t.Errorf("latest = %+v, want the SELL", latest)
	}
}
