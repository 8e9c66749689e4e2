package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"TradeAdvisor/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider fetches daily bars from the Yahoo Finance public chart API.
type YahooProvider struct {
	Client    *http.Client
	BaseURL   string
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooProvider creates a Yahoo Finance provider, optionally routed
// through an HTTP proxy.
func NewYahooProvider(proxyURL string) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: defaultYahooBaseURL,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

func (p *YahooProvider) yahooSymbol(symbol string) string {
	if mapped, ok := p.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchDailyBars returns the daily series for the period, ascending by date.
func (p *YahooProvider) FetchDailyBars(ctx context.Context, symbol, period string) (*model.PriceSeries, error) {
	days, err := PeriodDays(period)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		p.BaseURL, url.PathEscape(p.yahooSymbol(symbol)), period)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo fetch: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo read body: %v", ErrDataUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: yahoo status %d for %s", ErrDataUnavailable, resp.StatusCode, symbol)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%w: yahoo decode: %v", ErrDataUnavailable, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: yahoo api error: %s", ErrDataUnavailable, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("%w: yahoo: no data for %s", ErrDataUnavailable, symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: yahoo: no quote data for %s", ErrDataUnavailable, symbol)
	}
	quote := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	if len(quote.Open) < n || len(quote.High) < n || len(quote.Low) < n ||
		len(quote.Close) < n || len(quote.Volume) < n {
		return nil, fmt.Errorf("%w: yahoo: truncated quote columns for %s", ErrDataUnavailable, symbol)
	}
	bars := make([]model.Bar, 0, n)

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: yahoo: only null bars for %s", ErrDataUnavailable, symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	bars = dedupeByDate(bars)

	// Trim to the requested trading-day count
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now().UTC()}, nil
}

// dedupeByDate drops repeated dates from a date-sorted bar slice, keeping the
// last bar of each day.
func dedupeByDate(bars []model.Bar) []model.Bar {
	out := bars[:0]
	for _, b := range bars {
		if len(out) > 0 && out[len(out)-1].Date.Equal(b.Date) {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
