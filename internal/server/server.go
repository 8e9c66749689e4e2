// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"TradeAdvisor/internal/analyzer"
	"TradeAdvisor/internal/calculator"
	"TradeAdvisor/internal/model"
	"TradeAdvisor/internal/provider"
	"TradeAdvisor/internal/strategy"
)

// Server serves the REST API on top of an Analyzer.
type Server struct {
	analyzer      *analyzer.Analyzer
	defaultOpts   analyzer.Options
	defaultPeriod string
	log           zerolog.Logger
	httpSrv       *http.Server
}

// New creates a Server with the given per-request defaults.
func New(addr string, a *analyzer.Analyzer, defaultOpts analyzer.Options, defaultPeriod string, log zerolog.Logger) *Server {
	s := &Server{
		analyzer:      a,
		defaultOpts:   defaultOpts,
		defaultPeriod: defaultPeriod,
		log:           log,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/analyze/{symbol}", s.handleAnalyze)
	mux.Handle("GET /metrics", promhttp.Handler())
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.httpSrv.ListenAndServe() }()
	s.log.Info().Str("addr", s.httpSrv.Addr).Msg("http server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Handler exposes the route mux for tests.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	q := r.URL.Query()

	period := s.defaultPeriod
	if v := q.Get("period"); v != "" {
		period = v
	}

	opts := s.defaultOpts
	var parseErr error
	if v := q.Get("short"); v != "" {
		opts.ShortWindow, parseErr = strconv.Atoi(v)
	}
	if v := q.Get("long"); v != "" && parseErr == nil {
		opts.LongWindow, parseErr = strconv.Atoi(v)
	}
	if v := q.Get("stop"); v != "" && parseErr == nil {
		opts.StopLossPct, parseErr = strconv.ParseFloat(v, 64)
	}
	if v := q.Get("take"); v != "" && parseErr == nil {
		opts.TakeProfitPct, parseErr = strconv.ParseFloat(v, 64)
	}
	if parseErr != nil {
		writeError(w, http.StatusBadRequest, "invalid query parameter: "+parseErr.Error())
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), symbol, period, opts)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("analyze failed")
		switch {
		case errors.Is(err, provider.ErrInvalidPeriod),
			errors.Is(err, calculator.ErrInvalidWindow),
			errors.Is(err, strategy.ErrInvalidRiskParams):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, provider.ErrDataUnavailable):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, toResponse(analysis))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// analyzeResponse is the wire form of an Analysis. Prices are rounded to two
// decimals here only; the core carries full precision.
type analyzeResponse struct {
	Symbol        string               `json:"symbol"`
	Period        string               `json:"period"`
	CurrentPrice  float64              `json:"currentPrice"`
	ShortMA       *float64             `json:"shortMA"`
	LongMA        *float64             `json:"longMA"`
	Trend         model.TrendLabel     `json:"trend"`
	TrendStrength float64              `json:"trendStrength"`
	DataPoints    int                  `json:"dataPoints"`
	Signals       []signalPayload      `json:"signals"`
	SignalCounts  model.SignalCounts   `json:"signalCounts"`
	Series        []model.IndicatedBar `json:"series"`
	AnalyzedAt    time.Time            `json:"analyzedAt"`
}

type signalPayload struct {
	ID         string  `json:"id"`
	Reason     string  `json:"reason"`
	RiskReward float64 `json:"riskRewardRatio"`
	model.Signal
}

// riskReward is the take-profit distance over the stop-loss distance from the
// entry price (2.0 with the default 5%/10% levels).
func riskReward(sig model.Signal) float64 {
	risk := math.Abs(sig.EntryPrice - sig.StopLoss)
	if risk == 0 {
		return 0
	}
	return math.Abs(sig.TakeProfit-sig.EntryPrice) / risk
}

func signalReason(dir model.Direction) string {
	if dir == model.DirectionBuy {
		return "Short MA crossed above Long MA"
	}
	return "Short MA crossed below Long MA"
}

func toResponse(a *model.Analysis) analyzeResponse {
	resp := analyzeResponse{
		Symbol:        a.Symbol,
		Period:        a.Period,
		CurrentPrice:  round2(a.CurrentPrice),
		ShortMA:       round2p(a.ShortMA),
		LongMA:        round2p(a.LongMA),
		Trend:         a.Trend,
		TrendStrength: round2(a.TrendStrength),
		DataPoints:    a.DataPoints,
		Signals:       make([]signalPayload, len(a.Signals)),
		SignalCounts:  a.SignalCounts,
		Series:        make([]model.IndicatedBar, len(a.Series)),
		AnalyzedAt:    a.AnalyzedAt,
	}
	for i := range a.Signals {
		sig := a.Signals[i]
		sig.EntryPrice = round2(sig.EntryPrice)
		sig.StopLoss = round2(sig.StopLoss)
		sig.TakeProfit = round2(sig.TakeProfit)
		sig.ShortMA = round2(sig.ShortMA)
		sig.LongMA = round2(sig.LongMA)
		sig.PrevShortMA = round2(sig.PrevShortMA)
		sig.PrevLongMA = round2(sig.PrevLongMA)
		resp.Signals[i] = signalPayload{
			ID:         a.Signals[i].ID(),
			Reason:     signalReason(sig.Direction),
			RiskReward: round2(riskReward(a.Signals[i])),
			Signal:     sig,
		}
	}
	for i := range a.Series {
		bar := a.Series[i]
		bar.Open = round2(bar.Open)
		bar.High = round2(bar.High)
		bar.Low = round2(bar.Low)
		bar.Close = round2(bar.Close)
		bar.ShortMA = round2p(bar.ShortMA)
		bar.LongMA = round2p(bar.LongMA)
		resp.Series[i] = bar
	}
	return resp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round2p(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}
