package provider

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"TradeAdvisor/internal/metrics"
	"TradeAdvisor/internal/model"
)

// BarStore persists fetched price series to a SQLite database so repeated
// analyses of the same symbol/period within the TTL skip the upstream call.
// Only raw price data is stored, never signals.
type BarStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewBarStore opens (or creates) the SQLite database and runs migrations.
func NewBarStore(dbPath string) (*BarStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &BarStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *BarStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_log (
			symbol     TEXT NOT NULL,
			period     TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, period)
		)`,
		`CREATE TABLE IF NOT EXISTS price_bars (
			symbol TEXT NOT NULL,
			period TEXT NOT NULL,
			date   INTEGER NOT NULL,
			open   REAL NOT NULL,
			high   REAL NOT NULL,
			low    REAL NOT NULL,
			close  REAL NOT NULL,
			volume REAL NOT NULL,
			PRIMARY KEY (symbol, period, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_symbol ON price_bars(symbol, period)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Get returns the cached series when one was stored within ttl, else nil.
func (s *BarStore) Get(symbol, period string, ttl time.Duration) (*model.PriceSeries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fetchedAt int64
	err := s.db.QueryRow(
		`SELECT fetched_at FROM fetch_log WHERE symbol = ? AND period = ?`,
		symbol, period,
	).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query fetch_log: %w", err)
	}
	at := time.Unix(fetchedAt, 0).UTC()
	if time.Since(at) > ttl {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT date, open, high, low, close, volume
		 FROM price_bars WHERE symbol = ? AND period = ? ORDER BY date ASC`,
		symbol, period,
	)
	if err != nil {
		return nil, fmt.Errorf("query price_bars: %w", err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var b model.Bar
		var date int64
		if err := rows.Scan(&date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Date = time.Unix(date, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, nil
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: at}, nil
}

// Put replaces the cached series for (symbol, period).
func (s *BarStore) Put(period string, series *model.PriceSeries) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM price_bars WHERE symbol = ? AND period = ?`,
		series.Symbol, period,
	); err != nil {
		return fmt.Errorf("clear bars: %w", err)
	}
	for _, b := range series.Bars {
		if _, err := tx.Exec(
			`INSERT INTO price_bars (symbol, period, date, open, high, low, close, volume)
			 VALUES (?,?,?,?,?,?,?,?)`,
			series.Symbol, period, b.Date.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume,
		); err != nil {
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	if _, err := tx.Exec(
		`INSERT INTO fetch_log (symbol, period, fetched_at) VALUES (?,?,?)
		 ON CONFLICT(symbol, period) DO UPDATE SET fetched_at = excluded.fetched_at`,
		series.Symbol, period, series.FetchedAt.Unix(),
	); err != nil {
		return fmt.Errorf("upsert fetch_log: %w", err)
	}
	return tx.Commit()
}

func (s *BarStore) Close() error { return s.db.Close() }

// CachedProvider decorates a Provider with a read-through BarStore.
// A stale or failed cache read falls back to the upstream provider;
// a failed write is logged, not surfaced.
type CachedProvider struct {
	Upstream Provider
	Store    *BarStore
	TTL      time.Duration
	Log      zerolog.Logger
}

func (c *CachedProvider) Name() string { return c.Upstream.Name() + "+cache" }

func (c *CachedProvider) FetchDailyBars(ctx context.Context, symbol, period string) (*model.PriceSeries, error) {
	cached, err := c.Store.Get(symbol, period, c.TTL)
	if err != nil {
		c.Log.Warn().Err(err).Str("symbol", symbol).Msg("bar cache read failed")
	}
	if cached != nil {
		metrics.CacheHits.Inc()
		c.Log.Debug().Str("symbol", symbol).Str("period", period).Msg("bar cache hit")
		return cached, nil
	}

	metrics.CacheMisses.Inc()
	series, err := c.Upstream.FetchDailyBars(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	if err := c.Store.Put(period, series); err != nil {
		c.Log.Warn().Err(err).Str("symbol", symbol).Msg("bar cache write failed")
	}
	return series, nil
}
