package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"TradeAdvisor/internal/provider"
)

// Config holds all application configuration.
type Config struct {
	LogLevel   string `yaml:"log_level"`
	DataSource struct {
		Driver string `yaml:"driver"` // "yahoo" or "finance"
		Proxy  string `yaml:"proxy"`
	} `yaml:"data_source"`
	Analysis struct {
		ShortWindow   int     `yaml:"short_window"`
		LongWindow    int     `yaml:"long_window"`
		StopLossPct   float64 `yaml:"stop_loss_pct"`
		TakeProfitPct float64 `yaml:"take_profit_pct"`
		DefaultPeriod string  `yaml:"default_period"`
	} `yaml:"analysis"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables the bar cache
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"cache"`
	Watch struct {
		Cron    string   `yaml:"cron"`
		Symbols []string `yaml:"symbols"`
		Period  string   `yaml:"period"`
	} `yaml:"watch"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides (a local .env file is honored first).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DATA_DRIVER"); v != "" {
		cfg.DataSource.Driver = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}

	// Defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DataSource.Driver == "" {
		cfg.DataSource.Driver = "yahoo"
	}
	if cfg.Analysis.ShortWindow == 0 {
		cfg.Analysis.ShortWindow = 20
	}
	if cfg.Analysis.LongWindow == 0 {
		cfg.Analysis.LongWindow = 50
	}
	if cfg.Analysis.StopLossPct == 0 {
		cfg.Analysis.StopLossPct = 0.05
	}
	if cfg.Analysis.TakeProfitPct == 0 {
		cfg.Analysis.TakeProfitPct = 0.10
	}
	if cfg.Analysis.DefaultPeriod == "" {
		cfg.Analysis.DefaultPeriod = "6mo"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 60
	}
	if cfg.Watch.Cron == "" {
		cfg.Watch.Cron = "0 0 22 * * 1-5"
	}
	if cfg.Watch.Period == "" {
		cfg.Watch.Period = cfg.Analysis.DefaultPeriod
	}

	return cfg, nil
}

// CacheTTL returns the bar cache freshness window.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.DataSource.Driver != "yahoo" && c.DataSource.Driver != "finance" {
		return fmt.Errorf("data_source.driver must be yahoo or finance, got %q", c.DataSource.Driver)
	}
	if c.Analysis.ShortWindow < 1 {
		return fmt.Errorf("analysis.short_window must be >= 1")
	}
	if c.Analysis.LongWindow <= c.Analysis.ShortWindow {
		return fmt.Errorf("analysis.long_window must be greater than short_window")
	}
	if c.Analysis.StopLossPct <= 0 || c.Analysis.TakeProfitPct <= 0 {
		return fmt.Errorf("analysis risk percentages must be positive")
	}
	if _, err := provider.PeriodDays(c.Analysis.DefaultPeriod); err != nil {
		return fmt.Errorf("analysis.default_period: %w", err)
	}
	if _, err := provider.PeriodDays(c.Watch.Period); err != nil {
		return fmt.Errorf("watch.period: %w", err)
	}
	return nil
}
