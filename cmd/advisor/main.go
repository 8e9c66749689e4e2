package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"TradeAdvisor/internal/analyzer"
	"TradeAdvisor/internal/config"
	"TradeAdvisor/internal/notifier"
	"TradeAdvisor/internal/provider"
	"TradeAdvisor/internal/server"
	"TradeAdvisor/internal/watcher"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "advisor",
		Short:         "Moving-average crossover trading advisor",
		Long:          "TradeAdvisor fetches daily price history, computes two simple moving averages, and emits BUY/SELL crossover signals with stop-loss and take-profit levels.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "path to YAML config")

	root.AddCommand(newAnalyzeCmd(&cfgPath))
	root.AddCommand(newServeCmd(&cfgPath))
	root.AddCommand(newWatchCmd(&cfgPath))
	root.AddCommand(newVersionCmd())
	return root
}

// app bundles the wired dependencies shared by all subcommands.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	analyzer *analyzer.Analyzer
	store    *provider.BarStore
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

func buildApp(cfgPath string) (*app, error) {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	log := newLogger(cfg.LogLevel)

	var p provider.Provider
	switch cfg.DataSource.Driver {
	case "finance":
		p = provider.NewFinanceProvider()
	default:
		p = provider.NewYahooProvider(cfg.DataSource.Proxy)
	}
	log.Info().Str("provider", p.Name()).Msg("data source selected")

	a := &app{cfg: cfg, log: log}
	if cfg.Cache.SQLitePath != "" {
		store, err := provider.NewBarStore(cfg.Cache.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("bar cache unavailable, fetching directly")
		} else {
			a.store = store
			p = &provider.CachedProvider{Upstream: p, Store: store, TTL: cfg.CacheTTL(), Log: log}
		}
	}

	a.analyzer = analyzer.New(p, log)
	return a, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(lvl)
}

func optionsFromConfig(cfg *config.Config) analyzer.Options {
	return analyzer.Options{
		ShortWindow:   cfg.Analysis.ShortWindow,
		LongWindow:    cfg.Analysis.LongWindow,
		StopLossPct:   cfg.Analysis.StopLossPct,
		TakeProfitPct: cfg.Analysis.TakeProfitPct,
	}
}

func newAnalyzeCmd(cfgPath *string) *cobra.Command {
	var (
		symbol     string
		period     string
		short      int
		long       int
		stopLoss   float64
		takeProfit float64
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one symbol and print the signal report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.close()

			opts := optionsFromConfig(a.cfg)
			if cmd.Flags().Changed("short") {
				opts.ShortWindow = short
			}
			if cmd.Flags().Changed("long") {
				opts.LongWindow = long
			}
			if cmd.Flags().Changed("stop-loss") {
				opts.StopLossPct = stopLoss
			}
			if cmd.Flags().Changed("take-profit") {
				opts.TakeProfitPct = takeProfit
			}
			if period == "" {
				period = a.cfg.Analysis.DefaultPeriod
			}

			analysis, err := a.analyzer.Analyze(cmd.Context(), strings.ToUpper(symbol), period, opts)
			if err != nil {
				return err
			}
			fmt.Print(notifier.FormatAnalysis(analysis))
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "ticker symbol, e.g. AAPL")
	cmd.Flags().StringVar(&period, "period", "", "lookback period: 1mo, 3mo, 6mo, 1y, 2y")
	cmd.Flags().IntVar(&short, "short", 20, "short moving average window")
	cmd.Flags().IntVar(&long, "long", 50, "long moving average window")
	cmd.Flags().Float64Var(&stopLoss, "stop-loss", 0.05, "stop-loss fraction of entry price")
	cmd.Flags().Float64Var(&takeProfit, "take-profit", 0.10, "take-profit fraction of entry price")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func newServeCmd(cfgPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			srv := server.New(addr, a.analyzer, optionsFromConfig(a.cfg), a.cfg.Analysis.DefaultPeriod, a.log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func newWatchCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-analyze the configured watchlist on a cron schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.close()

			if len(a.cfg.Watch.Symbols) == 0 {
				return fmt.Errorf("watch.symbols is empty")
			}

			var n notifier.Notifier = &notifier.LogNotifier{Log: a.log}
			if a.cfg.Telegram.BotToken != "" {
				tn, err := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID)
				if err != nil {
					return err
				}
				n = tn
				a.log.Info().Msg("telegram notifier enabled")
			}

			w := watcher.New(a.analyzer, n, a.log, a.cfg.Watch.Symbols, a.cfg.Watch.Period, optionsFromConfig(a.cfg))
			if err := w.Register(a.cfg.Watch.Cron); err != nil {
				return err
			}
			w.Start()
			defer w.Stop()

			if os.Getenv("RUN_ON_START") == "true" {
				a.log.Info().Msg("RUN_ON_START enabled, analyzing watchlist now")
				go w.RunOnce(context.Background())
			}

			a.log.Info().Str("cron", a.cfg.Watch.Cron).Strs("symbols", a.cfg.Watch.Symbols).Msg("watch loop running")
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			a.log.Info().Msg("shutdown signal received, stopping")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(*cobra.Command, []string) {
			fmt.Printf("advisor %s\n", version)
		},
	}
}
