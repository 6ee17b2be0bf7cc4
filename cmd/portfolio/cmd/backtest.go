package cmd

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/portfolio/backtest"
	"github.com/rustyeddy/portfolio/config"
	"github.com/rustyeddy/portfolio/journal"
	"github.com/rustyeddy/portfolio/sim"
	"github.com/rustyeddy/portfolio/strategy"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay recorded bar slices through the strategy",
	Long: `Run the strategy over a recorded bar-slice CSV with a paper
position book, journaling every rebalance instruction.

Example:
  portfolio backtest --config portfolio.yaml --verbose`,
	RunE: runBacktest,
}

var (
	backtestConfigPath string
	backtestVerbose    bool
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&backtestConfigPath, "config", "c", "portfolio.yaml", "path to config file")
	backtestCmd.Flags().BoolVarP(&backtestVerbose, "verbose", "v", false, "log strategy decisions")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(backtestConfigPath)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if backtestVerbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer logger.Sync()
	}

	jnl, err := openJournal(cfg.Journal)
	if err != nil {
		return err
	}
	if jnl != nil {
		defer jnl.Close()
	}

	book := sim.NewBook()
	opts := []strategy.Option{strategy.WithLogger(logger)}
	if jnl != nil {
		opts = append(opts, strategy.WithRecorder(jnl))
	}
	if cfg.Data.WarmupFile != "" {
		opts = append(opts, strategy.WithBarLoader(backtest.NewCSVBarLoader(cfg.Data.WarmupFile)))
	}

	strat, err := strategy.New(cfg.Strategy, cfg.Instruments, book, opts...)
	if err != nil {
		return err
	}
	if err := strat.Init(); err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				logger.Warn("metrics endpoint", zap.Error(err))
			}
		}()
	}

	feed, err := backtest.NewCSVBarsFeed(cfg.Data.BarsFile)
	if err != nil {
		return err
	}

	runner := &backtest.Runner{
		Strategy: strat,
		Feed:     feed,
		Book:     book,
	}

	res, err := runner.Run()
	if err != nil {
		return err
	}

	fmt.Print(res.Summary())
	return nil
}

// openJournal builds the configured journal backend; nil means journaling is
// disabled.
func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "csv":
		return journal.NewCSV(cfg.InstructionsFile, cfg.SignalsFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}
