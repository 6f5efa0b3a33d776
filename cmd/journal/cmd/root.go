package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logging"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/stats"
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "A personal futures trade journal with performance analytics",
	Long: `Journal records closed trades and derives performance statistics from them.

It provides tools for:
  - Logging, editing and deleting trades (entry/exit, size, stop, target, notes)
  - Win rate, expectancy, profit factor, drawdown and streak statistics
  - Equity curve and per-trade result series
  - Day-by-day rollups with drill-down statistics
  - CSV export, Org-mode reports and import of legacy trades.json files`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg *config.Config
	log zerolog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.Journal.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log = logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	log.Debug().
		Str("db", cfg.Journal.DBPath).
		Str("instrument", cfg.Instrument.Symbol).
		Float64("commission", cfg.Commission.PerUnit).
		Msg("config loaded")
	return nil
}

func openJournal() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(cfg.Journal.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func engine() stats.Engine {
	return stats.New(cfg.Costs())
}

// refresh recomputes the whole-journal summary after a change.
func refresh(ctx context.Context, cmd *cobra.Command, j journal.Journal) error {
	recs, err := j.List(ctx)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), stats.Line(engine().Summarize(recs)))
	return nil
}
