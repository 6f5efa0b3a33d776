package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/stats"
	"github.com/rustyeddy/tradejournal/trade"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance statistics",
	Long: `Summarize the whole journal, or a single day with --day.

Examples:
  journal stats
  journal stats --day 2024-01-15
  journal stats --org > report.org`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Print the cumulative equity curve",
	Args:  cobra.NoArgs,
	RunE:  runEquity,
}

var drawdownCmd = &cobra.Command{
	Use:   "drawdown",
	Short: "Print per-trade net results in chronological order",
	Args:  cobra.NoArgs,
	RunE:  runDrawdown,
}

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "Show the day-by-day rollup",
	Args:  cobra.NoArgs,
	RunE:  runDays,
}

var (
	statsDay   string
	statsToday bool
	statsOrg   bool
	daysDesc   bool
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(equityCmd)
	rootCmd.AddCommand(drawdownCmd)
	rootCmd.AddCommand(daysCmd)

	statsCmd.Flags().StringVar(&statsDay, "day", "", "only trades dated YYYY-MM-DD")
	statsCmd.Flags().BoolVar(&statsToday, "today", false, "only trades dated today")
	statsCmd.Flags().BoolVar(&statsOrg, "org", false, "write an Org-mode report")
	daysCmd.Flags().BoolVar(&daysDesc, "desc", false, "most recent day first")
}

// loadAll returns every stored record.
func loadAll(ctx context.Context) ([]trade.Record, error) {
	j, err := openJournal()
	if err != nil {
		return nil, err
	}
	defer j.Close()

	recs, err := j.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	return recs, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	day, err := dayFlag(statsDay, statsToday)
	if err != nil {
		return err
	}
	recs, err := loadAll(context.Background())
	if err != nil {
		return err
	}

	e := engine()
	title := "All trades"
	var s stats.Stats
	if day != "" {
		title = "Day " + string(day)
		s = e.SummarizeDay(recs, day)
	} else {
		s = e.Summarize(recs)
	}

	if !statsOrg {
		stats.PrintStats(cmd.OutOrStdout(), title, s)
		return nil
	}

	r := journal.Report{
		Title:      title,
		Instrument: cfg.Instrument.Symbol,
		Created:    time.Now(),
		Stats:      s,
	}
	if day == "" {
		r.Days = stats.SortDays(e.GroupByDay(recs), true)
	}
	return journal.WriteStatsOrg(cmd.OutOrStdout(), r)
}

func runEquity(cmd *cobra.Command, args []string) error {
	recs, err := loadAll(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%4s  %-10s  %-26s  %10s  %10s\n", "SEQ", "DATE", "TRADE", "NET", "EQUITY")
	fmt.Fprintf(out, "%4d  %-10s  %-26s  %10s  %10.2f\n", 0, "", "", "", 0.0)
	for _, p := range engine().EquityPoints(recs) {
		fmt.Fprintf(out, "%4d  %-10s  %-26s  %10.2f  %10.2f\n", p.Seq, p.Date, p.TradeID, p.Net, p.Equity)
	}
	return nil
}

func runDrawdown(cmd *cobra.Command, args []string) error {
	recs, err := loadAll(context.Background())
	if err != nil {
		return err
	}

	for i, net := range engine().Drawdown(recs) {
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %+10.2f\n", i+1, net)
	}
	return nil
}

func runDays(cmd *cobra.Command, args []string) error {
	recs, err := loadAll(context.Background())
	if err != nil {
		return err
	}

	stats.PrintDays(cmd.OutOrStdout(), stats.SortDays(engine().GroupByDay(recs), daysDesc))
	return nil
}
