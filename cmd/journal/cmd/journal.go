package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/trade"
)

var showCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged trades",
	Long: `List trades as Org-mode blocks, oldest first.

Examples:
  journal list
  journal list --day 2024-01-15
  journal list --today --desc`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listDay   string
	listToday bool
	listDesc  bool
)

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listDay, "day", "", "only trades dated YYYY-MM-DD")
	listCmd.Flags().BoolVar(&listToday, "today", false, "only trades dated today")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "most recent first")
}

func runShow(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}
	return printTrade(cmd, rec)
}

func runList(cmd *cobra.Command, args []string) error {
	day, err := dayFlag(listDay, listToday)
	if err != nil {
		return err
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := context.Background()
	var recs []trade.Record
	if day != "" {
		recs, err = j.ListDay(ctx, day)
	} else {
		recs, err = j.List(ctx)
	}
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	if listDesc {
		recs = trade.SortDescending(recs)
	} else {
		recs = trade.SortAscending(recs)
	}
	closed := trade.Evaluate(recs, cfg.Costs())
	if skipped := len(recs) - len(closed); skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("invalid trades left out")
	}
	if len(closed) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(closed))
	}
	return nil
}

// dayFlag resolves --day / --today into a Date; empty means no filter.
func dayFlag(day string, today bool) (trade.Date, error) {
	if today {
		return trade.DateOf(time.Now()), nil
	}
	if day == "" {
		return "", nil
	}
	d, err := trade.ParseDate(day)
	if err != nil {
		return "", fmt.Errorf("date: %w", err)
	}
	return d, nil
}
