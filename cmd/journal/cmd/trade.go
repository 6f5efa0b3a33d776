package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/trade"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a closed trade",
	Long: `Record a closed trade and print the refreshed journal summary.

Examples:
  journal add --entry 4500 --exit 4505 --size 2
  journal add --short --entry 4512.25 --exit 4508.5 --stop 4515 --target 4505 --setup ORB`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <trade-id>",
	Short: "Change fields of a logged trade",
	Long: `Update the given fields of a trade; fields not passed are kept.
Use --clear-stop / --clear-target to remove a planned level.

Example:
  journal edit 01HRZ8K2Q4ABCDEFGHJKMNPQRS --exit 4507.75 --note "scaled out"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm <trade-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a logged trade",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

// tradeFlags holds the values of the trade field flags shared by add and edit.
type tradeFlags struct {
	short      bool
	size       int
	entry      float64
	exit       float64
	stop       float64
	target     float64
	date       string
	note       string
	setup      string
	attachment string

	clearStop   bool
	clearTarget bool
}

var (
	addFlags  tradeFlags
	editFlags tradeFlags
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)

	bindTradeFlags(addCmd.Flags(), &addFlags)
	addCmd.MarkFlagRequired("entry")
	addCmd.MarkFlagRequired("exit")

	bindTradeFlags(editCmd.Flags(), &editFlags)
	editCmd.Flags().BoolVar(&editFlags.clearStop, "clear-stop", false, "remove the stop price")
	editCmd.Flags().BoolVar(&editFlags.clearTarget, "clear-target", false, "remove the target price")
	editCmd.Flags().Bool("long", false, "mark the trade as long")
}

func bindTradeFlags(fs *pflag.FlagSet, f *tradeFlags) {
	fs.BoolVar(&f.short, "short", false, "short trade (default long)")
	fs.IntVarP(&f.size, "size", "n", 1, "number of contracts")
	fs.Float64Var(&f.entry, "entry", 0, "entry price")
	fs.Float64Var(&f.exit, "exit", 0, "exit price")
	fs.Float64Var(&f.stop, "stop", 0, "planned stop price")
	fs.Float64Var(&f.target, "target", 0, "planned target price")
	fs.StringVar(&f.date, "date", "", "trade date YYYY-MM-DD (default today)")
	fs.StringVar(&f.note, "note", "", "free-form note")
	fs.StringVar(&f.setup, "setup", "", "setup tag")
	fs.StringVar(&f.attachment, "attachment", "", "screenshot or other attachment reference")
}

func runAdd(cmd *cobra.Command, args []string) error {
	fs := cmd.Flags()
	rec := trade.Record{
		Direction:     trade.Long,
		Size:          addFlags.size,
		EntryPrice:    addFlags.entry,
		ExitPrice:     addFlags.exit,
		Date:          trade.DateOf(time.Now()),
		Note:          addFlags.note,
		SetupTag:      addFlags.setup,
		AttachmentRef: addFlags.attachment,
	}
	if addFlags.short {
		rec.Direction = trade.Short
	}
	if fs.Changed("stop") {
		rec.StopPrice = trade.Price(addFlags.stop)
	}
	if fs.Changed("target") {
		rec.TargetPrice = trade.Price(addFlags.target)
	}
	if addFlags.date != "" {
		d, err := trade.ParseDate(addFlags.date)
		if err != nil {
			return err
		}
		rec.Date = d
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := context.Background()
	rec, err = j.Add(ctx, rec)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}
	if err := printTrade(cmd, rec); err != nil {
		return err
	}
	return refresh(ctx, cmd, j)
}

func runEdit(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := context.Background()
	rec, err := j.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fs := cmd.Flags()
	if fs.Changed("short") && editFlags.short {
		rec.Direction = trade.Short
	}
	if long, _ := fs.GetBool("long"); fs.Changed("long") && long {
		rec.Direction = trade.Long
	}
	if fs.Changed("size") {
		rec.Size = editFlags.size
	}
	if fs.Changed("entry") {
		rec.EntryPrice = editFlags.entry
	}
	if fs.Changed("exit") {
		rec.ExitPrice = editFlags.exit
	}
	if fs.Changed("stop") {
		rec.StopPrice = trade.Price(editFlags.stop)
	}
	if editFlags.clearStop {
		rec.StopPrice = nil
	}
	if fs.Changed("target") {
		rec.TargetPrice = trade.Price(editFlags.target)
	}
	if editFlags.clearTarget {
		rec.TargetPrice = nil
	}
	if fs.Changed("date") {
		d, err := trade.ParseDate(editFlags.date)
		if err != nil {
			return err
		}
		rec.Date = d
	}
	if fs.Changed("note") {
		rec.Note = editFlags.note
	}
	if fs.Changed("setup") {
		rec.SetupTag = editFlags.setup
	}
	if fs.Changed("attachment") {
		rec.AttachmentRef = editFlags.attachment
	}

	if err := j.Update(ctx, rec); err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	if err := printTrade(cmd, rec); err != nil {
		return err
	}
	return refresh(ctx, cmd, j)
}

func runRm(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := context.Background()
	if err := j.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return refresh(ctx, cmd, j)
}

func printTrade(cmd *cobra.Command, rec trade.Record) error {
	res, err := rec.Compute(cfg.Costs())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(trade.Closed{Record: rec, Result: res}))
	return nil
}
