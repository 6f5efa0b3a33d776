package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades and the equity curve as CSV",
	Long: `Write every valid trade with its computed results, and the equity curve,
as CSV files.

Example:
  journal export --trades trades.csv --equity equity.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <trades.json>",
	Short: "Import trades from a legacy trades.json file",
	Long: `Read a trades.json array written by the older browser journal and add
each entry. Entries that fail validation are skipped and logged.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	exportTrades string
	exportEquity string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVar(&exportTrades, "trades", "trades.csv", "trades CSV output path")
	exportCmd.Flags().StringVar(&exportEquity, "equity", "equity.csv", "equity curve CSV output path")
}

func runExport(cmd *cobra.Command, args []string) error {
	recs, err := loadAll(context.Background())
	if err != nil {
		return err
	}

	x, err := journal.NewCSV(exportTrades, exportEquity)
	if err != nil {
		return err
	}
	n, err := x.Export(recs, cfg.Costs())
	if cerr := x.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	log.Info().Int("trades", n).Str("path", exportTrades).Msg("exported")
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d trades to %s\n", n, exportTrades)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	recs, err := journal.ReadLegacyJSON(f)
	if len(recs) == 0 && err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	if err != nil {
		log.Warn().Err(err).Msg("skipped invalid entries")
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := context.Background()
	var added int
	var errs []error
	for _, r := range recs {
		// Keep the original logging order instead of stamping the import time.
		if r.CreatedAt == nil {
			t := r.Logged().UTC()
			r.CreatedAt = &t
		}
		if _, err := j.Add(ctx, r); err != nil {
			errs = append(errs, fmt.Errorf("trade %s: %w", r.ID, err))
			continue
		}
		added++
	}
	if len(errs) > 0 {
		log.Warn().Err(errors.Join(errs...)).Int("failed", len(errs)).Msg("some trades were not added")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d trades\n", added, len(recs))
	return refresh(ctx, cmd, j)
}
