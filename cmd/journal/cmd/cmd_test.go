package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/trade"
)

// The commands share package state, so these tests run sequentially.

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, k := range []string{config.EnvDBPath, config.EnvCommission, config.EnvLogLevel, config.EnvInstrument} {
		t.Setenv(k, "")
	}
	return filepath.Join(t.TempDir(), "journal.sqlite")
}

func storedRecords(t *testing.T, db string) []trade.Record {
	t.Helper()
	j, err := journal.NewSQLite(db, zerolog.Nop())
	require.NoError(t, err)
	defer j.Close()

	recs, err := j.List(context.Background())
	require.NoError(t, err)
	return recs
}

func TestAddEditRemove(t *testing.T) {
	db := isolateEnv(t)

	out, err := execute(t, "--db", db, "add", "--entry", "4500", "--exit", "4505", "--size", "2", "--date", "2024-01-02", "--setup", "ORB")
	require.NoError(t, err)
	assert.Contains(t, out, "** Trade: 2024-01-02 LONG x2")
	assert.Contains(t, out, ":NET: 48.76")
	assert.Contains(t, out, "trades=1 win=100.0% net=48.76")

	out, err = execute(t, "--db", db, "add", "--short", "--entry", "4510", "--exit", "4512.5", "--stop", "4515", "--date", "2024-01-03")
	require.NoError(t, err)
	assert.Contains(t, out, ":STOP_PRICE: 4515.00")
	assert.Contains(t, out, "trades=2 win=50.0% net=35.64 pf=3.72")
	assert.Contains(t, out, "maxdd=13.12 streak=1L")

	recs := storedRecords(t, db)
	require.Len(t, recs, 2)
	long, short := recs[0], recs[1]
	assert.Equal(t, trade.Long, long.Direction)
	assert.Nil(t, long.StopPrice)
	assert.Equal(t, trade.Short, short.Direction)

	// turn the loss into a win, other fields stay
	out, err = execute(t, "--db", db, "edit", short.ID, "--exit", "4508.5", "--note", "covered early")
	require.NoError(t, err)
	assert.Contains(t, out, ":NET: 6.88")
	assert.Contains(t, out, "net=55.64")
	assert.Contains(t, out, "streak=2W")

	edited := storedRecords(t, db)[1]
	assert.Equal(t, trade.Short, edited.Direction)
	require.NotNil(t, edited.StopPrice)
	assert.Equal(t, 4515.0, *edited.StopPrice)
	assert.Equal(t, "covered early", edited.Note)

	out, err = execute(t, "--db", db, "edit", short.ID, "--clear-stop")
	require.NoError(t, err)
	assert.NotContains(t, out, ":STOP_PRICE:")

	out, err = execute(t, "--db", db, "rm", long.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted "+long.ID)
	assert.Contains(t, out, "trades=1 win=100.0% net=6.88")

	_, err = execute(t, "--db", db, "rm", long.ID)
	assert.ErrorIs(t, err, journal.ErrNotFound)

	out, err = execute(t, "--db", db, "show", short.ID)
	require.NoError(t, err)
	assert.Contains(t, out, ":TRADE_ID: "+short.ID)
	assert.Contains(t, out, "covered early")
}

func TestAddRejectsInvalidTrade(t *testing.T) {
	db := isolateEnv(t)

	_, err := execute(t, "--db", db, "add", "--entry", "4500", "--exit", "4505", "--size", "0")
	assert.ErrorIs(t, err, trade.ErrInvalidTrade)

	_, err = execute(t, "--db", db, "add", "--entry", "4500")
	assert.Error(t, err)

	_, err = execute(t, "--db", db, "add", "--entry", "4500", "--exit", "4505", "--date", "01/02/2024")
	assert.Error(t, err)

	assert.Empty(t, storedRecords(t, db))
}

func seedJournal(t *testing.T, db string) {
	t.Helper()
	trades := [][]string{
		{"--entry", "4500", "--exit", "4505", "--size", "2", "--date", "2024-01-02"},
		{"--short", "--entry", "4510", "--exit", "4512.5", "--date", "2024-01-02"},
		{"--entry", "4520", "--exit", "4524", "--date", "2024-01-03"},
	}
	for _, args := range trades {
		_, err := execute(t, append([]string{"--db", db, "add"}, args...)...)
		require.NoError(t, err)
	}
}

func TestReports(t *testing.T) {
	db := isolateEnv(t)
	seedJournal(t, db)

	out, err := execute(t, "--db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "All trades")
	assert.Contains(t, out, "Trades:        3")
	assert.Contains(t, out, "Net P/L:       55.02")

	out, err = execute(t, "--db", db, "stats", "--day", "2024-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, "Day 2024-01-02")
	assert.Contains(t, out, "Trades:        2")
	assert.Contains(t, out, "Net P/L:       35.64")

	out, err = execute(t, "--db", db, "stats", "--org")
	require.NoError(t, err)
	assert.Contains(t, out, ":INSTRUMENT:  MES")
	assert.Contains(t, out, "** Days")
	assert.Less(t, strings.Index(out, "2024-01-03"), strings.Index(out, "2024-01-02"))

	out, err = execute(t, "--db", db, "days")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-02"))
	assert.Contains(t, lines[1], "35.64")

	out, err = execute(t, "--db", db, "days", "--desc")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-03"))

	out, err = execute(t, "--db", db, "equity")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[2], "48.76"))
	assert.True(t, strings.HasSuffix(lines[4], "55.02"))

	out, err = execute(t, "--db", db, "drawdown")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "-13.12")

	out, err = execute(t, "--db", db, "list", "--day", "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "** Trade:"))

	out, err = execute(t, "--db", db, "list", "--desc")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "** Trade:"))
	assert.Less(t, strings.Index(out, "** Trade: 2024-01-03"), strings.Index(out, "** Trade: 2024-01-02 SHORT"))
	assert.Less(t, strings.Index(out, "** Trade: 2024-01-02 SHORT"), strings.Index(out, "** Trade: 2024-01-02 LONG"))

	out, err = execute(t, "--db", db, "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "** Trade: 2024-01-02 LONG"), strings.Index(out, "** Trade: 2024-01-03"))
}

func TestExportImport(t *testing.T) {
	db := isolateEnv(t)
	dir := filepath.Dir(db)

	legacy := filepath.Join(dir, "trades.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`[
  {"id": "1704286800000", "isLong": false, "contracts": 1, "entryPrice": 4510, "exitPrice": 4512.5, "date": "2024-01-03"},
  {"id": "1704200400000", "isLong": true, "contracts": 2, "entryPrice": 4500, "exitPrice": 4505, "notes": "first", "date": "2024-01-02"},
  {"id": "1704200500000", "isLong": true, "contracts": 0, "entryPrice": 4500, "exitPrice": 4505, "date": "2024-01-02"}
]`), 0o644))

	out, err := execute(t, "--db", db, "import", legacy)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 of 2 trades")
	assert.Contains(t, out, "trades=2 win=50.0% net=35.64")

	recs := storedRecords(t, db)
	require.Len(t, recs, 2)
	assert.Equal(t, "1704200400000", recs[0].ID)
	require.NotNil(t, recs[0].CreatedAt)
	assert.Equal(t, int64(1704200400000), recs[0].CreatedAt.UnixMilli())

	tradesCSV := filepath.Join(dir, "trades.csv")
	equityCSV := filepath.Join(dir, "equity.csv")
	out, err = execute(t, "--db", db, "export", "--trades", tradesCSV, "--equity", equityCSV)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 2 trades")

	data, err := os.ReadFile(tradesCSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "1704200400000,2024-01-02,long,2"))

	data, err = os.ReadFile(equityCSV)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[2], "35.64"))
}

func TestConfigInitValidate(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "journal.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Instrument: MES ($5.00/pt, tick 0.25)")
	assert.Contains(t, out, "Commission: $0.62 per contract")

	require.NoError(t, os.WriteFile(path, []byte("commission:\n  per_unit: -1\n"), 0o644))
	_, err = execute(t, "config", "validate", "-f", path)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "journal version "+version)
}
