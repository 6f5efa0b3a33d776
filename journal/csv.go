package journal

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"

	"github.com/rustyeddy/tradejournal/stats"
	"github.com/rustyeddy/tradejournal/trade"
)

var (
	tradesHeader = []string{"trade_id", "date", "direction", "size", "entry_price", "exit_price",
		"stop_price", "target_price", "points", "ticks", "gross", "commission", "net", "setup_tag", "note"}
	equityHeader = []string{"seq", "date", "trade_id", "net", "equity"}
)

// CSVExporter writes the journal and its equity curve as two CSV files.
type CSVExporter struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSVExporter, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		_ = tf.Close()
		return nil, err
	}
	return newCSVExporter(tf, ef)
}

// newCSVExporter writes both headers; on failure it closes both files.
func newCSVExporter(tf, ef *os.File) (*CSVExporter, error) {
	x := &CSVExporter{
		trades: csv.NewWriter(tf),
		equity: csv.NewWriter(ef),
		tf:     tf,
		ef:     ef,
	}

	err := x.trades.Write(tradesHeader)
	if err == nil {
		err = x.equity.Write(equityHeader)
	}
	if err == nil {
		x.trades.Flush()
		x.equity.Flush()
		err = errors.Join(x.trades.Error(), x.equity.Error())
	}
	if err != nil {
		_ = tf.Close()
		_ = ef.Close()
		return nil, err
	}
	return x, nil
}

// Export writes every valid record with its derived result, oldest first,
// followed by the matching equity curve. It returns the number of trades
// written.
func (x *CSVExporter) Export(records []trade.Record, costs trade.Costs) (int, error) {
	closed := trade.Evaluate(records, costs)
	trade.SortClosed(closed, false)

	for _, t := range closed {
		err := x.trades.Write([]string{
			t.ID,
			string(t.Date),
			t.Direction.String(),
			strconv.Itoa(t.Size),
			f(t.EntryPrice),
			f(t.ExitPrice),
			optional(t.StopPrice),
			optional(t.TargetPrice),
			f(t.Points),
			f(t.Ticks),
			money(t.Gross),
			money(t.Commission),
			money(t.Net),
			t.SetupTag,
			t.Note,
		})
		if err != nil {
			return 0, err
		}
	}

	for _, p := range stats.New(costs).EquityPoints(records) {
		err := x.equity.Write([]string{
			strconv.Itoa(p.Seq),
			string(p.Date),
			p.TradeID,
			money(p.Net),
			money(p.Equity),
		})
		if err != nil {
			return 0, err
		}
	}

	return len(closed), nil
}

func (x *CSVExporter) Close() error {
	x.trades.Flush()
	if err := x.trades.Error(); err != nil {
		return err
	}
	x.equity.Flush()
	if err := x.equity.Error(); err != nil {
		return err
	}

	if err := x.tf.Close(); err != nil {
		return err
	}
	if err := x.ef.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func money(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func optional(p *float64) string {
	if p == nil {
		return ""
	}
	return f(*p)
}
