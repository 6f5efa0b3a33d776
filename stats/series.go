package stats

import "github.com/rustyeddy/tradejournal/trade"

// Equity returns the cumulative net P&L curve, oldest trade first. The
// first point is always 0, so the result has one more element than there
// are valid records.
func (e Engine) Equity(records []trade.Record) []float64 {
	sorted := ascending(trade.Evaluate(records, e.Costs))

	out := make([]float64, 0, len(sorted)+1)
	var cum float64
	out = append(out, cum)
	for _, t := range sorted {
		cum += t.Net
		out = append(out, cum)
	}
	return out
}

// Drawdown returns each trade's signed net result in chronological order,
// for a per-trade bar chart. It is not a running drawdown; see
// Stats.MaxDrawdown for that.
func (e Engine) Drawdown(records []trade.Record) []float64 {
	sorted := ascending(trade.Evaluate(records, e.Costs))

	out := make([]float64, len(sorted))
	for i, t := range sorted {
		out[i] = t.Net
	}
	return out
}

// Point is one step of the equity curve with the trade that produced it.
type Point struct {
	Seq     int
	Date    trade.Date
	TradeID string
	Net     float64
	Equity  float64
}

// EquityPoints is Equity with the trade attached to each step, without
// the leading zero.
func (e Engine) EquityPoints(records []trade.Record) []Point {
	sorted := ascending(trade.Evaluate(records, e.Costs))

	out := make([]Point, len(sorted))
	var cum float64
	for i, t := range sorted {
		cum += t.Net
		out[i] = Point{Seq: i + 1, Date: t.Date, TradeID: t.ID, Net: t.Net, Equity: cum}
	}
	return out
}
