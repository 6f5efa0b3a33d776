package stats

import (
	"slices"
	"strings"

	"github.com/rustyeddy/tradejournal/trade"
)

// Day is the rollup of one calendar day's trades.
type Day struct {
	Date        trade.Date
	Records     []trade.Record // oldest first
	Trades      int
	Wins        int
	NetTotal    float64
	WinRate     float64 // percent
	PointsTotal float64
}

// GroupByDay rolls valid records up by Date, one entry per distinct day.
func (e Engine) GroupByDay(records []trade.Record) map[trade.Date]Day {
	days := map[trade.Date]Day{}
	for _, t := range ascending(trade.Evaluate(records, e.Costs)) {
		d := days[t.Date]
		d.Date = t.Date
		d.Records = append(d.Records, t.Record)
		d.Trades++
		if t.IsWin {
			d.Wins++
		}
		d.NetTotal += t.Net
		d.PointsTotal += t.Points
		days[t.Date] = d
	}
	for k, d := range days {
		d.WinRate = float64(d.Wins) / float64(d.Trades) * 100
		days[k] = d
	}
	return days
}

// SortDays flattens a day map ordered by date, oldest first unless desc.
func SortDays(days map[trade.Date]Day, desc bool) []Day {
	out := make([]Day, 0, len(days))
	for _, d := range days {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b Day) int {
		if desc {
			return strings.Compare(string(b.Date), string(a.Date))
		}
		return strings.Compare(string(a.Date), string(b.Date))
	})
	return out
}

// SummarizeDay is Summarize restricted to the records dated d.
func (e Engine) SummarizeDay(records []trade.Record, d trade.Date) Stats {
	return e.Summarize(OnDay(records, d))
}

// OnDay returns the records dated d, in input order.
func OnDay(records []trade.Record, d trade.Date) []trade.Record {
	var out []trade.Record
	for _, r := range records {
		if r.Date == d {
			out = append(out, r)
		}
	}
	return out
}
