// Package stats derives performance statistics and chart series from a
// collection of journaled trades. Everything here is recomputed from the
// records passed in on each call; nothing is cached between calls.
package stats

import (
	"github.com/rustyeddy/tradejournal/trade"
)

// ProfitFactorCap is reported as the profit factor when there are winning
// trades but no losing ones.
const ProfitFactorCap = 999.0

// Stats is the scalar summary of a set of trades. The zero value is the
// summary of an empty journal.
type Stats struct {
	TotalTrades int
	Wins        int
	Losses      int
	Scratches   int

	WinRate      float64 // percent
	AvgWin       float64
	AvgLoss      float64 // absolute
	ProfitFactor float64
	Expectancy   float64

	MaxDrawdown   float64
	BestTrade     float64
	WorstTrade    float64
	CurrentStreak int // >0 wins, <0 losses
	BestDay       float64
	AvgRiskReward float64

	TotalNet        float64
	GrossProfit     float64
	GrossLoss       float64 // absolute
	TotalPoints     float64
	TotalCommission float64
}

// Engine evaluates trades under a fixed commission model. It holds no
// other state and is safe to copy.
type Engine struct {
	Costs trade.Costs
}

// New returns an Engine for the given costs.
func New(c trade.Costs) Engine {
	return Engine{Costs: c}
}

// Summarize reduces records to a Stats. Invalid records are left out.
func (e Engine) Summarize(records []trade.Record) Stats {
	return summarize(trade.Evaluate(records, e.Costs))
}

func summarize(trades []trade.Closed) Stats {
	n := len(trades)
	if n == 0 {
		return Stats{}
	}
	// totals are summed oldest first so they match the equity curve bit for bit
	trades = ascending(trades)

	var s Stats
	s.TotalTrades = n
	s.BestTrade = trades[0].Net
	s.WorstTrade = trades[0].Net

	for _, t := range trades {
		switch {
		case t.IsWin:
			s.Wins++
			s.GrossProfit += t.Net
		case t.IsLoss():
			s.Losses++
			s.GrossLoss += t.Net
		default:
			s.Scratches++
		}
		s.TotalNet += t.Net
		s.TotalPoints += t.Points
		s.TotalCommission += t.Commission
		s.BestTrade = max(s.BestTrade, t.Net)
		s.WorstTrade = min(s.WorstTrade, t.Net)
	}
	s.GrossLoss = -s.GrossLoss

	s.WinRate = float64(s.Wins) / float64(n) * 100
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	s.ProfitFactor = profitFactor(s.GrossProfit, s.GrossLoss, s.Wins, s.Losses)

	pWin := float64(s.Wins) / float64(n)
	s.Expectancy = pWin*s.AvgWin - (1-pWin)*s.AvgLoss

	s.MaxDrawdown = maxDrawdown(trades)
	s.CurrentStreak = currentStreak(trades)
	s.BestDay = bestDay(trades)
	s.AvgRiskReward = avgRiskReward(trades, s.AvgWin, s.AvgLoss)

	return s
}

func profitFactor(grossProfit, grossLoss float64, wins, losses int) float64 {
	switch {
	case losses == 0 && wins > 0:
		return ProfitFactorCap
	case losses == 0:
		return 0
	}
	return grossProfit / grossLoss
}

// maxDrawdown walks the equity curve from 0 over trades, which must be
// oldest first, and returns the largest fall from a running peak.
func maxDrawdown(trades []trade.Closed) float64 {
	var cum, peak, dd float64
	for _, t := range trades {
		cum += t.Net
		if cum > peak {
			peak = cum
		}
		dd = max(dd, peak-cum)
	}
	return dd
}

// currentStreak counts back from the most recent trade while the outcome
// matches it. A scratch ends a streak.
func currentStreak(trades []trade.Closed) int {
	sorted := make([]trade.Closed, len(trades))
	copy(sorted, trades)
	trade.SortClosed(sorted, true)

	first := outcome(sorted[0].Result)
	if first == 0 {
		return 0
	}
	streak := 0
	for _, t := range sorted {
		if outcome(t.Result) != first {
			break
		}
		streak += first
	}
	return streak
}

func outcome(r trade.Result) int {
	switch {
	case r.IsWin:
		return 1
	case r.IsLoss():
		return -1
	}
	return 0
}

func bestDay(trades []trade.Closed) float64 {
	days := map[trade.Date]float64{}
	for _, t := range trades {
		if t.IsWin {
			days[t.Date] += t.Net
		}
	}
	var best float64
	for _, v := range days {
		best = max(best, v)
	}
	return best
}

func ascending(trades []trade.Closed) []trade.Closed {
	sorted := make([]trade.Closed, len(trades))
	copy(sorted, trades)
	trade.SortClosed(sorted, false)
	return sorted
}
