package stats

import (
	"fmt"
	"io"
)

// PrintStats writes a human readable summary, in the layout of the
// journal's terminal reports.
func PrintStats(w io.Writer, title string, s Stats) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s\n", title)
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	if s.Scratches > 0 {
		fmt.Fprintf(w, "Scratches:     %d\n", s.Scratches)
	}
	fmt.Fprintf(w, "Win Rate:      %.1f%%\n", s.WinRate)
	fmt.Fprintf(w, "Streak:        %s\n", FormatStreak(s.CurrentStreak))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Net P/L:       %.2f\n", s.TotalNet)
	fmt.Fprintf(w, "Points:        %+.2f\n", s.TotalPoints)
	fmt.Fprintf(w, "Commission:    %.2f\n", s.TotalCommission)
	fmt.Fprintf(w, "Avg Win:       %.2f\n", s.AvgWin)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", s.AvgLoss)
	fmt.Fprintf(w, "Expectancy:    %+.2f\n", s.Expectancy)
	fmt.Fprintf(w, "Profit Factor: %.2f\n", s.ProfitFactor)
	fmt.Fprintf(w, "Avg R:R:       1:%.2f\n", s.AvgRiskReward)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Risk")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Max Drawdown:  %.2f\n", s.MaxDrawdown)
	fmt.Fprintf(w, "Best Trade:    %.2f\n", s.BestTrade)
	fmt.Fprintf(w, "Worst Trade:   %.2f\n", s.WorstTrade)
	fmt.Fprintf(w, "Best Day:      %.2f\n", s.BestDay)
	fmt.Fprintln(w)
}

// PrintDays writes one line per day.
func PrintDays(w io.Writer, days []Day) {
	fmt.Fprintf(w, "%-10s  %6s  %7s  %10s  %9s\n", "DATE", "TRADES", "WIN%", "NET", "POINTS")
	for _, d := range days {
		fmt.Fprintf(w, "%-10s  %6d  %6.1f%%  %10.2f  %+9.2f\n", d.Date, d.Trades, d.WinRate, d.NetTotal, d.PointsTotal)
	}
}

// FormatStreak renders a signed streak as e.g. "3W", "2L" or "-".
func FormatStreak(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("%dW", n)
	case n < 0:
		return fmt.Sprintf("%dL", -n)
	}
	return "-"
}

// Line is a one-line summary printed after every journal change.
func Line(s Stats) string {
	return fmt.Sprintf("trades=%d win=%.1f%% net=%.2f pf=%.2f exp=%+.2f maxdd=%.2f streak=%s",
		s.TotalTrades, s.WinRate, s.TotalNet, s.ProfitFactor, s.Expectancy, s.MaxDrawdown, FormatStreak(s.CurrentStreak))
}
