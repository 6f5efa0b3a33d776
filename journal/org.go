package journal

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/rustyeddy/tradejournal/stats"
	"github.com/rustyeddy/tradejournal/trade"
)

// FormatTradeOrg renders a trade as an Org-mode block suitable for pasting
// into a journal. Structured facts go in a PROPERTIES drawer; the narrative
// sections are left for the trader to fill in.
func FormatTradeOrg(t trade.Closed) string {
	heading := fmt.Sprintf("** Trade: %s %s x%d (%s)", t.Date, strings.ToUpper(t.Direction.String()), t.Size, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", t.Date))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":SIZE: %d\n", t.Size))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.2f\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.2f\n", t.ExitPrice))
	if t.StopPrice != nil {
		b.WriteString(fmt.Sprintf(":STOP_PRICE: %.2f\n", *t.StopPrice))
	}
	if t.TargetPrice != nil {
		b.WriteString(fmt.Sprintf(":TARGET_PRICE: %.2f\n", *t.TargetPrice))
	}
	b.WriteString(fmt.Sprintf(":POINTS: %+.2f\n", t.Points))
	b.WriteString(fmt.Sprintf(":TICKS: %+.0f\n", t.Ticks))
	b.WriteString(fmt.Sprintf(":COMMISSION: %.2f\n", t.Commission))
	b.WriteString(fmt.Sprintf(":NET: %.2f\n", t.Net))
	if t.SetupTag != "" {
		b.WriteString(fmt.Sprintf(":SETUP: %s\n", t.SetupTag))
	}
	if t.AttachmentRef != "" {
		b.WriteString(fmt.Sprintf(":ATTACHMENT: %s\n", t.AttachmentRef))
	}
	if t.CreatedAt != nil {
		b.WriteString(fmt.Sprintf(":LOGGED: %s\n", t.CreatedAt.UTC().Format(time.RFC3339)))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- ")
	b.WriteString(t.Note)
	b.WriteString("\n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []trade.Closed) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}

// Report is the data behind the Org-mode statistics report.
type Report struct {
	Title      string
	Instrument string
	Created    time.Time
	Stats      stats.Stats
	Days       []stats.Day
}

var reportFuncs = template.FuncMap{
	"streak": stats.FormatStreak,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(StatsOrgTemplate))

// WriteStatsOrg renders r as an Org-mode report.
func WriteStatsOrg(w io.Writer, r Report) error {
	return reportTmpl.Execute(w, r)
}

const StatsOrgTemplate = `* JOURNAL: {{if .Title}}{{.Title}}{{else}}All trades{{end}}
:PROPERTIES:
:INSTRUMENT:  {{if .Instrument}}{{.Instrument}}{{else}}(instrument?){{end}}
:TRADES:      {{.Stats.TotalTrades}}
:WINS:        {{.Stats.Wins}}
:LOSSES:      {{.Stats.Losses}}
:SCRATCHES:   {{.Stats.Scratches}}
:WIN_RATE:    {{printf "%.2f" .Stats.WinRate}}
:NET_PL:      {{printf "%.2f" .Stats.TotalNet}}
:PROFIT_FAC:  {{printf "%.2f" .Stats.ProfitFactor}}
:MAX_DD:      {{printf "%.2f" .Stats.MaxDrawdown}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{printf "%.2f" .Stats.TotalNet}}*
- Expectancy:       *{{printf "%.2f" .Stats.Expectancy}}*
- Avg Win / Loss:   *{{printf "%.2f" .Stats.AvgWin}}* / *{{printf "%.2f" .Stats.AvgLoss}}*
- Avg R:R:          *1:{{printf "%.2f" .Stats.AvgRiskReward}}*
- Best / Worst:     *{{printf "%.2f" .Stats.BestTrade}}* / *{{printf "%.2f" .Stats.WorstTrade}}*
- Best Day:         *{{printf "%.2f" .Stats.BestDay}}*
- Current Streak:   *{{streak .Stats.CurrentStreak}}*

** Trade Distribution
| Outcome   | Count |
|-----------+-------|
| Wins      | {{.Stats.Wins}} |
| Losses    | {{.Stats.Losses}} |
| Scratches | {{.Stats.Scratches}} |
| Total     | {{.Stats.TotalTrades}} |
{{- if .Days }}

** Days
| Date | Trades | Win % | Net | Points |
|------+--------+-------+-----+--------|
{{- range .Days }}
| {{.Date}} | {{.Trades}} | {{printf "%.1f" .WinRate}} | {{printf "%.2f" .NetTotal}} | {{printf "%+.2f" .PointsTotal}} |
{{- end }}
{{- end }}
`
