package stats

import (
	"math"

	"github.com/rustyeddy/tradejournal/trade"
)

// float noise allowance so 2.0 computed as 1.9999999 still floors to 2.0
const floorEpsilon = 1e-9

// RiskDistance is |entry - stop|. ok is false when no stop is set or the
// stop sits on the entry.
func RiskDistance(r trade.Record) (risk float64, ok bool) {
	if r.StopPrice == nil {
		return 0, false
	}
	risk = math.Abs(r.EntryPrice - *r.StopPrice)
	return risk, risk > 0
}

// RR is the risk:reward ratio of a single trade. The reward is the planned
// distance to target when one is set, else the realized points.
func RR(r trade.Record, points float64) (rr float64, ok bool) {
	risk, ok := RiskDistance(r)
	if !ok {
		return 0, false
	}
	reward := math.Abs(points)
	if r.TargetPrice != nil {
		reward = math.Abs(*r.TargetPrice - r.EntryPrice)
	}
	return reward / risk, true
}

// floorTenth floors x to one decimal place.
func floorTenth(x float64) float64 {
	return math.Floor(x*10+floorEpsilon) / 10
}

// avgRiskReward averages the per-trade ratios, each floored to a tenth
// before averaging, over trades with a stop. Without any, it falls back to
// avgWin/avgLoss.
func avgRiskReward(trades []trade.Closed, avgWin, avgLoss float64) float64 {
	var sum float64
	var n int
	for _, t := range trades {
		rr, ok := RR(t.Record, t.Points)
		if !ok {
			continue
		}
		sum += floorTenth(rr)
		n++
	}
	if n > 0 {
		return sum / float64(n)
	}
	if avgLoss == 0 {
		return 0
	}
	return avgWin / avgLoss
}
