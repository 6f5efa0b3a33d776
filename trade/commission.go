package trade

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTrade = errors.New("invalid trade")
	ErrInvalidCosts = errors.New("invalid costs")
)

// Costs are the per-instrument parameters of the commission model.
type Costs struct {
	CommissionPerUnit float64 // round-trip commission per contract
	PointValue        float64 // account currency per point per contract
	TickSize          float64 // minimum price increment
}

// DefaultCosts is the reference instrument (Micro E-mini S&P 500).
var DefaultCosts = Costs{
	CommissionPerUnit: 0.62,
	PointValue:        5,
	TickSize:          0.25,
}

func (c Costs) Validate() error {
	if !finite(c.CommissionPerUnit) || c.CommissionPerUnit < 0 {
		return fmt.Errorf("%w: commission per unit must be >= 0", ErrInvalidCosts)
	}
	if !finite(c.PointValue) || c.PointValue <= 0 {
		return fmt.Errorf("%w: point value must be positive", ErrInvalidCosts)
	}
	if !finite(c.TickSize) || c.TickSize <= 0 {
		return fmt.Errorf("%w: tick size must be positive", ErrInvalidCosts)
	}
	return nil
}

// Result is the monetary outcome of a trade.
type Result struct {
	Points     float64 // price delta in the trade's favor
	Ticks      float64
	Gross      float64
	Commission float64
	Net        float64
	IsWin      bool
}

// IsLoss reports a strictly negative net. A zero net is a scratch.
func (r Result) IsLoss() bool { return r.Net < 0 }

// IsScratch reports a net of exactly zero.
func (r Result) IsScratch() bool { return r.Net == 0 }

// Compute applies the commission model to a raw trade.
func Compute(dir Direction, entry, exit float64, size int, c Costs) (Result, error) {
	if !finite(entry) || !finite(exit) {
		return Result{}, fmt.Errorf("%w: entry/exit price must be finite", ErrInvalidTrade)
	}
	if size <= 0 {
		return Result{}, fmt.Errorf("%w: size %d must be positive", ErrInvalidTrade, size)
	}
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	qty := decimal.NewFromInt(int64(size))
	points := decimal.NewFromFloat(exit).Sub(decimal.NewFromFloat(entry)).
		Mul(decimal.NewFromInt(int64(dir.Sign())))
	gross := points.Mul(decimal.NewFromFloat(c.PointValue)).Mul(qty)
	commission := decimal.NewFromFloat(c.CommissionPerUnit).Mul(qty)
	net := gross.Sub(commission)
	ticks := points.Div(decimal.NewFromFloat(c.TickSize))

	res := Result{
		Points:     points.InexactFloat64(),
		Ticks:      ticks.InexactFloat64(),
		Gross:      gross.InexactFloat64(),
		Commission: commission.InexactFloat64(),
		Net:        net.InexactFloat64(),
		IsWin:      net.IsPositive(),
	}
	for _, v := range []float64{res.Points, res.Ticks, res.Gross, res.Commission, res.Net} {
		if !finite(v) {
			return Result{}, fmt.Errorf("%w: result overflows", ErrInvalidTrade)
		}
	}
	return res, nil
}

// Compute derives r's result under c.
func (r Record) Compute(c Costs) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	return Compute(r.Direction, r.EntryPrice, r.ExitPrice, r.Size, c)
}

// Closed pairs a record with its derived result.
type Closed struct {
	Record
	Result
}

// Evaluate computes every valid record under c, in input order. Records
// that fail validation are left out whole. Invalid costs yield nothing.
func Evaluate(records []Record, c Costs) []Closed {
	if c.Validate() != nil {
		return nil
	}
	out := make([]Closed, 0, len(records))
	for _, r := range records {
		res, err := r.Compute(c)
		if err != nil {
			continue
		}
		out = append(out, Closed{Record: r, Result: res})
	}
	return out
}
