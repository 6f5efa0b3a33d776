// Package trade holds the closed-trade record kept in the journal and the
// commission model that derives its monetary result.
package trade

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Direction is the side of a trade.
type Direction int

const (
	Long Direction = iota
	Short
)

func (d Direction) String() string {
	if d == Short {
		return "short"
	}
	return "long"
}

// Sign is +1 for long and -1 for short.
func (d Direction) Sign() int {
	if d == Short {
		return -1
	}
	return 1
}

// ParseDirection accepts long/short (and the l/s, buy/sell shorthands).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "l", "buy":
		return Long, nil
	case "short", "s", "sell":
		return Short, nil
	}
	return Long, fmt.Errorf("unknown direction %q", s)
}

// DateLayout is the calendar-day format used for Date.
const DateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form. It is comparable and sorts
// chronologically as a string.
type Date string

// ParseDate validates s and returns it as a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Time returns midnight UTC of the day. ok is false for a malformed Date.
func (d Date) Time() (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, string(d))
	return t, err == nil
}

func (d Date) String() string { return string(d) }

// Record is one closed trade as logged by the user. Only base fields are
// stored; points, commission and net are always recomputed from them.
type Record struct {
	ID        string
	Direction Direction
	Size      int

	EntryPrice float64
	ExitPrice  float64

	// Planned levels, nil when not set.
	StopPrice   *float64
	TargetPrice *float64

	Date      Date
	CreatedAt *time.Time

	Note          string
	SetupTag      string
	AttachmentRef string
}

// Price returns a pointer to p, for filling StopPrice and TargetPrice.
func Price(p float64) *float64 { return &p }

// Validate reports why r cannot take part in a computation.
func (r Record) Validate() error {
	if r.Size <= 0 {
		return fmt.Errorf("%w: size %d must be positive", ErrInvalidTrade, r.Size)
	}
	if !finite(r.EntryPrice) || !finite(r.ExitPrice) {
		return fmt.Errorf("%w: entry/exit price must be finite", ErrInvalidTrade)
	}
	if r.StopPrice != nil && !finite(*r.StopPrice) {
		return fmt.Errorf("%w: stop price must be finite", ErrInvalidTrade)
	}
	if r.TargetPrice != nil && !finite(*r.TargetPrice) {
		return fmt.Errorf("%w: target price must be finite", ErrInvalidTrade)
	}
	if _, ok := r.Date.Time(); !ok {
		return fmt.Errorf("%w: bad date %q", ErrInvalidTrade, r.Date)
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
