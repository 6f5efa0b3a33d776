package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/rustyeddy/tradejournal/trade"
)

// legacyTrade is one entry of the desktop app's trades.json. Derived
// fields (points, ticks, resultUSD, isWin) are ignored and recomputed.
type legacyTrade struct {
	ID          string   `json:"id"`
	IsLong      bool     `json:"isLong"`
	Contracts   float64  `json:"contracts"`
	EntryPrice  float64  `json:"entryPrice"`
	ExitPrice   float64  `json:"exitPrice"`
	Date        string   `json:"date"`
	StopPrice   *float64 `json:"stopPrice,omitempty"`
	TargetPrice *float64 `json:"targetPrice,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Setup       string   `json:"setup,omitempty"`
	Screenshot  string   `json:"screenshot,omitempty"`
}

// ReadLegacyJSON converts a trades.json array into records. Entries that
// cannot become a valid record are skipped and reported together in the
// returned error; the records that did convert are returned either way.
func ReadLegacyJSON(r io.Reader) ([]trade.Record, error) {
	var in []legacyTrade
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode trades.json: %w", err)
	}

	var (
		out  []trade.Record
		errs []error
	)
	for i, lt := range in {
		rec, err := lt.record()
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i, lt.ID, err))
			continue
		}
		out = append(out, rec)
	}
	return out, errors.Join(errs...)
}

func (lt legacyTrade) record() (trade.Record, error) {
	if lt.Contracts != math.Trunc(lt.Contracts) {
		return trade.Record{}, fmt.Errorf("%w: fractional contracts %v", trade.ErrInvalidTrade, lt.Contracts)
	}
	date, err := trade.ParseDate(lt.Date)
	if err != nil {
		return trade.Record{}, fmt.Errorf("%w: %v", trade.ErrInvalidTrade, err)
	}

	dir := trade.Short
	if lt.IsLong {
		dir = trade.Long
	}
	rec := trade.Record{
		ID:            strings.TrimSpace(lt.ID),
		Direction:     dir,
		Size:          int(lt.Contracts),
		EntryPrice:    lt.EntryPrice,
		ExitPrice:     lt.ExitPrice,
		StopPrice:     lt.StopPrice,
		TargetPrice:   lt.TargetPrice,
		Date:          date,
		Note:          lt.Notes,
		SetupTag:      lt.Setup,
		AttachmentRef: lt.Screenshot,
	}
	if err := rec.Validate(); err != nil {
		return trade.Record{}, err
	}
	return rec, nil
}
