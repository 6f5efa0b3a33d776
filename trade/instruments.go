package trade

import "strings"

// InstrumentMeta describes a futures contract the journal knows how to price.
type InstrumentMeta struct {
	Name        string
	Description string
	PointValue  float64
	TickSize    float64
}

var Instruments = map[string]InstrumentMeta{
	"MES": {
		Name:        "MES",
		Description: "Micro E-mini S&P 500",
		PointValue:  5,
		TickSize:    0.25,
	},
	"ES": {
		Name:        "ES",
		Description: "E-mini S&P 500",
		PointValue:  50,
		TickSize:    0.25,
	},
	"MNQ": {
		Name:        "MNQ",
		Description: "Micro E-mini Nasdaq-100",
		PointValue:  2,
		TickSize:    0.25,
	},
	"NQ": {
		Name:        "NQ",
		Description: "E-mini Nasdaq-100",
		PointValue:  20,
		TickSize:    0.25,
	},
}

// LookupInstrument finds a contract by symbol, case-insensitively.
func LookupInstrument(symbol string) (InstrumentMeta, bool) {
	m, ok := Instruments[strings.ToUpper(strings.TrimSpace(symbol))]
	return m, ok
}
