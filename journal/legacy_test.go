package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/stats"
	"github.com/rustyeddy/tradejournal/trade"
)

const legacyJSON = `[
  {
    "id": "1704286800000",
    "isLong": false,
    "contracts": 1,
    "entryPrice": 4510,
    "exitPrice": 4512.5,
    "points": -2.5,
    "ticks": -10,
    "resultUSD": -12.5,
    "isWin": false,
    "date": "2024-01-03"
  },
  {
    "id": "1704200400000",
    "isLong": true,
    "contracts": 2,
    "entryPrice": 4500,
    "exitPrice": 4505,
    "stopPrice": 4497.5,
    "notes": "first trade",
    "setup": "ORB",
    "screenshot": "1704200400000.png",
    "date": "2024-01-02"
  },
  {
    "id": "1704200500000",
    "isLong": true,
    "contracts": 1.5,
    "entryPrice": 4500,
    "exitPrice": 4505,
    "date": "2024-01-02"
  },
  {
    "id": "1704200600000",
    "isLong": true,
    "contracts": 1,
    "entryPrice": 4500,
    "exitPrice": 4505,
    "date": ""
  }
]`

func TestReadLegacyJSON(t *testing.T) {
	t.Parallel()

	recs, err := ReadLegacyJSON(strings.NewReader(legacyJSON))
	require.Error(t, err)
	assert.ErrorIs(t, err, trade.ErrInvalidTrade)
	assert.Contains(t, err.Error(), "entry 2 (1704200500000)")
	assert.Contains(t, err.Error(), "entry 3 (1704200600000)")

	require.Len(t, recs, 2)

	short := recs[0]
	assert.Equal(t, "1704286800000", short.ID)
	assert.Equal(t, trade.Short, short.Direction)
	assert.Equal(t, 1, short.Size)
	assert.Equal(t, trade.Date("2024-01-03"), short.Date)
	assert.Nil(t, short.StopPrice)
	assert.Nil(t, short.CreatedAt)

	long := recs[1]
	assert.Equal(t, trade.Long, long.Direction)
	assert.Equal(t, 2, long.Size)
	require.NotNil(t, long.StopPrice)
	assert.Equal(t, 4497.5, *long.StopPrice)
	assert.Nil(t, long.TargetPrice)
	assert.Equal(t, "first trade", long.Note)
	assert.Equal(t, "ORB", long.SetupTag)
	assert.Equal(t, "1704200400000.png", long.AttachmentRef)

	// legacy ids carry the logging time
	assert.True(t, long.Logged().Equal(time.UnixMilli(1704200400000)))

	s := stats.New(trade.DefaultCosts).Summarize(recs)
	assert.Equal(t, 2, s.TotalTrades)
	assert.InDelta(t, 48.76-13.12, s.TotalNet, 1e-9)
	assert.Equal(t, -1, s.CurrentStreak)
}

func TestReadLegacyJSONMalformed(t *testing.T) {
	t.Parallel()

	_, err := ReadLegacyJSON(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestReadLegacyJSONEmpty(t *testing.T) {
	t.Parallel()

	recs, err := ReadLegacyJSON(strings.NewReader(`[]`))
	assert.NoError(t, err)
	assert.Empty(t, recs)
}
