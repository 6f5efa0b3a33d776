package journal

import (
	"context"
	"errors"

	"github.com/rustyeddy/tradejournal/trade"
)

// ErrNotFound is returned when no trade has the requested ID.
var ErrNotFound = errors.New("trade not found")

// Journal stores the user's trade records. It keeps base fields only;
// results are derived by the stats engine on read.
type Journal interface {
	// Add stores a new record, assigning an ID and CreatedAt when unset,
	// and returns the stored record.
	Add(ctx context.Context, r trade.Record) (trade.Record, error)
	Update(ctx context.Context, r trade.Record) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (trade.Record, error)
	// List returns every record, oldest first.
	List(ctx context.Context) ([]trade.Record, error)
	ListDay(ctx context.Context, d trade.Date) ([]trade.Record, error)
	Close() error
}
