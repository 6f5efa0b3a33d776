package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rustyeddy/tradejournal/trade"
)

type scanner interface {
	Scan(dest ...any) error
}

// Get returns a single trade record by ID.
func (j *SQLite) Get(ctx context.Context, tradeID string) (trade.Record, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trade.Record{}, fmt.Errorf("%w: %q", ErrNotFound, tradeID)
		}
		return trade.Record{}, err
	}
	return rec, nil
}

// List returns every trade, oldest day first. Trades sharing a day come
// back in insertion order; callers needing the full chronological order
// sort with trade.SortAscending.
func (j *SQLite) List(ctx context.Context) ([]trade.Record, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		ORDER BY trade_date ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}
	return j.collect(rows)
}

// ListDay returns the trades dated d.
func (j *SQLite) ListDay(ctx context.Context, d trade.Date) ([]trade.Record, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_date = ?
		ORDER BY rowid ASC`, string(d))
	if err != nil {
		return nil, err
	}
	return j.collect(rows)
}

func (j *SQLite) collect(rows *sql.Rows) ([]trade.Record, error) {
	defer rows.Close()

	var out []trade.Record
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	j.log.Debug().Int("trades", len(out)).Msg("trades loaded")
	return out, nil
}

func scanTrade(s scanner) (trade.Record, error) {
	var (
		rec       trade.Record
		direction string
		date      string
		stop      sql.NullFloat64
		target    sql.NullFloat64
		created   sql.NullTime
	)

	err := s.Scan(
		&rec.ID,
		&direction,
		&rec.Size,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&stop,
		&target,
		&date,
		&created,
		&rec.Note,
		&rec.SetupTag,
		&rec.AttachmentRef,
	)
	if err != nil {
		return trade.Record{}, err
	}

	rec.Direction, err = trade.ParseDirection(direction)
	if err != nil {
		return trade.Record{}, fmt.Errorf("trade %s: %w", rec.ID, err)
	}
	rec.Date = trade.Date(date)
	if stop.Valid {
		rec.StopPrice = trade.Price(stop.Float64)
	}
	if target.Valid {
		rec.TargetPrice = trade.Price(target.Float64)
	}
	if created.Valid {
		t := created.Time.UTC()
		rec.CreatedAt = &t
	}
	return rec, nil
}
