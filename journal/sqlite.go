package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/rustyeddy/tradejournal/pkg/id"
	"github.com/rustyeddy/tradejournal/trade"
)

// SQLite is a Journal backed by a single SQLite file.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

var _ Journal = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the journal database at path.
func NewSQLite(path string, log zerolog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{
		db:  db,
		log: log.With().Str("component", "journal").Logger(),
	}, nil
}

func (j *SQLite) Add(ctx context.Context, r trade.Record) (trade.Record, error) {
	if err := r.Validate(); err != nil {
		return trade.Record{}, err
	}
	if r.CreatedAt == nil {
		now := time.Now().UTC()
		r.CreatedAt = &now
	}
	if r.ID == "" {
		r.ID = id.NewAt(*r.CreatedAt)
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Direction.String(), r.Size, r.EntryPrice, r.ExitPrice,
		nullFloat(r.StopPrice), nullFloat(r.TargetPrice),
		string(r.Date), nullTime(r.CreatedAt), r.Note, r.SetupTag, r.AttachmentRef,
	)
	if err != nil {
		return trade.Record{}, fmt.Errorf("insert trade %s: %w", r.ID, err)
	}

	j.log.Info().
		Str("trade_id", r.ID).
		Str("date", string(r.Date)).
		Str("direction", r.Direction.String()).
		Int("size", r.Size).
		Msg("trade added")
	return r, nil
}

// Update replaces every base field of the stored record with r's.
func (j *SQLite) Update(ctx context.Context, r trade.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	res, err := j.db.ExecContext(ctx, `
		UPDATE trades SET
			direction = ?, size = ?, entry_price = ?, exit_price = ?,
			stop_price = ?, target_price = ?, trade_date = ?, created_at = ?,
			note = ?, setup_tag = ?, attachment_ref = ?
		WHERE trade_id = ?`,
		r.Direction.String(), r.Size, r.EntryPrice, r.ExitPrice,
		nullFloat(r.StopPrice), nullFloat(r.TargetPrice), string(r.Date), nullTime(r.CreatedAt),
		r.Note, r.SetupTag, r.AttachmentRef,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("update trade %s: %w", r.ID, err)
	}
	if err := expectOne(res, r.ID); err != nil {
		return err
	}

	j.log.Info().Str("trade_id", r.ID).Msg("trade updated")
	return nil
}

func (j *SQLite) Delete(ctx context.Context, tradeID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade %s: %w", tradeID, err)
	}
	if err := expectOne(res, tradeID); err != nil {
		return err
	}

	j.log.Info().Str("trade_id", tradeID).Msg("trade deleted")
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func expectOne(res sql.Result, tradeID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, tradeID)
	}
	return nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullTime(p *time.Time) sql.NullTime {
	if p == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: p.UTC(), Valid: true}
}
