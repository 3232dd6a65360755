// Package postgres is the PostgreSQL sink: full replace through COPY.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"hotel_merge/internal/domain"
	"hotel_merge/internal/storage"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createHotelsSQL)
	return err
}

// ReplaceAll deletes every stored hotel and bulk-loads hs with COPY, in one
// transaction.
func (r *Repo) ReplaceAll(ctx context.Context, hs []domain.Hotel) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteHotelsSQL); err != nil {
		return fmt.Errorf("postgres: clear hotels: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("hotels", storage.Columns...))
	if err != nil {
		return fmt.Errorf("postgres: prepare copy: %w", err)
	}
	for i, h := range hs {
		row, err := storage.EncodeRow(i, h)
		if err != nil {
			_ = stmt.Close()
			return err
		}
		if _, err := stmt.ExecContext(ctx, row.Args()...); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("postgres: copy hotel %s: %w", h.ID, err)
		}
	}
	// an Exec without arguments flushes the COPY buffer
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return fmt.Errorf("postgres: flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("postgres: close copy: %w", err)
	}
	return tx.Commit()
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	row, err := storage.ScanRow(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	return storage.DecodeRow(row)
}

func (r *Repo) ListHotels(ctx context.Context, q domain.HotelsQuery) (domain.HotelsPage, error) {
	after, err := storage.DecodeCursor(q.Cursor)
	if err != nil {
		return domain.HotelsPage{}, err
	}
	var dest sql.NullString
	if q.DestinationID != nil {
		dest = sql.NullString{String: *q.DestinationID, Valid: true}
	}

	limit := storage.ClampLimit(q.Limit)
	rs, err := r.db.QueryContext(ctx, listHotelsSQL, dest, after, limit+1)
	if err != nil {
		return domain.HotelsPage{}, err
	}
	defer rs.Close()

	var rows []storage.Row
	for rs.Next() {
		row, err := storage.ScanRow(rs)
		if err != nil {
			return domain.HotelsPage{}, err
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return domain.HotelsPage{}, err
	}
	return storage.Page(rows, limit)
}
