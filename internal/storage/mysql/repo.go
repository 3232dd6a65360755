package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hotel_merge/internal/domain"
	"hotel_merge/internal/storage"
)

const insertBatchSize = 200

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createHotelsSQL)
	return err
}

// ReplaceAll deletes every stored hotel and inserts hs in one transaction.
func (r *Repo) ReplaceAll(ctx context.Context, hs []domain.Hotel) error {
	rows := make([]storage.Row, 0, len(hs))
	for i, h := range hs {
		row, err := storage.EncodeRow(i, h)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteHotelsSQL); err != nil {
		return fmt.Errorf("mysql: clear hotels: %w", err)
	}
	for i := 0; i < len(rows); i += insertBatchSize {
		end := min(i+insertBatchSize, len(rows))
		if err := insertBatch(ctx, tx, rows[i:end]); err != nil {
			return fmt.Errorf("mysql: insert hotels %d-%d: %w", i, end, err)
		}
	}
	return tx.Commit()
}

func insertBatch(ctx context.Context, tx *sql.Tx, batch []storage.Row) error {
	values := make([]string, 0, len(batch))
	args := make([]any, 0, len(batch)*len(storage.Columns))
	for _, row := range batch {
		values = append(values, insertRowPlaceholder)
		args = append(args, row.Args()...)
	}
	_, err := tx.ExecContext(ctx, insertHotelsPrefix+strings.Join(values, ","), args...)
	return err
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
	var dest any
	if q.DestinationID != nil {
		dest = *q.DestinationID
	}

	limit := storage.ClampLimit(q.Limit)
	rs, err := r.db.QueryContext(ctx, listHotelsSQL, dest, dest, after, limit+1)
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
