package universities

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/user/unidirectory-go/db"
	"github.com/user/unidirectory-go/listquery"
)

// Filterable columns. Only these names are ever rendered into SQL.
const (
	FieldCountry = "country"
	FieldName    = "name"
)

// Repository is the read side of the university store.
type Repository interface {
	Count(ctx context.Context, filter listquery.Filter) (int64, error)
	List(ctx context.Context, q listquery.Query) ([]University, error)
}

// PgRepository implements Repository on PostgreSQL.
type PgRepository struct {
	db db.DBTX
}

// NewPgRepository creates a PgRepository.
func NewPgRepository(conn db.DBTX) *PgRepository {
	return &PgRepository{db: conn}
}

// Count returns how many universities match filter.
func (r *PgRepository) Count(ctx context.Context, filter listquery.Filter) (int64, error) {
	where, args := filter.Where(1)
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM universities "+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// List returns one page of matching universities ordered by id.
func (r *PgRepository) List(ctx context.Context, q listquery.Query) ([]University, error) {
	where, args := q.Filter.Where(1)
	n := len(args)
	sql := fmt.Sprintf(`SELECT id, name, country, state_province, website
		FROM universities %s
		ORDER BY id
		LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	args = append(args, q.Params.Take(), q.Params.Skip())

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[University])
	if err != nil {
		return nil, err
	}
	return items, nil
}

// InsertBatch inserts universities in a single round trip and returns how many rows were written.
// IDs on the input are ignored.
func (r *PgRepository) InsertBatch(ctx context.Context, items []University) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, u := range items {
		batch.Queue(`INSERT INTO universities (name, country, state_province, website) VALUES ($1, $2, $3, $4)`,
			u.Name, u.Country, u.StateProvince, u.Website)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range items {
		tag, err := results.Exec()
		if err != nil {
			return inserted, err
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

// Truncate removes every university (and, through the foreign key, every favorite).
func (r *PgRepository) Truncate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `TRUNCATE universities RESTART IDENTITY CASCADE`)
	return err
}
