package favorites

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/db"
	"github.com/user/unidirectory-go/listquery"
	"github.com/user/unidirectory-go/universities"
)

const foreignKeyViolation = "23503"

var (
	// ErrNotFound is returned when no favorite has the requested id.
	ErrNotFound = apperror.NewNotFoundError("Favorite not found", nil)
	// ErrUniversityNotFound is returned when creating a favorite for an unknown university.
	ErrUniversityNotFound = apperror.NewNotFoundError("University not found", nil)
)

// Repository is the favorites store.
type Repository interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, p listquery.Params) ([]Favorite, error)
	Create(ctx context.Context, universityID int) (*Favorite, error)
	// Delete removes the favorite and returns it, or ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id int) (*Favorite, error)
}

// PgRepository implements Repository on PostgreSQL.
type PgRepository struct {
	db db.DBTX
}

// NewPgRepository creates a PgRepository.
func NewPgRepository(conn db.DBTX) *PgRepository {
	return &PgRepository{db: conn}
}

// Count returns the number of favorites.
func (r *PgRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM favorites`).Scan(&total)
	return total, err
}

// List returns one page of favorites joined with their university, ordered by id.
func (r *PgRepository) List(ctx context.Context, p listquery.Params) ([]Favorite, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id, f.university_id, f.created_at,
		       u.id, u.name, u.country, u.state_province, u.website
		FROM favorites f
		JOIN universities u ON u.id = f.university_id
		ORDER BY f.id
		LIMIT $1 OFFSET $2`, p.Take(), p.Skip())
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Favorite, error) {
		var f Favorite
		var u universities.University
		err := row.Scan(&f.ID, &f.UniversityID, &f.CreatedAt,
			&u.ID, &u.Name, &u.Country, &u.StateProvince, &u.Website)
		f.University = &u
		return f, err
	})
}

// Create inserts a favorite for universityID.
func (r *PgRepository) Create(ctx context.Context, universityID int) (*Favorite, error) {
	f := Favorite{UniversityID: universityID}
	err := r.db.QueryRow(ctx,
		`INSERT INTO favorites (university_id) VALUES ($1) RETURNING id, created_at`, universityID,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, ErrUniversityNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Delete removes the favorite in a single statement; zero affected rows means it did not exist.
func (r *PgRepository) Delete(ctx context.Context, id int) (*Favorite, error) {
	var f Favorite
	err := r.db.QueryRow(ctx,
		`DELETE FROM favorites WHERE id = $1 RETURNING id, university_id, created_at`, id,
	).Scan(&f.ID, &f.UniversityID, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}
