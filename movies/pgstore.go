package movies

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/filmoteca-go/apperror"
)

// PGStore persists the catalog in PostgreSQL via a pgx connection pool. Ids
// come from the table's identity column, which also makes `ORDER BY id` the
// insertion order the Store contract requires.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a PGStore on the given pool.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// List returns all records in insertion order.
func (s *PGStore) List(ctx context.Context) ([]Movie, error) {
	query := `SELECT id, title, overview, year, rating, category FROM movies ORDER BY id`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list movies", err)
	}
	defer rows.Close()
	return scanMovies(rows)
}

// GetByID returns the record with the given id.
func (s *PGStore) GetByID(ctx context.Context, id int) (*Movie, error) {
	query := `SELECT id, title, overview, year, rating, category FROM movies WHERE id = $1`
	var m Movie
	err := s.db.QueryRow(ctx, query, id).
		Scan(&m.ID, &m.Title, &m.Overview, &m.Year, &m.Rating, &m.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("movie with id %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get movie", err)
	}
	return &m, nil
}

// ListByCategory returns the records matching category, in insertion order.
func (s *PGStore) ListByCategory(ctx context.Context, category string) ([]Movie, error) {
	query := `SELECT id, title, overview, year, rating, category FROM movies WHERE category = $1 ORDER BY id`
	rows, err := s.db.Query(ctx, query, category)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list movies by category", err)
	}
	defer rows.Close()
	return scanMovies(rows)
}

// Create persists a new record and returns it with its assigned id.
func (s *PGStore) Create(ctx context.Context, m Movie) (*Movie, error) {
	query := `INSERT INTO movies (title, overview, year, rating, category)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id`
	err := s.db.QueryRow(ctx, query, m.Title, m.Overview, m.Year, m.Rating, m.Category).Scan(&m.ID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create movie", err)
	}
	return &m, nil
}

// Update overwrites all fields except the id of the record with the given id.
// The single UPDATE statement keeps the overwrite atomic per record.
func (s *PGStore) Update(ctx context.Context, id int, m Movie) error {
	query := `UPDATE movies
              SET title = $1, overview = $2, year = $3, rating = $4, category = $5
              WHERE id = $6`
	tag, err := s.db.Exec(ctx, query, m.Title, m.Overview, m.Year, m.Rating, m.Category, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to update movie", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("movie with id %d not found", id), nil)
	}
	return nil
}

// Delete removes the record with the given id.
func (s *PGStore) Delete(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete movie", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("movie with id %d not found", id), nil)
	}
	return nil
}

func scanMovies(rows pgx.Rows) ([]Movie, error) {
	out := []Movie{}
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Overview, &m.Year, &m.Rating, &m.Category); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan movie row", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read movie rows", err)
	}
	return out, nil
}
