package movies

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/user/filmoteca-go/apperror"
	"github.com/user/filmoteca-go/auth"
)

// Id and category boundary constraints enforced before any store lookup.
const (
	minMovieID        = 1
	maxMovieID        = 2000
	categoryValidTags = "min=5,max=15"
)

// Service holds the catalog business logic: payload validation, boundary
// checks on path and query parameters, and the lookup policies the store
// backends share. Out-of-range data never reaches a Store.
type Service struct {
	store    Store
	validate *validator.Validate
}

// NewService creates a Service over the given store backend.
func NewService(store Store) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
	}
}

// List returns every record, in insertion order, without pagination.
func (s *Service) List(ctx context.Context) ([]Movie, error) {
	return s.store.List(ctx)
}

// GetByID returns the record with the given id. The [1, 2000] boundary applies
// to this read lookup only; update and delete take any id and report a plain
// miss, which is what their 404 contract expects.
func (s *Service) GetByID(ctx context.Context, id int) (*Movie, error) {
	if id < minMovieID || id > maxMovieID {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("id must be between %d and %d", minMovieID, maxMovieID), nil)
	}
	return s.store.GetByID(ctx, id)
}

// ListByCategory returns the records matching category. An empty result is
// reported as a NotFoundError rather than an empty success; the API has always
// treated a category with no matches as a miss, and clients depend on the 404.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Movie, error) {
	if err := s.validate.Var(category, categoryValidTags); err != nil {
		return nil, apperror.NewValidationError("category must be between 5 and 15 characters", err)
	}
	matches, err := s.store.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("no movies found in category %q", category), nil)
	}
	return matches, nil
}

// Create validates the payload and persists a new record. The id is assigned
// by the store.
func (s *Service) Create(ctx context.Context, req MovieRequest) (*Movie, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, auth.ValidationToAppError(err)
	}
	return s.store.Create(ctx, req.toMovie())
}

// Update validates the payload and overwrites every field except the id of the
// record with the given id. There is no partial update.
func (s *Service) Update(ctx context.Context, id int, req MovieRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return auth.ValidationToAppError(err)
	}
	return s.store.Update(ctx, id, req.toMovie())
}

// Delete removes the record with the given id.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}

func (r MovieRequest) toMovie() Movie {
	return Movie{
		Title:    r.Title,
		Overview: r.Overview,
		Year:     r.Year,
		Rating:   r.Rating,
		Category: r.Category,
	}
}
