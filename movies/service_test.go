package movies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/filmoteca-go/apperror"
)

func validRequest() MovieRequest {
	return MovieRequest{
		Title:    "Gattaca",
		Overview: "A genetic dystopia thriller",
		Year:     1997,
		Rating:   7.8,
		Category: "SciFi ",
	}
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*MovieRequest)
	}{
		{"title too short", func(r *MovieRequest) { r.Title = "Hi" }},
		{"title too long", func(r *MovieRequest) { r.Title = "A very very long movie title" }},
		{"overview too short", func(r *MovieRequest) { r.Overview = "too short" }},
		{"overview too long", func(r *MovieRequest) {
			r.Overview = "An overview that rambles on far past the fifty character limit imposed on it"
		}},
		{"year in the future", func(r *MovieRequest) { r.Year = 2024 }},
		{"rating zero", func(r *MovieRequest) { r.Rating = 0 }},
		{"rating above ten", func(r *MovieRequest) { r.Rating = 10.5 }},
		{"category too short", func(r *MovieRequest) { r.Category = "Air" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := NewMemStore()
			svc := NewService(store)

			req := validRequest()
			tc.mutate(&req)

			_, err := svc.Create(ctx, req)
			require.Error(t, err)
			assert.True(t, apperror.IsValidationError(err), "expected a validation error, got %v", err)

			// Out-of-range payloads never reach the store.
			all, listErr := store.List(ctx)
			require.NoError(t, listErr)
			assert.Empty(t, all)
		})
	}
}

func TestService_CreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemStore())

	req := validRequest()
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, req.Title, got.Title)
	assert.Equal(t, req.Overview, got.Overview)
	assert.Equal(t, req.Year, got.Year)
	assert.Equal(t, req.Rating, got.Rating)
	assert.Equal(t, req.Category, got.Category)
}

func TestService_GetByIDBoundary(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemStore())

	for _, id := range []int{0, -1, 2001} {
		_, err := svc.GetByID(ctx, id)
		assert.True(t, apperror.IsValidationError(err), "id %d should fail the boundary check", id)
	}

	// 2000 is inside the boundary; with an empty store it is a plain miss.
	_, err := svc.GetByID(ctx, 2000)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_ListByCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemStore())

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	t.Run("category length is checked first", func(t *testing.T) {
		_, err := svc.ListByCategory(ctx, "Air")
		assert.True(t, apperror.IsValidationError(err))

		_, err = svc.ListByCategory(ctx, "a category name far too long")
		assert.True(t, apperror.IsValidationError(err))
	})

	t.Run("empty result is a miss, not an empty success", func(t *testing.T) {
		_, err := svc.ListByCategory(ctx, "Documentales")
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("matching category returns the records", func(t *testing.T) {
		matches, err := svc.ListByCategory(ctx, "SciFi ")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Gattaca", matches[0].Title)
	})
}

func TestService_UpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemStore())

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	patch := MovieRequest{
		Title:    "Metropolis",
		Overview: "A futuristic city divided by class struggle",
		Year:     1927,
		Rating:   8.3,
		Category: "Drama clasico",
	}
	require.NoError(t, svc.Update(ctx, created.ID, patch))

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, patch.Title, got.Title)
	assert.Equal(t, patch.Overview, got.Overview)
	assert.Equal(t, patch.Year, got.Year)
	assert.Equal(t, patch.Rating, got.Rating)
	assert.Equal(t, patch.Category, got.Category)
}

func TestService_UpdateAndDeleteMisses(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemStore())

	// Any absent id is a plain miss for mutations, even outside [1, 2000].
	err := svc.Update(ctx, 9999, validRequest())
	assert.True(t, apperror.IsNotFound(err))

	err = svc.Delete(ctx, 9999)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_UpdateValidatesPayload(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	bad := validRequest()
	bad.Rating = 11
	err = svc.Update(ctx, created.ID, bad)
	assert.True(t, apperror.IsValidationError(err))

	// The stored record is untouched.
	got, gerr := svc.GetByID(ctx, created.ID)
	require.NoError(t, gerr)
	assert.Equal(t, 7.8, got.Rating)
}
