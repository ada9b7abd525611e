package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/apperr"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/ident"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie/repository"
)

var dune = movie.CreateInput{Title: "Dune", Category: "Sci-Fi", Image: "http://x/i.jpg", Description: "desert planet"}

// failingRepo simulates a store that is unreachable.
type failingRepo struct{ err error }

func (f failingRepo) List(ctx context.Context) ([]*movie.Movie, error)      { return nil, f.err }
func (f failingRepo) Get(ctx context.Context, id string) (*movie.Movie, error) { return nil, f.err }
func (f failingRepo) Create(ctx context.Context, m *movie.Movie) error      { return f.err }
func (f failingRepo) Update(ctx context.Context, id string, p movie.Patch) (*movie.Movie, error) {
	return nil, f.err
}
func (f failingRepo) Delete(ctx context.Context, id string) error { return f.err }

func TestCreateGetRoundTrip(t *testing.T) {
	svc := NewService(repository.NewMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, dune)
	require.NoError(t, err)
	require.True(t, ident.Valid(created.ID))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, dune.Title, got.Title)
	assert.Equal(t, dune.Category, got.Category)
	assert.Equal(t, dune.Image, got.Image)
	assert.Equal(t, dune.Description, got.Description)
}

func TestCreateListsMissingFields(t *testing.T) {
	svc := NewService(repository.NewMemoryRepo())

	_, err := svc.Create(context.Background(), movie.CreateInput{Title: "Dune", Category: "  ", Description: "x"})
	require.Error(t, err)
	require.True(t, apperr.Is(err, apperr.KindValidation))

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	require.Equal(t, []string{"category", "image"}, ae.Fields)
	require.Contains(t, ae.Message, "category, image")

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list, "invalid payload must not be persisted")
}

func TestCreateTreatsBlankFieldsAsMissing(t *testing.T) {
	svc := NewService(repository.NewMemoryRepo())

	_, err := svc.Create(context.Background(), movie.CreateInput{Title: " ", Category: "\t", Image: "\n", Description: "   "})
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	require.Equal(t, []string{"title", "category", "image", "description"}, ae.Fields)
}

func TestGetDistinguishesNotFoundReasons(t *testing.T) {
	svc := NewService(repository.NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.Get(ctx, "m1")
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	require.Equal(t, apperr.ReasonMalformedID, apperr.ReasonOf(err))

	_, err = svc.Get(ctx, ident.New())
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	require.Equal(t, apperr.ReasonNoSuchRecord, apperr.ReasonOf(err))
}

func TestUpdateAcceptsPartialPayload(t *testing.T) {
	svc := NewService(repository.NewMemoryRepo())
	ctx := context.Background()
	created, err := svc.Create(ctx, dune)
	require.NoError(t, err)

	empty := ""
	updated, err := svc.Update(ctx, created.ID, movie.Patch{Image: &empty})
	require.NoError(t, err)
	require.Equal(t, "", updated.Image, "update does not re-validate completeness")
	require.Equal(t, "Dune", updated.Title)

	_, err = svc.Update(ctx, "not-an-id", movie.Patch{})
	require.Equal(t, apperr.ReasonMalformedID, apperr.ReasonOf(err))

	_, err = svc.Update(ctx, ident.New(), movie.Patch{})
	require.Equal(t, apperr.ReasonNoSuchRecord, apperr.ReasonOf(err))
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := NewService(repository.NewMemoryRepo())
	ctx := context.Background()
	created, err := svc.Create(ctx, dune)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, ident.New()))

	err = svc.Delete(ctx, "bogus")
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestExists(t *testing.T) {
	svc := NewService(repository.NewMemoryRepo())
	ctx := context.Background()
	created, err := svc.Create(ctx, dune)
	require.NoError(t, err)

	ok, err := svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Exists(ctx, ident.New())
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.Exists(ctx, "xyz")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPersistenceFailuresBecomeServerErrors(t *testing.T) {
	svc := NewService(failingRepo{err: errors.New("connection reset")})
	ctx := context.Background()
	id := ident.New()

	_, err := svc.List(ctx)
	require.True(t, apperr.Is(err, apperr.KindServer))
	require.Equal(t, apperr.ServerMessage, apperr.PublicMessage(err))

	_, err = svc.Get(ctx, id)
	require.True(t, apperr.Is(err, apperr.KindServer))

	_, err = svc.Create(ctx, dune)
	require.True(t, apperr.Is(err, apperr.KindServer))

	_, err = svc.Update(ctx, id, movie.Patch{})
	require.True(t, apperr.Is(err, apperr.KindServer))

	require.True(t, apperr.Is(svc.Delete(ctx, id), apperr.KindServer))

	_, err = svc.Exists(ctx, id)
	require.Error(t, err)
}
