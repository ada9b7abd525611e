package repository

import (
	"context"
	"errors"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie"
)

var (
	ErrNotFound = errors.New("movie not found")
)

// Repository is the persistence contract the movie service relies on.
// Delete succeeds when nothing matched.
type Repository interface {
	List(ctx context.Context) ([]*movie.Movie, error)
	Get(ctx context.Context, id string) (*movie.Movie, error)
	Create(ctx context.Context, m *movie.Movie) error
	Update(ctx context.Context, id string, p movie.Patch) (*movie.Movie, error)
	Delete(ctx context.Context, id string) error
}
