package service

import (
	"context"
	"errors"
	"strings"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/apperr"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/ident"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie/repository"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/logger"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/metrics"
)

const (
	msgInvalidID     = "Invalid Movie Id!"
	msgNotFound      = "Movie not found!"
	msgMissingFields = "Please provide all fields"
)

// Service implements the movie catalog operations on top of a Repository.
// Movies have no owner: any caller may update or delete them.
type Service struct {
	repo repository.Repository
}

func NewService(r repository.Repository) *Service {
	return &Service{repo: r}
}

func observe(op string, err *error) {
	metrics.Operations.WithLabelValues("movie", op, apperr.Label(*err)).Inc()
}

// List returns every movie. There is no pagination or filtering.
func (s *Service) List(ctx context.Context) (out []*movie.Movie, err error) {
	defer observe("list", &err)
	out, err = s.repo.List(ctx)
	if err != nil {
		logger.Errorf("error in fetching movies: %v", err)
		return nil, apperr.Server(err)
	}
	if out == nil {
		out = []*movie.Movie{}
	}
	return out, nil
}

// Get returns the movie with the given id. Malformed and unknown ids are both NotFound.
func (s *Service) Get(ctx context.Context, id string) (m *movie.Movie, err error) {
	defer observe("get", &err)
	if !ident.Valid(id) {
		return nil, apperr.NotFound(apperr.ReasonMalformedID, msgInvalidID)
	}
	m, err = s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(apperr.ReasonNoSuchRecord, msgNotFound)
		}
		logger.Errorf("error in fetching movie %s: %v", id, err)
		return nil, apperr.Server(err)
	}
	return m, nil
}

// Exists reports whether a movie with id is stored. Malformed ids simply do not exist.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	if !ident.Valid(id) {
		return false, nil
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create validates that every field is present and stores a new movie.
func (s *Service) Create(ctx context.Context, in movie.CreateInput) (m *movie.Movie, err error) {
	defer observe("create", &err)
	if missing := missingFields(in); len(missing) > 0 {
		return nil, apperr.Validation(msgMissingFields+": "+strings.Join(missing, ", "), missing...)
	}
	m = &movie.Movie{
		Title:       in.Title,
		Category:    in.Category,
		Image:       in.Image,
		Description: in.Description,
	}
	if err = s.repo.Create(ctx, m); err != nil {
		logger.Errorf("error in creating movie: %v", err)
		return nil, apperr.Server(err)
	}
	return m, nil
}

func missingFields(in movie.CreateInput) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", in.Title},
		{"category", in.Category},
		{"image", in.Image},
		{"description", in.Description},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Update overwrites the supplied fields. Unlike Create it does not require a
// complete payload; an empty patch only bumps updatedAt.
func (s *Service) Update(ctx context.Context, id string, p movie.Patch) (m *movie.Movie, err error) {
	defer observe("update", &err)
	if !ident.Valid(id) {
		return nil, apperr.NotFound(apperr.ReasonMalformedID, msgInvalidID)
	}
	m, err = s.repo.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(apperr.ReasonNoSuchRecord, msgNotFound)
		}
		logger.Errorf("error in updating movie %s: %v", id, err)
		return nil, apperr.Server(err)
	}
	return m, nil
}

// Delete removes the movie. It succeeds when nothing matched. Comments that
// reference the movie are left in place.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	defer observe("delete", &err)
	if !ident.Valid(id) {
		return apperr.NotFound(apperr.ReasonMalformedID, msgInvalidID)
	}
	if err = s.repo.Delete(ctx, id); err != nil {
		logger.Errorf("error in deleting movie %s: %v", id, err)
		return apperr.Server(err)
	}
	return nil
}
