package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/apperr"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/comment"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/comment/repository"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/ident"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/logger"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/metrics"
)

const (
	// MaxTextLength is measured in characters on the untrimmed text.
	MaxTextLength = 500
	// ListLimit caps ListByMovie.
	ListLimit = 100
)

const (
	msgInvalidMovieID   = "Invalid Movie Id!"
	msgInvalidCommentID = "Invalid Comment Id!"
	msgMovieNotFound    = "Movie not found!"
	msgCommentNotFound  = "Comment not found!"
	msgTextAndUsername  = "Please provide text and username"
	msgUsernameRequired = "Username is required"
	msgTextTooLong      = "Comment text cannot exceed 500 characters"
)

// MovieChecker answers whether a movie exists. The movie service satisfies it.
type MovieChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service implements comment threads. Update and Delete are gated on the
// caller asserting the comment's stored username.
type Service struct {
	repo   repository.Repository
	movies MovieChecker
}

func NewService(r repository.Repository, movies MovieChecker) *Service {
	return &Service{repo: r, movies: movies}
}

func observe(op string, err *error) {
	metrics.Operations.WithLabelValues("comment", op, apperr.Label(*err)).Inc()
}

// ListByMovie returns up to ListLimit comments for movieID, newest first. The
// movie itself is not looked up, so a deleted movie yields its orphans.
func (s *Service) ListByMovie(ctx context.Context, movieID string) (out []*comment.Comment, err error) {
	defer observe("list", &err)
	if !ident.Valid(movieID) {
		return nil, apperr.NotFound(apperr.ReasonMalformedID, msgInvalidMovieID)
	}
	out, err = s.repo.ListByMovie(ctx, movieID, ListLimit)
	if err != nil {
		logger.Errorf("error in fetching comments for movie %s: %v", movieID, err)
		return nil, apperr.Server(err)
	}
	if out == nil {
		out = []*comment.Comment{}
	}
	return out, nil
}

// Create checks the movie exists and stores a comment with trimmed text and
// username. The existence check and insert are not atomic.
func (s *Service) Create(ctx context.Context, movieID, text, username string) (c *comment.Comment, err error) {
	defer observe("create", &err)
	if !ident.Valid(movieID) {
		return nil, apperr.NotFound(apperr.ReasonMalformedID, msgInvalidMovieID)
	}
	if err = validateText(text, username); err != nil {
		return nil, err
	}
	ok, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		logger.Errorf("error in checking movie %s: %v", movieID, err)
		return nil, apperr.Server(err)
	}
	if !ok {
		return nil, apperr.NotFound(apperr.ReasonMovieAbsent, msgMovieNotFound)
	}
	c = &comment.Comment{
		Text:     strings.TrimSpace(text),
		Username: strings.TrimSpace(username),
		MovieID:  movieID,
	}
	if err = s.repo.Create(ctx, c); err != nil {
		logger.Errorf("error in creating comment: %v", err)
		return nil, apperr.Server(err)
	}
	return c, nil
}

// Update replaces the text of a comment owned by username.
func (s *Service) Update(ctx context.Context, commentID, text, username string) (c *comment.Comment, err error) {
	defer observe("update", &err)
	if !ident.Valid(commentID) {
		return nil, apperr.NotFound(apperr.ReasonMalformedID, msgInvalidCommentID)
	}
	if err = validateText(text, username); err != nil {
		return nil, err
	}
	if _, err = s.owned(ctx, commentID, username, "edit"); err != nil {
		return nil, err
	}
	c, err = s.repo.UpdateText(ctx, commentID, strings.TrimSpace(text))
	if err != nil {
		return nil, s.classify("updating", commentID, err)
	}
	return c, nil
}

// Delete removes a comment owned by username.
func (s *Service) Delete(ctx context.Context, commentID, username string) (err error) {
	defer observe("delete", &err)
	if !ident.Valid(commentID) {
		return apperr.NotFound(apperr.ReasonMalformedID, msgInvalidCommentID)
	}
	if strings.TrimSpace(username) == "" {
		return apperr.Validation(msgUsernameRequired, "username")
	}
	if _, err = s.owned(ctx, commentID, username, "delete"); err != nil {
		return err
	}
	if err = s.repo.Delete(ctx, commentID); err != nil {
		return s.classify("deleting", commentID, err)
	}
	return nil
}

// owned loads the comment and applies the ownership check shared by Update and Delete.
func (s *Service) owned(ctx context.Context, commentID, username, action string) (*comment.Comment, error) {
	stored, err := s.repo.Get(ctx, commentID)
	if err != nil {
		return nil, s.classify("fetching", commentID, err)
	}
	if !stored.OwnedBy(username) {
		return nil, apperr.Forbidden("You can only " + action + " your own comments")
	}
	return stored, nil
}

func (s *Service) classify(verb, commentID string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(apperr.ReasonNoSuchRecord, msgCommentNotFound)
	}
	logger.Errorf("error in %s comment %s: %v", verb, commentID, err)
	return apperr.Server(err)
}

func validateText(text, username string) error {
	var missing []string
	if strings.TrimSpace(text) == "" {
		missing = append(missing, "text")
	}
	if strings.TrimSpace(username) == "" {
		missing = append(missing, "username")
	}
	if len(missing) > 0 {
		return apperr.Validation(msgTextAndUsername, missing...)
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return apperr.Validation(msgTextTooLong, "text")
	}
	return nil
}
