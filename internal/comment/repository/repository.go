package repository

import (
	"context"
	"errors"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/comment"
)

var (
	ErrNotFound = errors.New("comment not found")
)

// Repository is the persistence contract the comment service relies on.
type Repository interface {
	// ListByMovie returns at most limit comments for movieID, newest first.
	ListByMovie(ctx context.Context, movieID string, limit int) ([]*comment.Comment, error)
	Get(ctx context.Context, id string) (*comment.Comment, error)
	Create(ctx context.Context, c *comment.Comment) error
	UpdateText(ctx context.Context, id, text string) (*comment.Comment, error)
	Delete(ctx context.Context, id string) error
}
