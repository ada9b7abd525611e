package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/comment"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/ident"
)

func TestMemoryRepoCRUD(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	movieID := ident.New()

	c := &comment.Comment{Text: "great film", Username: "alice", MovieID: movieID}
	require.NoError(t, r.Create(ctx, c))
	require.True(t, ident.Valid(c.ID))

	got, err := r.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	updated, err := r.UpdateText(ctx, c.ID, "even better")
	require.NoError(t, err)
	require.Equal(t, "even better", updated.Text)
	require.Equal(t, movieID, updated.MovieID)

	require.NoError(t, r.Delete(ctx, c.ID))
	_, err = r.Get(ctx, c.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, c.ID), ErrNotFound)
	_, err = r.UpdateText(ctx, c.ID, "x")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepoListByMovieOrdersNewestFirst(t *testing.T) {
	r := NewMemoryRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		// every other comment shares a timestamp with its predecessor
		return base.Add(time.Duration(tick/2) * time.Second)
	}
	ctx := context.Background()
	movieID, other := ident.New(), ident.New()

	var ids []string
	for i := 0; i < 6; i++ {
		c := &comment.Comment{Text: "t", Username: "u", MovieID: movieID}
		require.NoError(t, r.Create(ctx, c))
		ids = append(ids, c.ID)
	}
	require.NoError(t, r.Create(ctx, &comment.Comment{Text: "t", Username: "u", MovieID: other}))

	list, err := r.ListByMovie(ctx, movieID, 4)
	require.NoError(t, err)
	require.Len(t, list, 4)
	require.Equal(t, ids[5], list[0].ID)
	require.Equal(t, ids[4], list[1].ID)
	for i := 1; i < len(list); i++ {
		require.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt))
	}

	empty, err := r.ListByMovie(ctx, ident.New(), 100)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}
