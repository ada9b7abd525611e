package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/comment"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/ident"
)

// MemoryRepo is an in-memory comment store for development and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*comment.Comment
	seq   map[string]int64
	next  int64
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		store: make(map[string]*comment.Comment),
		seq:   make(map[string]int64),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryRepo) ListByMovie(ctx context.Context, movieID string, limit int) ([]*comment.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*comment.Comment{}
	for _, c := range m.store {
		if c.MovieID == movieID {
			cp := *c
			out = append(out, &cp)
		}
	}
	// newest first; insertion sequence breaks timestamp ties
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*comment.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.store[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Create(ctx context.Context, c *comment.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = ident.New()
	c.CreatedAt = m.now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.store[c.ID] = &cp
	m.next++
	m.seq[c.ID] = m.next
	return nil
}

func (m *MemoryRepo) UpdateText(ctx context.Context, id, text string) (*comment.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Text = text
	c.UpdatedAt = m.now()
	cp := *c
	return &cp, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	delete(m.seq, id)
	return nil
}
