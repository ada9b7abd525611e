package repository

import (
	"context"
	"sync"
	"time"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/ident"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie"
)

// MemoryRepo is an in-memory repository used when no MongoDB URI is configured
// and by unit tests. List returns movies in insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*movie.Movie
	order []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*movie.Movie)}
}

func (m *MemoryRepo) List(ctx context.Context) ([]*movie.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*movie.Movie, 0, len(m.store))
	for _, id := range m.order {
		if mv, ok := m.store[id]; ok {
			cp := *mv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*movie.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mv, ok := m.store[id]; ok {
		cp := *mv
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Create(ctx context.Context, mv *movie.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv.ID = ident.New()
	mv.CreatedAt = time.Now().UTC()
	mv.UpdatedAt = mv.CreatedAt
	cp := *mv
	m.store[mv.ID] = &cp
	m.order = append(m.order, mv.ID)
	return nil
}

func (m *MemoryRepo) Update(ctx context.Context, id string, p movie.Patch) (*movie.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Apply(mv)
	mv.UpdatedAt = time.Now().UTC()
	cp := *mv
	return &cp, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return nil
	}
	delete(m.store, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
