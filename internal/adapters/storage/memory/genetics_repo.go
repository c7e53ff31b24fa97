package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cultivo-console/internal/domain/genetics"
)

type geneticsRepo struct {
	mu   sync.RWMutex
	byID map[string]genetics.Genetic
}

func NewGeneticsRepo() genetics.Repository {
	return &geneticsRepo{
		byID: make(map[string]genetics.Genetic),
	}
}

func (r *geneticsRepo) Create(ctx context.Context, g genetics.Genetic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(g.ID) == "" {
		return errors.New("genetic id required")
	}
	if _, exists := r.byID[g.ID]; exists {
		return errors.New("genetic already exists")
	}
	r.byID[g.ID] = g
	return nil
}

func (r *geneticsRepo) GetByID(ctx context.Context, id string) (genetics.Genetic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return genetics.Genetic{}, genetics.ErrNotFound
	}
	return g, nil
}

func (r *geneticsRepo) List(ctx context.Context) ([]genetics.Genetic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]genetics.Genetic, 0, len(r.byID))
	for _, g := range r.byID {
		out = append(out, g)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}
