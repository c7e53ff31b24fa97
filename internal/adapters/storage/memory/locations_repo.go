package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cultivo-console/internal/domain/locations"
)

type locationsRepo struct {
	mu    sync.RWMutex
	beds  map[string]locations.Bed
	pots  map[string]locations.Pot
}

func NewLocationsRepo() locations.Repository {
	return &locationsRepo{
		beds: make(map[string]locations.Bed),
		pots: make(map[string]locations.Pot),
	}
}

func (r *locationsRepo) CreateBed(ctx context.Context, b locations.Bed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("bed id required")
	}
	if _, exists := r.beds[b.ID]; exists {
		return errors.New("bed already exists")
	}
	r.beds[b.ID] = b
	return nil
}

func (r *locationsRepo) GetBed(ctx context.Context, id string) (locations.Bed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.beds[id]
	if !ok {
		return locations.Bed{}, locations.ErrNotFound
	}
	return b, nil
}

func (r *locationsRepo) ListBeds(ctx context.Context) ([]locations.Bed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]locations.Bed, 0, len(r.beds))
	for _, b := range r.beds {
		out = append(out, b)
	}

	// Orden estable por created_at asc (consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *locationsRepo) CreatePot(ctx context.Context, p locations.Pot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pot id required")
	}
	if _, exists := r.pots[p.ID]; exists {
		return errors.New("pot already exists")
	}
	r.pots[p.ID] = p
	return nil
}

func (r *locationsRepo) GetPot(ctx context.Context, id string) (locations.Pot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pots[id]
	if !ok {
		return locations.Pot{}, locations.ErrNotFound
	}
	return p, nil
}

func (r *locationsRepo) ListPots(ctx context.Context) ([]locations.Pot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]locations.Pot, 0, len(r.pots))
	for _, p := range r.pots {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
