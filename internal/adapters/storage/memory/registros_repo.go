package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cultivo-console/internal/domain/registros"
)

type registrosRepo struct {
	mu sync.RWMutex

	// Slice en orden de inserción: los empates de timestamp se resuelven
	// por ese orden.
	entries []registros.Registro
	byID    map[string]struct{}
}

func NewRegistrosRepo() registros.Repository {
	return &registrosRepo{
		byID: make(map[string]struct{}),
	}
}

func (r *registrosRepo) Create(ctx context.Context, e registros.Registro) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("registro id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("registro already exists")
	}

	r.byID[e.ID] = struct{}{}
	r.entries = append(r.entries, e)
	return nil
}

func (r *registrosRepo) ListByCultivo(ctx context.Context, cultivoID string, filter registros.ListFilter) ([]registros.Registro, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	out := make([]registros.Registro, 0)

	for _, e := range r.entries {
		if e.CultivoID != cultivoID {
			continue
		}

		if len(filter.Kinds) > 0 {
			ok := false
			for _, k := range filter.Kinds {
				if e.Kind == k {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		if filter.From != nil && e.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Timestamp.After(*filter.To) {
			continue
		}

		out = append(out, e)
	}

	// Timestamp desc; el sort estable preserva el orden de inserción entre
	// timestamps iguales.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
