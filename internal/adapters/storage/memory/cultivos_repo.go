package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cultivo-console/internal/domain/cultivos"
)

type cultivosRepo struct {
	mu   sync.RWMutex
	byID map[string]cultivos.Cultivo
}

func NewCultivosRepo() cultivos.Repository {
	return &cultivosRepo{
		byID: make(map[string]cultivos.Cultivo),
	}
}

func (r *cultivosRepo) Create(ctx context.Context, c cultivos.Cultivo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("cultivo id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("cultivo already exists")
	}
	if err := r.checkExclusivityLocked(c); err != nil {
		return err
	}

	r.byID[c.ID] = c
	return nil
}

func (r *cultivosRepo) Update(ctx context.Context, c cultivos.Cultivo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("cultivo id required")
	}
	if _, exists := r.byID[c.ID]; !exists {
		return cultivos.ErrNotFound
	}
	if err := r.checkExclusivityLocked(c); err != nil {
		return err
	}

	r.byID[c.ID] = c
	return nil
}

// checkExclusivityLocked re-chequea la exclusividad de maceta bajo el write
// lock. El validador ya la miró, pero ese chequeo es read-then-write; este es
// el boundary serializado que cierra la carrera entre dos mutaciones
// concurrentes apuntando a la misma maceta.
func (r *cultivosRepo) checkExclusivityLocked(c cultivos.Cultivo) error {
	if c.Status != cultivos.StatusActive || c.Deleted() {
		return nil
	}
	potID, ok := c.Location.PotID()
	if !ok {
		return nil
	}

	for _, other := range r.byID {
		if other.ID == c.ID {
			continue
		}
		if other.Status != cultivos.StatusActive || other.Deleted() {
			continue
		}
		if otherPot, ok := other.Location.PotID(); ok && otherPot == potID {
			return cultivos.ErrPotOccupied
		}
	}
	return nil
}

func (r *cultivosRepo) GetByID(ctx context.Context, id string) (cultivos.Cultivo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return cultivos.Cultivo{}, cultivos.ErrNotFound
	}
	return c, nil
}

func (r *cultivosRepo) List(ctx context.Context, filter cultivos.ListFilter) ([]cultivos.Cultivo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cultivos.Cultivo, 0)

	for _, c := range r.byID {
		// Los borrados quedan fuera de todo listado por defecto.
		if c.Deleted() {
			continue
		}

		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Stage != "" && c.Stage != filter.Stage {
			continue
		}
		if filter.LocationKind != "" && c.Location.Kind() != filter.LocationKind {
			continue
		}
		if filter.LocationID != "" && c.Location.TargetID() != filter.LocationID {
			continue
		}
		if filter.GeneticID != "" && c.GeneticID != filter.GeneticID {
			continue
		}

		if q := strings.TrimSpace(filter.Query); q != "" {
			hay := strings.ToLower(c.Name + " " + c.Code)
			if !strings.Contains(hay, strings.ToLower(q)) {
				continue
			}
		}

		out = append(out, c)
	}

	asc := filter.Sort == cultivos.SortStartAsc
	sort.Slice(out, func(i, j int) bool {
		if asc {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].StartDate.After(out[j].StartDate)
	})

	return out, nil
}
