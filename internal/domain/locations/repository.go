package locations

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("location not found")

// Repository persiste camas y macetas. No hay operaciones de borrado:
// las ubicaciones son append-only en este core.
type Repository interface {
	CreateBed(ctx context.Context, b Bed) error
	GetBed(ctx context.Context, id string) (Bed, error)
	ListBeds(ctx context.Context) ([]Bed, error)

	CreatePot(ctx context.Context, p Pot) error
	GetPot(ctx context.Context, id string) (Pot, error)
	ListPots(ctx context.Context) ([]Pot, error)
}
