package genetics

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("genetic not found")

type Repository interface {
	// Create existe para que el shell/admin y los tests puedan sembrar
	// genéticas; el core nunca las muta.
	Create(ctx context.Context, g Genetic) error
	GetByID(ctx context.Context, id string) (Genetic, error)
	List(ctx context.Context) ([]Genetic, error)
}
