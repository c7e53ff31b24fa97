package registros

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("registro not found")

// ListFilter acota el listado de registros de un cultivo.
type ListFilter struct {
	Kinds []Kind
	From  *time.Time
	To    *time.Time
	Limit int
}

// Repository persiste registros. No hay Update ni Delete: el log es
// append-only por contrato.
type Repository interface {
	Create(ctx context.Context, r Registro) error
	ListByCultivo(ctx context.Context, cultivoID string, filter ListFilter) ([]Registro, error)
}
