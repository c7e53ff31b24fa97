// Package validation define el error de validación compartido por los
// módulos de dominio: una lista completa de violaciones, no solo la primera,
// para que el caller pueda reportarlas todas de una vez.
package validation

import (
	"errors"
	"strings"
)

type Error struct {
	Violations []string
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewError arma un error de validación a partir de una lista de violaciones.
func NewError(violations ...string) *Error {
	return &Error{Violations: violations}
}

// AsError extrae un *Error de err, si lo es.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
