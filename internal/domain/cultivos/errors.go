package cultivos

import "errors"

var (
	ErrNotFound = errors.New("cultivo not found")

	// ErrPotOccupied lo devuelve el storage cuando la restricción de
	// exclusividad detecta una maceta ya ocupada al momento de escribir.
	// Cierra la ventana read-then-write entre validación y commit.
	ErrPotOccupied = errors.New("pot already occupied by an active cultivo")
)
