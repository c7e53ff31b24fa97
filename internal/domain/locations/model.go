package locations

import "time"

// Bed (cama) es una superficie de cultivo que puede contener varias macetas.
// Ciclo de vida independiente: la crea el operador y nunca se borra
// automáticamente.
type Bed struct {
	ID   string
	Name string

	LocationLabel string

	// Dimensiones físicas y capacidad, opcionales.
	Width    *float64
	Length   *float64
	Height   *float64
	Capacity *int

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Pot (maceta) es un contenedor individual anidado dentro de una cama.
// Toda maceta pertenece a exactamente una cama.
type Pot struct {
	ID    string
	Name  string
	BedID string

	Volume        *float64
	LocationLabel string
	Notes         string

	CreatedAt time.Time
	UpdatedAt time.Time
}
