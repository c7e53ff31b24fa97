package cultivos

import "context"

// SortOrder ordena el listado por fecha de inicio.
type SortOrder string

const (
	SortStartDesc SortOrder = "start_desc" // default: más reciente primero
	SortStartAsc  SortOrder = "start_asc"
)

// ListFilter filtra el listado de cultivos. Los borrados quedan excluidos
// siempre, sin importar el filtro.
type ListFilter struct {
	Query        string // búsqueda libre sobre name/code
	Status       Status
	Stage        Stage
	LocationKind LocationKind
	LocationID   string
	GeneticID    string
	Sort         SortOrder
}

// Repository persiste cultivos. Es un persistidor tonto: la validación de
// asignación vive en el validador, no acá. La única regla que el storage
// vuelve a chequear es la exclusividad de maceta (ErrPotOccupied), para
// cerrar la ventana read-then-write entre validación y commit.
type Repository interface {
	Create(ctx context.Context, c Cultivo) error
	Update(ctx context.Context, c Cultivo) error

	// GetByID devuelve también cultivos borrados: el historial se conserva.
	GetByID(ctx context.Context, id string) (Cultivo, error)

	// List excluye incondicionalmente los borrados.
	List(ctx context.Context, filter ListFilter) ([]Cultivo, error)
}
