package genetics

import "time"

// Genetic es una genética/variedad referenciada opcionalmente por un
// cultivo. Desde el core es un colaborador de solo lectura: acá solo se
// lista y se consulta por id (el alta vive en el shell de administración).
type Genetic struct {
	ID   string
	Name string

	CreatedAt time.Time
}
