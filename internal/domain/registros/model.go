package registros

import "time"

// Kind clasifica un registro del historial de un cultivo.
// @Enum STAGE, LIGHT_ENVIRONMENT, WATER_NUTRITION, HEALTH, GENERAL
type Kind string

const (
	KindStage            Kind = "STAGE"
	KindLightEnvironment Kind = "LIGHT_ENVIRONMENT"
	KindWaterNutrition   Kind = "WATER_NUTRITION"
	KindHealth           Kind = "HEALTH"
	KindGeneral          Kind = "GENERAL"
)

// ValidKind indica si k es un tipo de registro conocido.
func ValidKind(k Kind) bool {
	switch k {
	case KindStage, KindLightEnvironment, KindWaterNutrition, KindHealth, KindGeneral:
		return true
	}
	return false
}

// Detail es el payload específico por tipo. Cada variante conoce su Kind,
// así el servicio puede rechazar un detalle que no coincide con el tipo
// declarado de la entrada.
type Detail interface {
	Kind() Kind
}

// Registro es una entrada inmutable del historial de un cultivo. Una vez
// escrita no se modifica ni se borra; el orden es por timestamp, con empates
// resueltos por orden de inserción.
type Registro struct {
	ID        string
	CultivoID string

	Kind      Kind
	Timestamp time.Time

	Detail Detail
	Notes  string

	CreatedAt time.Time
	CreatedBy string
}
