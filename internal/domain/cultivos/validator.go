package cultivos

import (
	"strings"
	"time"
)

// AllocationInput es el estado deseado de un cultivo tal como llega del
// caller, antes de plegar kind/bedID/potID en una Location. Los tres campos
// de ubicación viajan sueltos justamente para poder reportar "ambos seteados"
// o "ninguno seteado" como violaciones en vez de panics o estados inválidos.
type AllocationInput struct {
	Name         string
	LocationKind string
	BedID        string
	PotID        string
	GeneticID    string
	Stage        Stage
	Status       Status
	StartDate    time.Time
}

// AllocationFacts son los hechos que el validador necesita del estado
// persistido. El orquestador los lee y los pasa acá; el validador queda puro.
type AllocationFacts struct {
	BedExists     bool
	PotExists     bool
	GeneticExists bool

	// Occupied es el conjunto de macetas ocupadas por cultivos ACTIVOS no
	// borrados, ya excluyendo al cultivo en edición (ver OccupiedPots).
	Occupied map[string]struct{}
}

// ValidateAllocation evalúa las reglas de asignación en orden, acumulando
// todas las violaciones (no corta en la primera). Si no hay violaciones de
// ubicación, devuelve la Location ya plegada como tipo suma.
func ValidateAllocation(in AllocationInput, facts AllocationFacts) (Location, []string) {
	var violations []string

	if strings.TrimSpace(in.Name) == "" {
		violations = append(violations, "name is required")
	}

	kind := LocationKind(strings.TrimSpace(in.LocationKind))
	bedID := strings.TrimSpace(in.BedID)
	potID := strings.TrimSpace(in.PotID)

	var loc Location
	switch kind {
	case "":
		violations = append(violations, "location kind is required")
	case LocationKindBed:
		if bedID == "" {
			violations = append(violations, "bed id is required when location kind is BED")
		} else if !facts.BedExists {
			violations = append(violations, "bed does not exist")
		} else {
			loc = BedLocation(bedID)
		}
		if potID != "" {
			violations = append(violations, "pot id must be empty when location kind is BED")
			loc = Location{}
		}
	case LocationKindPot:
		if potID == "" {
			violations = append(violations, "pot id is required when location kind is POT")
		} else if !facts.PotExists {
			violations = append(violations, "pot does not exist")
		} else {
			loc = PotLocation(potID)
		}
		if bedID != "" {
			violations = append(violations, "bed id must be empty when location kind is POT")
			loc = Location{}
		}
	default:
		violations = append(violations, "location kind must be BED or POT")
	}

	if in.Stage == "" {
		violations = append(violations, "stage is required")
	} else if !ValidStage(in.Stage) {
		violations = append(violations, "unknown stage: "+string(in.Stage))
	}

	if in.Status == "" {
		violations = append(violations, "status is required")
	} else if !ValidStatus(in.Status) {
		violations = append(violations, "unknown status: "+string(in.Status))
	}

	if in.StartDate.IsZero() {
		violations = append(violations, "start date is required")
	}

	if strings.TrimSpace(in.GeneticID) != "" && !facts.GeneticExists {
		violations = append(violations, "genetic does not exist")
	}

	// Exclusividad: una maceta solo puede tener un cultivo ACTIVO no borrado.
	if kind == LocationKindPot && in.Status == StatusActive && potID != "" {
		if _, busy := facts.Occupied[potID]; busy {
			violations = append(violations, "pot is already occupied by an active cultivo")
		}
	}

	if len(violations) > 0 {
		return Location{}, violations
	}
	return loc, nil
}
