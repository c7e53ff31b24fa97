package cultivos

import "time"

// Stage define la etapa del ciclo de crecimiento de un cultivo.
// @Enum GERMINATION, SEEDLING, VEGETATIVE, FLOWERING, HARVEST, DRY_CURE
type Stage string

const (
	StageGermination Stage = "GERMINATION"
	StageSeedling    Stage = "SEEDLING"
	StageVegetative  Stage = "VEGETATIVE"
	StageFlowering   Stage = "FLOWERING"
	StageHarvest     Stage = "HARVEST"
	StageDryCure     Stage = "DRY_CURE"
)

// ValidStage indica si s es una etapa conocida.
func ValidStage(s Stage) bool {
	switch s {
	case StageGermination, StageSeedling, StageVegetative, StageFlowering, StageHarvest, StageDryCure:
		return true
	}
	return false
}

// Status define el estado operativo de un cultivo, independiente de la etapa.
// @Enum ACTIVE, PAUSED, FINISHED
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusPaused   Status = "PAUSED"
	StatusFinished Status = "FINISHED"
)

// ValidStatus indica si s es un estado conocido.
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusPaused, StatusFinished:
		return true
	}
	return false
}

// LocationKind discrimina entre cama y maceta.
type LocationKind string

const (
	LocationKindBed LocationKind = "BED"
	LocationKindPot LocationKind = "POT"
)

// Location es la ubicación física de un cultivo: exactamente una cama o una
// maceta. Los campos son privados a propósito: no se puede construir una
// ubicación con ambos ids, ni con kind y target cruzados.
type Location struct {
	kind LocationKind
	id   string
}

// BedLocation construye una ubicación a nivel cama.
func BedLocation(bedID string) Location {
	return Location{kind: LocationKindBed, id: bedID}
}

// PotLocation construye una ubicación a nivel maceta.
func PotLocation(potID string) Location {
	return Location{kind: LocationKindPot, id: potID}
}

func (l Location) Kind() LocationKind { return l.kind }

// IsZero indica que la ubicación no fue asignada.
func (l Location) IsZero() bool { return l.kind == "" }

// BedID devuelve el id de la cama si la ubicación es de tipo BED.
func (l Location) BedID() (string, bool) {
	if l.kind != LocationKindBed {
		return "", false
	}
	return l.id, true
}

// PotID devuelve el id de la maceta si la ubicación es de tipo POT.
func (l Location) PotID() (string, bool) {
	if l.kind != LocationKindPot {
		return "", false
	}
	return l.id, true
}

// TargetID devuelve el id del contenedor sin discriminar el tipo.
func (l Location) TargetID() string { return l.id }

// String produce el descriptor "KIND:id" usado en registros de reubicación.
func (l Location) String() string {
	if l.IsZero() {
		return ""
	}
	return string(l.kind) + ":" + l.id
}

// Cultivo representa una corrida de crecimiento: desde el inicio hasta la
// cosecha o su terminación. Nunca se borra físicamente.
type Cultivo struct {
	ID string

	// Code es el código interno, asignado una sola vez al crear.
	Code string

	Name      string
	Location  Location
	GeneticID string // opcional

	Stage  Stage
	Status Status

	StartDate time.Time
	EndDate   *time.Time

	Notes string

	DeletedAt *time.Time

	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
}

// Deleted indica si el cultivo fue dado de baja (soft delete).
func (c Cultivo) Deleted() bool { return c.DeletedAt != nil }
