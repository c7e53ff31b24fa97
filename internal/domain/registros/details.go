package registros

// Los campos extra de cada variante son opcionales: la ausencia es válida.
// Los numéricos van como punteros para distinguir "no informado" de cero.

// StageDetail documenta un cambio de etapa.
type StageDetail struct {
	PreviousStage string `json:"previous_stage,omitempty"`
	NewStage      string `json:"new_stage,omitempty"`
}

func (StageDetail) Kind() Kind { return KindStage }

// LightEnvironmentDetail registra condiciones de luz y ambiente.
type LightEnvironmentDetail struct {
	LightHours *float64 `json:"light_hours,omitempty"`
	DarkHours  *float64 `json:"dark_hours,omitempty"`
	PPFD       *float64 `json:"ppfd,omitempty"`
	DayTemp    *float64 `json:"day_temp,omitempty"`
	NightTemp  *float64 `json:"night_temp,omitempty"`
	Humidity   *float64 `json:"humidity,omitempty"`
}

func (LightEnvironmentDetail) Kind() Kind { return KindLightEnvironment }

// WaterNutritionDetail registra un riego o fertilización.
type WaterNutritionDetail struct {
	WaterVolume *float64 `json:"water_volume,omitempty"`
	PH          *float64 `json:"ph,omitempty"`
	EC          *float64 `json:"ec,omitempty"`
	Fertilizer  string   `json:"fertilizer,omitempty"`
}

func (WaterNutritionDetail) Kind() Kind { return KindWaterNutrition }

// HealthDetail registra un problema sanitario y su tratamiento.
type HealthDetail struct {
	PestOrFungus string `json:"pest_or_fungus,omitempty"`
	Severity     *int   `json:"severity,omitempty"` // 1..5
	Treatment    string `json:"treatment,omitempty"`
	Outcome      string `json:"outcome,omitempty"`
}

func (HealthDetail) Kind() Kind { return KindHealth }

// GeneralDetail es el catch-all para eventos ad hoc: un tag de evento más
// descriptores opcionales de antes/después (p.ej. un cambio de ubicación).
type GeneralDetail struct {
	Event  string `json:"event,omitempty"`
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

func (GeneralDetail) Kind() Kind { return KindGeneral }

// Tags de evento usados por el orquestador de transiciones.
const (
	EventLocationChanged = "LOCATION_CHANGED"
	EventDeleted         = "DELETED"
)
