package registros

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalDetail serializa el payload por tipo a JSON. Un detalle nil se
// serializa como null (la ausencia es válida para todos los tipos).
func MarshalDetail(d Detail) ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d)
}

// UnmarshalDetail deserializa el payload según el tipo declarado de la
// entrada. El tag de tipo vive fuera del blob, así que el kind manda.
func UnmarshalDetail(k Kind, data []byte) (Detail, error) {
	if len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}

	switch k {
	case KindStage:
		var d StageDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindLightEnvironment:
		var d LightEnvironmentDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindWaterNutrition:
		var d WaterNutritionDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindHealth:
		var d HealthDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return d, nil
	case KindGeneral:
		var d GeneralDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown registro kind %q", k)
	}
}
