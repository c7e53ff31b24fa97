package cultivos

// OccupiedPots deriva, bajo demanda, el conjunto de macetas ocupadas por un
// cultivo ACTIVO y no borrado. Es una función pura sobre la colección actual;
// se recalcula en cada consulta en vez de cachearse (el volumen esperado es
// operativo, no de alto throughput).
//
// excludeID permite que una edición en curso ignore su propia ocupación
// previa: un cultivo que ya está en la maceta X puede seguir en X.
func OccupiedPots(all []Cultivo, excludeID string) map[string]struct{} {
	occupied := make(map[string]struct{})
	for _, c := range all {
		if c.ID == excludeID {
			continue
		}
		if c.Status != StatusActive || c.Deleted() {
			continue
		}
		potID, ok := c.Location.PotID()
		if !ok {
			continue
		}
		occupied[potID] = struct{}{}
	}
	return occupied
}
