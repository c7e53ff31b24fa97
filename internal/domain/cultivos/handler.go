package cultivos

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"cultivo-console/internal/domain/validation"
	"cultivo-console/internal/metrics"
	"cultivo-console/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/cultivos", func(cr chi.Router) {
		cr.Get("/", listCultivosHandler(svc))
		cr.Post("/", createCultivoHandler(svc))

		cr.Get("/{cultivoID}", getCultivoHandler(svc))
		cr.Patch("/{cultivoID}", updateCultivoHandler(svc))
		cr.Delete("/{cultivoID}", deleteCultivoHandler(svc))

		// Transiciones con entry point propio
		cr.Post("/{cultivoID}/stage", changeStageHandler(svc))
		cr.Post("/{cultivoID}/relocate", relocateHandler(svc))
	})
}

// cultivoPayload es el cuerpo de create/update. location_kind + bed_id/pot_id
// viajan sueltos; el validador los pliega y reporta combinaciones inválidas.
type cultivoPayload struct {
	Name         string `json:"name"`
	LocationKind string `json:"location_kind" enums:"BED,POT"`
	BedID        string `json:"bed_id"`
	PotID        string `json:"pot_id"`
	GeneticID    string `json:"genetic_id"`
	Stage        Stage  `json:"stage" enums:"GERMINATION,SEEDLING,VEGETATIVE,FLOWERING,HARVEST,DRY_CURE"`
	Status       Status `json:"status" enums:"ACTIVE,PAUSED,FINISHED"`
	StartDate    string `json:"start_date"` // RFC3339
	EndDate      string `json:"end_date"`   // RFC3339, opcional
	Notes        string `json:"notes"`
}

// cultivoResponse representa un cultivo devuelto por la API.
type cultivoResponse struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	LocationKind LocationKind `json:"location_kind"`
	BedID        string       `json:"bed_id,omitempty"`
	PotID        string       `json:"pot_id,omitempty"`
	GeneticID    string       `json:"genetic_id,omitempty"`
	Stage        Stage        `json:"stage"`
	Status       Status       `json:"status"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      *time.Time   `json:"end_date,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	DeletedAt    *time.Time   `json:"deleted_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	CreatedBy    string       `json:"created_by"`
	UpdatedAt    time.Time    `json:"updated_at"`
	UpdatedBy    string       `json:"updated_by"`
}

func toCultivoResponse(c Cultivo) cultivoResponse {
	resp := cultivoResponse{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		LocationKind: c.Location.Kind(),
		GeneticID:    c.GeneticID,
		Stage:        c.Stage,
		Status:       c.Status,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Notes:        c.Notes,
		DeletedAt:    c.DeletedAt,
		CreatedAt:    c.CreatedAt,
		CreatedBy:    c.CreatedBy,
		UpdatedAt:    c.UpdatedAt,
		UpdatedBy:    c.UpdatedBy,
	}
	if id, ok := c.Location.BedID(); ok {
		resp.BedID = id
	}
	if id, ok := c.Location.PotID(); ok {
		resp.PotID = id
	}
	return resp
}

// createCultivoHandler godoc
// @Summary Crear cultivo
// @Description Da de alta un cultivo en una cama o maceta. El código interno se asigna acá y no cambia más. Una maceta admite un solo cultivo ACTIVO.
// @Tags cultivos
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body cultivoPayload true "Estado deseado del cultivo; fechas en RFC3339"
// @Success 201 {object} cultivoResponse
// @Failure 400 {object} map[string]any "lista completa de violaciones"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {object} map[string]any "maceta ocupada"
// @Router /cultivos [post]
func createCultivoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		var req cultivoPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := toCreateInput(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), actor, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toCultivoResponse(c))
	}
}

// listCultivosHandler godoc
// @Summary Listar cultivos
// @Description Lista cultivos no borrados. Filtros: texto libre sobre nombre/código, estado, etapa, tipo e id de ubicación, genética; orden por fecha de inicio.
// @Tags cultivos
// @Produce json
// @Param q query string false "Búsqueda libre en nombre/código"
// @Param status query string false "ACTIVE, PAUSED o FINISHED"
// @Param stage query string false "Etapa"
// @Param location_kind query string false "BED o POT"
// @Param location_id query string false "Id de la cama o maceta"
// @Param genetic_id query string false "Id de genética"
// @Param sort query string false "start_asc o start_desc (default)"
// @Success 200 {array} cultivoResponse
// @Router /cultivos [get]
func listCultivosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := ListFilter{
			Query:        q.Get("q"),
			Status:       Status(q.Get("status")),
			Stage:        Stage(q.Get("stage")),
			LocationKind: LocationKind(q.Get("location_kind")),
			LocationID:   q.Get("location_id"),
			GeneticID:    q.Get("genetic_id"),
			Sort:         SortOrder(q.Get("sort")),
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]cultivoResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCultivoResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getCultivoHandler godoc
// @Summary Obtener cultivo
// @Tags cultivos
// @Produce json
// @Param cultivoID path string true "ID del cultivo"
// @Success 200 {object} cultivoResponse
// @Failure 404 {string} string "cultivo not found"
// @Router /cultivos/{cultivoID} [get]
func getCultivoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "cultivoID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCultivoResponse(c))
	}
}

// updateCultivoHandler godoc
// @Summary Editar cultivo
// @Description Edición completa. Un cambio de etapa agrega un registro STAGE; un cambio de ubicación agrega un GENERAL LOCATION_CHANGED. El código interno nunca cambia.
// @Tags cultivos
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param cultivoID path string true "ID del cultivo"
// @Param payload body cultivoPayload true "Estado deseado"
// @Success 200 {object} cultivoResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string "cultivo not found"
// @Failure 409 {object} map[string]any
// @Router /cultivos/{cultivoID} [patch]
func updateCultivoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		var req cultivoPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := toCreateInput(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), actor, chi.URLParam(r, "cultivoID"), UpdateInput(in))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCultivoResponse(c))
	}
}

type changeStageRequest struct {
	Stage Stage `json:"stage" enums:"GERMINATION,SEEDLING,VEGETATIVE,FLOWERING,HARVEST,DRY_CURE"`
}

// changeStageHandler godoc
// @Summary Cambiar etapa
// @Description Persiste solo la etapa y agrega un registro STAGE con etapa previa y nueva.
// @Tags cultivos
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param cultivoID path string true "ID del cultivo"
// @Param payload body changeStageRequest true "Etapa nueva"
// @Success 200 {object} cultivoResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string "cultivo not found"
// @Router /cultivos/{cultivoID}/stage [post]
func changeStageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		var req changeStageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.ChangeStage(r.Context(), actor, chi.URLParam(r, "cultivoID"), req.Stage)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCultivoResponse(c))
	}
}

type relocateRequest struct {
	LocationKind string `json:"location_kind" enums:"BED,POT"`
	BedID        string `json:"bed_id"`
	PotID        string `json:"pot_id"`
}

// relocateHandler godoc
// @Summary Reubicar cultivo
// @Description Mueve el cultivo a otra cama o maceta. Si la maceta destino está ocupada por otro cultivo activo, la operación aborta completa con 409.
// @Tags cultivos
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param cultivoID path string true "ID del cultivo"
// @Param payload body relocateRequest true "Ubicación destino"
// @Success 200 {object} cultivoResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string "cultivo not found"
// @Failure 409 {object} map[string]any "maceta ocupada"
// @Router /cultivos/{cultivoID}/relocate [post]
func relocateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		var req relocateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Relocate(r.Context(), actor, chi.URLParam(r, "cultivoID"), RelocateInput{
			LocationKind: req.LocationKind,
			BedID:        req.BedID,
			PotID:        req.PotID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCultivoResponse(c))
	}
}

// deleteCultivoHandler godoc
// @Summary Dar de baja un cultivo
// @Description Soft delete: deletedAt seteado, estado forzado a FINISHED, registro GENERAL "DELETED". Idempotente sobre un cultivo ya borrado. Nunca se borra físicamente.
// @Tags cultivos
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param cultivoID path string true "ID del cultivo"
// @Success 204 {string} string ""
// @Failure 404 {string} string "cultivo not found"
// @Router /cultivos/{cultivoID} [delete]
func deleteCultivoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		if err := svc.SoftDelete(r.Context(), actor, chi.URLParam(r, "cultivoID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toCreateInput(req cultivoPayload) (CreateInput, error) {
	in := CreateInput{
		Name:         req.Name,
		LocationKind: req.LocationKind,
		BedID:        req.BedID,
		PotID:        req.PotID,
		GeneticID:    req.GeneticID,
		Stage:        req.Stage,
		Status:       req.Status,
		Notes:        req.Notes,
	}

	if strings.TrimSpace(req.StartDate) != "" {
		t, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return CreateInput{}, errors.New("start_date must be RFC3339")
		}
		in.StartDate = t
	}
	if strings.TrimSpace(req.EndDate) != "" {
		t, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return CreateInput{}, errors.New("end_date must be RFC3339")
		}
		in.EndDate = &t
	}

	return in, nil
}

func requireActor(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func writeError(w http.ResponseWriter, err error) {
	if ve, ok := validation.AsError(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":      "validation_failed",
			"violations": ve.Violations,
		})
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "cultivo not found", http.StatusNotFound)
	case errors.Is(err, ErrPotOccupied):
		metrics.PotConflicts.Inc()
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":   "conflict",
			"message": "pot is already occupied by an active cultivo",
		})
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
