package registros

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cultivo-console/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// ErrCultivoNotFound lo devuelve el CultivoChecker cuando el cultivo dueño
// del historial no existe.
var ErrCultivoNotFound = errors.New("cultivo not found")

// CultivoChecker verifica que el cultivo exista (borrados incluidos: su
// historial sigue siendo consultable). Lo cablea el router con el módulo de
// cultivos; este paquete no depende de él.
type CultivoChecker func(ctx context.Context, cultivoID string) error

// RegisterRoutes cuelga el historial bajo /cultivos/{cultivoID}/registros.
func RegisterRoutes(r chi.Router, svc *Service, exists CultivoChecker) {
	r.Route("/cultivos/{cultivoID}/registros", func(rr chi.Router) {
		rr.Get("/", listRegistrosHandler(svc, exists))
		rr.Post("/", appendRegistroHandler(svc, exists))
	})
}

// registroPayload es el cuerpo de un POST. detail es JSON crudo cuya forma
// depende de kind; se decodifica después de validar el tipo.
type registroPayload struct {
	Kind      Kind            `json:"kind" enums:"STAGE,LIGHT_ENVIRONMENT,WATER_NUTRITION,HEALTH,GENERAL"`
	Timestamp string          `json:"timestamp"` // RFC3339
	Detail    json.RawMessage `json:"detail"`
	Notes     string          `json:"notes"`
}

type registroResponse struct {
	ID        string    `json:"id"`
	CultivoID string    `json:"cultivo_id"`
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Detail    Detail    `json:"detail,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

func toRegistroResponse(e Registro) registroResponse {
	return registroResponse{
		ID:        e.ID,
		CultivoID: e.CultivoID,
		Kind:      e.Kind,
		Timestamp: e.Timestamp,
		Detail:    e.Detail,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		CreatedBy: e.CreatedBy,
	}
}

// appendRegistroHandler godoc
// @Summary Agregar registro al historial
// @Description Agrega una entrada tipada al historial del cultivo. El historial es append-only: no hay edición ni borrado de entradas.
// @Tags registros
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param cultivoID path string true "ID del cultivo"
// @Param payload body registroPayload true "Entrada nueva; la forma de detail depende de kind"
// @Success 201 {object} registroResponse
// @Failure 400 {string} string "entrada inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "cultivo not found"
// @Router /cultivos/{cultivoID}/registros [post]
func appendRegistroHandler(svc *Service, exists CultivoChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		cultivoID := chi.URLParam(r, "cultivoID")
		if err := exists(r.Context(), cultivoID); err != nil {
			if errors.Is(err, ErrCultivoNotFound) {
				http.Error(w, "cultivo not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		var req registroPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := toAppendInput(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		e, err := svc.Append(r.Context(), cultivoID, claims.UserID, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toRegistroResponse(e))
	}
}

// listRegistrosHandler godoc
// @Summary Historial de un cultivo
// @Description Entradas del historial, más recientes primero. Filtros por tipo y rango de fechas.
// @Tags registros
// @Produce json
// @Param cultivoID path string true "ID del cultivo"
// @Param kind query string false "Tipos separados por coma, ej STAGE,HEALTH"
// @Param from query string false "RFC3339, inclusive"
// @Param to query string false "RFC3339, inclusive"
// @Param limit query int false "Máximo de entradas (default 100)"
// @Success 200 {array} registroResponse
// @Failure 404 {string} string "cultivo not found"
// @Router /cultivos/{cultivoID}/registros [get]
func listRegistrosHandler(svc *Service, exists CultivoChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cultivoID := chi.URLParam(r, "cultivoID")
		if err := exists(r.Context(), cultivoID); err != nil {
			if errors.Is(err, ErrCultivoNotFound) {
				http.Error(w, "cultivo not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByCultivo(r.Context(), cultivoID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]registroResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toRegistroResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toAppendInput(req registroPayload) (AppendInput, error) {
	in := AppendInput{
		Kind:  req.Kind,
		Notes: req.Notes,
	}

	if strings.TrimSpace(req.Timestamp) != "" {
		t, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return AppendInput{}, errors.New("timestamp must be RFC3339")
		}
		in.Timestamp = t
	}

	if len(req.Detail) > 0 && string(req.Detail) != "null" {
		if !ValidKind(req.Kind) {
			return AppendInput{}, errors.New("unknown kind")
		}
		d, err := UnmarshalDetail(req.Kind, req.Detail)
		if err != nil {
			return AppendInput{}, errors.New("detail does not match kind")
		}
		in.Detail = d
	}

	return in, nil
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	filter := ListFilter{}

	if raw := strings.TrimSpace(q.Get("kind")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			k := Kind(strings.TrimSpace(part))
			if !ValidKind(k) {
				return ListFilter{}, errors.New("unknown kind in filter")
			}
			filter.Kinds = append(filter.Kinds, k)
		}
	}

	if raw := strings.TrimSpace(q.Get("from")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if raw := strings.TrimSpace(q.Get("to")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return ListFilter{}, errors.New("limit must be a non-negative integer")
		}
		filter.Limit = n
	}

	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
