package genetics

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"cultivo-console/internal/domain/validation"
	"cultivo-console/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/genetics", func(gr chi.Router) {
		gr.Get("/", listGeneticsHandler(svc))
		gr.Post("/", createGeneticHandler(svc))
		gr.Get("/{geneticID}", getGeneticHandler(svc))
	})
}

type geneticPayload struct {
	Name string `json:"name"`
}

type geneticResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toGeneticResponse(g Genetic) geneticResponse {
	return geneticResponse{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt}
}

// createGeneticHandler godoc
// @Summary Crear genética
// @Tags genetics
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param payload body geneticPayload true "Nombre de la genética"
// @Success 201 {object} geneticResponse
// @Failure 400 {object} map[string]any
// @Failure 401 {string} string "unauthorized"
// @Router /genetics [post]
func createGeneticHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req geneticPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		g, err := svc.Create(r.Context(), req.Name)
		if err != nil {
			if ve, ok := validation.AsError(err); ok {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"error":      "validation_failed",
					"violations": ve.Violations,
				})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toGeneticResponse(g))
	}
}

// listGeneticsHandler godoc
// @Summary Listar genéticas
// @Tags genetics
// @Produce json
// @Success 200 {array} geneticResponse
// @Router /genetics [get]
func listGeneticsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]geneticResponse, 0, len(items))
		for _, g := range items {
			out = append(out, toGeneticResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getGeneticHandler godoc
// @Summary Obtener genética
// @Tags genetics
// @Produce json
// @Param geneticID path string true "ID de la genética"
// @Success 200 {object} geneticResponse
// @Failure 404 {string} string "genetic not found"
// @Router /genetics/{geneticID} [get]
func getGeneticHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := svc.GetByID(r.Context(), chi.URLParam(r, "geneticID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "genetic not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toGeneticResponse(g))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
