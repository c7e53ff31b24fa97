package locations

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
	r.Route("/beds", func(br chi.Router) {
		br.Get("/", listBedsHandler(svc))
		br.Post("/", createBedHandler(svc))
		br.Get("/{bedID}", getBedHandler(svc))
	})
	r.Route("/pots", func(pr chi.Router) {
		pr.Get("/", listPotsHandler(svc))
		pr.Post("/", createPotHandler(svc))
		pr.Get("/{potID}", getPotHandler(svc))
	})
}

type bedPayload struct {
	Name          string   `json:"name"`
	LocationLabel string   `json:"location_label"`
	Width         *float64 `json:"width"`
	Length        *float64 `json:"length"`
	Height        *float64 `json:"height"`
	Capacity      *int     `json:"capacity"`
	Notes         string   `json:"notes"`
}

type bedResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	LocationLabel string    `json:"location_label,omitempty"`
	Width         *float64  `json:"width,omitempty"`
	Length        *float64  `json:"length,omitempty"`
	Height        *float64  `json:"height,omitempty"`
	Capacity      *int      `json:"capacity,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toBedResponse(b Bed) bedResponse {
	return bedResponse{
		ID:            b.ID,
		Name:          b.Name,
		LocationLabel: b.LocationLabel,
		Width:         b.Width,
		Length:        b.Length,
		Height:        b.Height,
		Capacity:      b.Capacity,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type potPayload struct {
	Name          string   `json:"name"`
	BedID         string   `json:"bed_id"`
	Volume        *float64 `json:"volume"`
	LocationLabel string   `json:"location_label"`
	Notes         string   `json:"notes"`
}

type potResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	BedID         string    `json:"bed_id"`
	Volume        *float64  `json:"volume,omitempty"`
	LocationLabel string    `json:"location_label,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toPotResponse(p Pot) potResponse {
	return potResponse{
		ID:            p.ID,
		Name:          p.Name,
		BedID:         p.BedID,
		Volume:        p.Volume,
		LocationLabel: p.LocationLabel,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// createBedHandler godoc
// @Summary Crear cama
// @Tags ubicaciones
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param payload body bedPayload true "Datos de la cama; dimensiones opcionales"
// @Success 201 {object} bedResponse
// @Failure 400 {object} map[string]any
// @Failure 401 {string} string "unauthorized"
// @Router /beds [post]
func createBedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireActor(w, r) {
			return
		}

		var req bedPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.CreateBed(r.Context(), CreateBedInput{
			Name:          req.Name,
			LocationLabel: req.LocationLabel,
			Width:         req.Width,
			Length:        req.Length,
			Height:        req.Height,
			Capacity:      req.Capacity,
			Notes:         req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toBedResponse(b))
	}
}

// listBedsHandler godoc
// @Summary Listar camas
// @Tags ubicaciones
// @Produce json
// @Success 200 {array} bedResponse
// @Router /beds [get]
func listBedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListBeds(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]bedResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBedResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getBedHandler godoc
// @Summary Obtener cama
// @Tags ubicaciones
// @Produce json
// @Param bedID path string true "ID de la cama"
// @Success 200 {object} bedResponse
// @Failure 404 {string} string "location not found"
// @Router /beds/{bedID} [get]
func getBedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.GetBed(r.Context(), chi.URLParam(r, "bedID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBedResponse(b))
	}
}

// createPotHandler godoc
// @Summary Crear maceta
// @Description Crea una maceta dentro de una cama existente.
// @Tags ubicaciones
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param payload body potPayload true "Datos de la maceta"
// @Success 201 {object} potResponse
// @Failure 400 {object} map[string]any
// @Failure 401 {string} string "unauthorized"
// @Router /pots [post]
func createPotHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireActor(w, r) {
			return
		}

		var req potPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.CreatePot(r.Context(), CreatePotInput{
			Name:          req.Name,
			BedID:         req.BedID,
			Volume:        req.Volume,
			LocationLabel: req.LocationLabel,
			Notes:         req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPotResponse(p))
	}
}

// listPotsHandler godoc
// @Summary Listar macetas
// @Tags ubicaciones
// @Produce json
// @Success 200 {array} potResponse
// @Router /pots [get]
func listPotsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListPots(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]potResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPotResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPotHandler godoc
// @Summary Obtener maceta
// @Tags ubicaciones
// @Produce json
// @Param potID path string true "ID de la maceta"
// @Success 200 {object} potResponse
// @Failure 404 {string} string "location not found"
// @Router /pots/{potID} [get]
func getPotHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetPot(r.Context(), chi.URLParam(r, "potID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPotResponse(p))
	}
}

func requireActor(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	if ve, ok := validation.AsError(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":      "validation_failed",
			"violations": ve.Violations,
		})
		return
	}
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "location not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
