package medications

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"medication-adherence/internal/middleware"
	"medication-adherence/internal/platform/dates"
	"medication-adherence/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /medications. Las dosis de una medicación
// (/medications/{medicationID}/doses) las monta el módulo doses.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/medications", createMedicationHandler(svc))
	r.Get("/medications", listMedicationsHandler(svc))
	r.Get("/medications/low-stock", lowStockHandler(svc))
	r.Get("/medications/{medicationID}", getMedicationHandler(svc))
	r.Patch("/medications/{medicationID}", updateMedicationHandler(svc))
	r.Delete("/medications/{medicationID}", deleteMedicationHandler(svc))
}

type createMedicationRequest struct {
	DrugName        string  `json:"drug_name"`
	DosageValue     float64 `json:"dosage_value"`
	DosageUnit      string  `json:"dosage_unit"`
	Frequency       string  `json:"frequency"`
	StartDate       string  `json:"start_date"`         // YYYY-MM-DD
	EndDate         string  `json:"end_date,omitempty"` // YYYY-MM-DD opcional
	Instructions    string  `json:"instructions"`
	PrescribedBy    string  `json:"prescribed_by"`
	StockQuantity   *int    `json:"stock_quantity"`
	RefillThreshold *int    `json:"refill_threshold"`
	IsActive        *bool   `json:"is_active"`
	Color           *string `json:"color"`
}

type updateMedicationRequest struct {
	DrugName        *string  `json:"drug_name"`
	DosageValue     *float64 `json:"dosage_value"`
	DosageUnit      *string  `json:"dosage_unit"`
	Frequency       *string  `json:"frequency"`
	StartDate       *string  `json:"start_date"`
	EndDate         *string  `json:"end_date"` // null = limpiar; ver presencia en updateMedicationHandler
	Instructions    *string  `json:"instructions"`
	PrescribedBy    *string  `json:"prescribed_by"`
	StockQuantity   *int     `json:"stock_quantity"`
	RefillThreshold *int     `json:"refill_threshold"`
	IsActive        *bool    `json:"is_active"`
	Color           *string  `json:"color"`
}

type medicationResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	DrugName        string    `json:"drug_name"`
	DosageValue     float64   `json:"dosage_value"`
	DosageUnit      string    `json:"dosage_unit"`
	Frequency       string    `json:"frequency"`
	StartDate       string    `json:"start_date"`
	EndDate         *string   `json:"end_date"`
	Instructions    string    `json:"instructions"`
	PrescribedBy    string    `json:"prescribed_by"`
	StockQuantity   int       `json:"stock_quantity"`
	RefillThreshold int       `json:"refill_threshold"`
	IsActive        bool      `json:"is_active"`
	Color           string    `json:"color"`
	NeedsRefill     bool      `json:"needs_refill"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type createMedicationResponse struct {
	Medication     medicationResponse `json:"medication"`
	ScheduledDoses int                `json:"scheduled_doses"`
}

// createMedicationHandler godoc
// @Summary Crear medicación
// @Description Crea la medicación y genera su calendario de dosis en la misma transacción.
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createMedicationRequest true "Medicación; fechas YYYY-MM-DD"
// @Success 201 {object} createMedicationResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 401 {object} respond.ErrorBody
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "invalid json")
			return
		}

		var start time.Time
		if strings.TrimSpace(req.StartDate) != "" {
			t, err := dates.Parse(req.StartDate)
			if err != nil {
				respond.BadRequest(w, "start_date must be YYYY-MM-DD")
				return
			}
			start = t
		}

		var end *time.Time
		if strings.TrimSpace(req.EndDate) != "" {
			t, err := dates.Parse(req.EndDate)
			if err != nil {
				respond.BadRequest(w, "end_date must be YYYY-MM-DD")
				return
			}
			end = &t
		}

		created, err := svc.Create(r.Context(), userID, CreateInput{
			DrugName:        req.DrugName,
			DosageValue:     req.DosageValue,
			DosageUnit:      req.DosageUnit,
			Frequency:       req.Frequency,
			StartDate:       start,
			EndDate:         end,
			Instructions:    req.Instructions,
			PrescribedBy:    req.PrescribedBy,
			StockQuantity:   req.StockQuantity,
			RefillThreshold: req.RefillThreshold,
			IsActive:        req.IsActive,
			Color:           req.Color,
		})
		if err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusCreated, createMedicationResponse{
			Medication:     toMedicationResponse(created.Medication),
			ScheduledDoses: created.ScheduledDoses,
		})
	}
}

// listMedicationsHandler godoc
// @Summary Listar medicaciones
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param active query bool false "Filtrar por activas/inactivas"
// @Success 200 {array} medicationResponse
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		var f ListFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("active")); raw != "" {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				respond.BadRequest(w, "active must be true or false")
				return
			}
			f.Active = &b
		}

		items, err := svc.List(r.Context(), userID, f)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toMedicationResponses(items))
	}
}

// lowStockHandler godoc
// @Summary Medicaciones activas con stock <= umbral de reposición
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} medicationResponse
// @Router /medications/low-stock [get]
func lowStockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		items, err := svc.LowStock(r.Context(), userID)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toMedicationResponses(items))
	}
}

// getMedicationHandler godoc
// @Summary Obtener medicación
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID de la medicación"
// @Success 200 {object} medicationResponse
// @Failure 404 {object} respond.ErrorBody
// @Router /medications/{medicationID} [get]
func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		m, err := svc.Get(r.Context(), chi.URLParam(r, "medicationID"), userID)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// updateMedicationHandler godoc
// @Summary Actualizar medicación
// @Description PATCH parcial. Si cambia frequency, start_date o end_date se regeneran las dosis pending de hoy en adelante. end_date null la limpia.
// @Tags medications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID de la medicación"
// @Param payload body updateMedicationRequest true "Campos a cambiar"
// @Success 200 {object} medicationResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody
// @Router /medications/{medicationID} [patch]
func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		// Primero a map para detectar si end_date vino (null = limpiar).
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			respond.BadRequest(w, "invalid json")
			return
		}

		var req updateMedicationRequest
		{
			b, _ := json.Marshal(raw)
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				respond.BadRequest(w, "invalid json")
				return
			}
		}

		in := UpdateInput{
			DrugName:        req.DrugName,
			DosageValue:     req.DosageValue,
			DosageUnit:      req.DosageUnit,
			Frequency:       req.Frequency,
			Instructions:    req.Instructions,
			PrescribedBy:    req.PrescribedBy,
			StockQuantity:   req.StockQuantity,
			RefillThreshold: req.RefillThreshold,
			IsActive:        req.IsActive,
			Color:           req.Color,
		}

		if req.StartDate != nil {
			t, err := dates.Parse(*req.StartDate)
			if err != nil {
				respond.BadRequest(w, "start_date must be YYYY-MM-DD")
				return
			}
			in.StartDate = &t
		}

		if _, exists := raw["end_date"]; exists {
			in.EndDate.Present = true
			if req.EndDate != nil {
				t, err := dates.Parse(*req.EndDate)
				if err != nil {
					respond.BadRequest(w, "end_date must be YYYY-MM-DD or null")
					return
				}
				in.EndDate.Value = &t
			}
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "medicationID"), userID, in)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toMedicationResponse(updated))
	}
}

// deleteMedicationHandler godoc
// @Summary Borrar medicación y sus dosis
// @Tags medications
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicationID path string true "ID de la medicación"
// @Success 204
// @Failure 404 {object} respond.ErrorBody
// @Router /medications/{medicationID} [delete]
func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "medicationID"), userID); err != nil {
			respond.Error(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toMedicationResponses(items []Medication) []medicationResponse {
	out := make([]medicationResponse, 0, len(items))
	for _, m := range items {
		out = append(out, toMedicationResponse(m))
	}
	return out
}

func toMedicationResponse(m Medication) medicationResponse {
	var end *string
	if m.EndDate != nil {
		s := dates.Format(*m.EndDate)
		end = &s
	}
	return medicationResponse{
		ID:              m.ID,
		UserID:          m.UserID,
		DrugName:        m.DrugName,
		DosageValue:     m.DosageValue,
		DosageUnit:      string(m.DosageUnit),
		Frequency:       string(m.Frequency),
		StartDate:       dates.Format(m.StartDate),
		EndDate:         end,
		Instructions:    m.Instructions,
		PrescribedBy:    m.PrescribedBy,
		StockQuantity:   m.StockQuantity,
		RefillThreshold: m.RefillThreshold,
		IsActive:        m.IsActive,
		Color:           m.Color,
		NeedsRefill:     m.NeedsRefill(),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
