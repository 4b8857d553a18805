package doses

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"medication-adherence/internal/middleware"
	"medication-adherence/internal/platform/dates"
	"medication-adherence/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/medications/{medicationID}/doses", listByMedicationHandler(svc))

	r.Route("/doses", func(dr chi.Router) {
		dr.Get("/", listInRangeHandler(svc))
		dr.Get("/today", listTodayHandler(svc))

		dr.Post("/{doseID}/taken", markHandler(svc.MarkTaken))
		dr.Post("/{doseID}/missed", markHandler(svc.MarkMissed))
		dr.Post("/{doseID}/skipped", markHandler(svc.MarkSkipped))
	})
}

type markRequest struct {
	Notes *string `json:"notes"`
}

type doseResponse struct {
	ID            string     `json:"id"`
	MedicationID  string     `json:"medication_id"`
	ScheduledDate string     `json:"scheduled_date"`
	ScheduledTime string     `json:"scheduled_time"`
	Status        Status     `json:"status"`
	TakenAt       *time.Time `json:"taken_at,omitempty"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type markFunc func(ctx context.Context, doseID, userID string, notes *string) (DoseSchedule, error)

// markHandler godoc
// @Summary Registrar el resultado de una dosis
// @Description Transición pending -> taken|missed|skipped. taken descuenta una unidad de stock (nunca por debajo de 0).
// @Tags doses
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param doseID path string true "ID de la dosis"
// @Param payload body markRequest false "Notas opcionales"
// @Success 200 {object} doseResponse
// @Failure 404 {object} respond.ErrorBody
// @Failure 409 {object} respond.ErrorBody "la dosis ya no está pending"
// @Router /doses/{doseID}/taken [post]
// @Router /doses/{doseID}/missed [post]
// @Router /doses/{doseID}/skipped [post]
func markHandler(mark markFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		// body opcional
		var req markRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respond.BadRequest(w, "invalid json")
			return
		}

		d, err := mark(r.Context(), chi.URLParam(r, "doseID"), userID, req.Notes)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDoseResponse(d))
	}
}

// listInRangeHandler godoc
// @Summary Dosis en un rango de fechas
// @Tags doses
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param start query string true "YYYY-MM-DD"
// @Param end query string true "YYYY-MM-DD"
// @Success 200 {array} doseResponse
// @Router /doses [get]
func listInRangeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		start, end, ok := DateRange(w, r)
		if !ok {
			return
		}

		items, err := svc.ListInRange(r.Context(), userID, start, end)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDoseResponses(items))
	}
}

// listTodayHandler godoc
// @Summary Dosis de hoy (medicaciones activas)
// @Tags doses
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} doseResponse
// @Router /doses/today [get]
func listTodayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		items, err := svc.ListToday(r.Context(), userID)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDoseResponses(items))
	}
}

func listByMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		items, err := svc.ListByMedication(r.Context(), chi.URLParam(r, "medicationID"), userID)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toDoseResponses(items))
	}
}

// DateRange lee ?start=YYYY-MM-DD&end=YYYY-MM-DD (ambos requeridos).
// Si falla ya respondió 400.
func DateRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	q := r.URL.Query()

	start, err := dates.Parse(q.Get("start"))
	if err != nil {
		respond.BadRequest(w, "start must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := dates.Parse(q.Get("end"))
	if err != nil {
		respond.BadRequest(w, "end must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func toDoseResponses(items []DoseSchedule) []doseResponse {
	out := make([]doseResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toDoseResponse(d))
	}
	return out
}

func toDoseResponse(d DoseSchedule) doseResponse {
	return doseResponse{
		ID:            d.ID,
		MedicationID:  d.MedicationID,
		ScheduledDate: dates.Format(d.ScheduledDate),
		ScheduledTime: string(d.ScheduledTime),
		Status:        d.Status,
		TakenAt:       d.TakenAt,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
