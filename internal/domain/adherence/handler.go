package adherence

import (
	"net/http"

	"medication-adherence/internal/domain/doses"
	"medication-adherence/internal/middleware"
	"medication-adherence/internal/platform/dates"
	"medication-adherence/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/adherence/stats", statsHandler(svc))
	r.Get("/adherence/daily", dailyHandler(svc))
}

type dayResponse struct {
	Date          string  `json:"date"`
	TotalDoses    int     `json:"total_doses"`
	TakenDoses    int     `json:"taken_doses"`
	MissedDoses   int     `json:"missed_doses"`
	AdherenceRate float64 `json:"adherence_rate"`
}

// statsHandler godoc
// @Summary Estadísticas de adherencia
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param start query string true "YYYY-MM-DD"
// @Param end query string true "YYYY-MM-DD"
// @Success 200 {object} Stats
// @Router /adherence/stats [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		start, end, ok := doses.DateRange(w, r)
		if !ok {
			return
		}

		st, err := svc.Stats(r.Context(), userID, start, end)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, st)
	}
}

// dailyHandler godoc
// @Summary Adherencia por día, sin huecos
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param start query string true "YYYY-MM-DD"
// @Param end query string true "YYYY-MM-DD"
// @Success 200 {array} dayResponse
// @Router /adherence/daily [get]
func dailyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		start, end, ok := doses.DateRange(w, r)
		if !ok {
			return
		}

		days, err := svc.Daily(r.Context(), userID, start, end)
		if err != nil {
			respond.Error(w, err)
			return
		}

		out := make([]dayResponse, 0, len(days))
		for _, d := range days {
			out = append(out, dayResponse{
				Date:          dates.Format(d.Date),
				TotalDoses:    d.TotalDoses,
				TakenDoses:    d.TakenDoses,
				MissedDoses:   d.MissedDoses,
				AdherenceRate: d.AdherenceRate,
			})
		}
		respond.JSON(w, http.StatusOK, out)
	}
}
