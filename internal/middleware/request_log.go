package middleware

import (
	"net/http"
	"time"

	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog registra cada request (log + métricas). m puede ser nil.
func RequestLog(log logger.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			// patrón de ruta, no el path: evita cardinalidad por ids
			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			m.ObserveHTTP(r.Method, route, status, elapsed)

			fields := map[string]any{
				"method":      r.Method,
				"route":       route,
				"path":        r.URL.Path,
				"status":      status,
				"duration_ms": elapsed.Milliseconds(),
				"request_id":  chimw.GetReqID(r.Context()),
			}
			if uid, ok := UserID(r.Context()); ok {
				fields["user_id"] = uid
			}

			switch {
			case status >= 500:
				log.Error("http request", fields)
			case status >= 400:
				log.Warn("http request", fields)
			default:
				log.Info("http request", fields)
			}
		})
	}
}
