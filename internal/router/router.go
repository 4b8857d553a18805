package router

import (
	"context"
	"net/http"
	"time"

	_ "medication-adherence/docs"
	"medication-adherence/internal/adapters/notify/logsink"
	mem "medication-adherence/internal/adapters/storage/memory"
	"medication-adherence/internal/domain/adherence"
	"medication-adherence/internal/domain/doses"
	"medication-adherence/internal/domain/medications"
	"medication-adherence/internal/middleware"
	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/platform/metrics"
	"medication-adherence/internal/ports/auth"
	"medication-adherence/internal/ports/notify"
	"medication-adherence/internal/ports/txn"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Storage agrupa lo que los módulos necesitan de un backend.
// Los tres adapters (memory, postgres, sqlite) lo pueden llenar.
type Storage struct {
	Tx          txn.Runner
	Medications medications.Repository
	Doses       doses.Repository

	// Ping opcional para /health.
	Ping func(ctx context.Context) error
}

// MemoryStorage arma un Storage sobre un store in-memory nuevo.
func MemoryStorage() *Storage {
	s := mem.NewStore()
	return &Storage{Tx: s, Medications: s.Medications(), Doses: s.Doses()}
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si es nil, in-memory.
	Storage *Storage

	Notifier notify.Dispatcher // nil = logsink
	Logger   logger.Logger     // nil = Nop
	Metrics  *metrics.Metrics  // nil = sin /metrics

	HorizonDays int // <= 0 usa el default
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	st := opts.Storage
	if st == nil {
		st = MemoryStorage()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = logsink.New(log)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLog(log, opts.Metrics))

	r.Get("/health", healthHandler(st.Ping))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	generator := doses.NewGenerator(st.Doses, st.Tx, doses.GeneratorOptions{
		HorizonDays: opts.HorizonDays,
		Logger:      log,
		Metrics:     opts.Metrics,
	})
	medsSvc := medications.NewService(st.Medications, st.Tx, generator, log)
	dosesSvc := doses.NewService(st.Doses, st.Medications, st.Tx, doses.ServiceOptions{
		Notifier: notifier,
		Logger:   log,
		Metrics:  opts.Metrics,
	})
	adherenceSvc := adherence.NewService(st.Doses)

	// Rutas por módulo
	medications.RegisterRoutes(r, medsSvc)
	doses.RegisterRoutes(r, dosesSvc)
	adherence.RegisterRoutes(r, adherenceSvc)

	return r
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
