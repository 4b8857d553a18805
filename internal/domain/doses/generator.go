package doses

import (
	"context"
	"fmt"
	"time"

	"medication-adherence/internal/domain/medications"
	"medication-adherence/internal/domain/schedule"
	"medication-adherence/internal/platform/apperrors"
	"medication-adherence/internal/platform/dates"
	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/platform/metrics"
	"medication-adherence/internal/ports/txn"

	"github.com/google/uuid"
)

// Generator materializa y regenera el calendario de dosis.
// Implementa medications.Scheduler.
type Generator struct {
	repo        Repository
	tx          txn.Runner
	horizonDays int
	log         logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

type GeneratorOptions struct {
	// HorizonDays para medicaciones sin fecha de fin (<= 0 usa el default).
	HorizonDays int
	Logger      logger.Logger
	Metrics     *metrics.Metrics
	Now         func() time.Time // nil = time.Now
}

func NewGenerator(repo Repository, tx txn.Runner, opts GeneratorOptions) *Generator {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Generator{
		repo:        repo,
		tx:          tx,
		horizonDays: opts.HorizonDays,
		log:         log.With(map[string]any{"module": "doses.generator"}),
		metrics:     opts.Metrics,
		now:         now,
	}
}

var _ medications.Scheduler = (*Generator)(nil)

func (g *Generator) today() time.Time {
	return dates.Day(g.now().UTC())
}

// build expande w (la ventana de m, quizá recortada) a dosis pending nuevas.
// Ventanas de más de schedule.MaxWindowDays son error de validación.
func (g *Generator) build(m medications.Medication, w schedule.Window) ([]DoseSchedule, error) {
	today := g.today()
	if span := schedule.Span(w, today, g.horizonDays); span > schedule.MaxWindowDays {
		field := "start_date"
		if w.End != nil {
			field = "end_date"
		}
		return nil, apperrors.Validation(apperrors.FieldError{
			Field:   field,
			Message: fmt.Sprintf("schedule window must not exceed %d days", schedule.MaxWindowDays),
		})
	}

	slots := schedule.Expand(w, today, g.horizonDays)
	now := g.now()

	out := make([]DoseSchedule, 0, len(slots))
	for _, s := range slots {
		out = append(out, DoseSchedule{
			ID:            uuid.NewString(),
			MedicationID:  m.ID,
			ScheduledDate: s.Date,
			ScheduledTime: s.Time,
			Status:        StatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return out, nil
}

// GenerateSchedule crea todas las dosis de la ventana de m en un solo bulk.
// No deduplica contra lo existente.
func (g *Generator) GenerateSchedule(ctx context.Context, m medications.Medication) ([]DoseSchedule, error) {
	items, err := g.build(m, m.Window())
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	err = g.tx.WithinTx(ctx, func(ctx context.Context) error {
		return g.repo.BulkCreate(ctx, items)
	})
	if err != nil {
		return nil, err
	}

	g.metrics.DosesGenerated(len(items))
	g.log.Debug("schedule generated", map[string]any{
		"medication_id": m.ID,
		"doses":         len(items),
	})
	return items, nil
}

// Schedule satisface medications.Scheduler.
func (g *Generator) Schedule(ctx context.Context, m medications.Medication) (int, error) {
	items, err := g.GenerateSchedule(ctx, m)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// RegenerateFutureSchedule reemplaza las dosis pending de hoy en adelante por
// las que corresponden a la ventana actual de m. Lo pasado (cualquier status)
// y lo terminal no se toca ni se duplica. Delete + insert van en el mismo tx.
func (g *Generator) RegenerateFutureSchedule(ctx context.Context, m medications.Medication, changed medications.ChangedFields) error {
	if !changed.Any() {
		return nil
	}

	// Solo de hoy en adelante.
	today := g.today()
	fresh, err := g.build(m, schedule.From(m.Window(), today))
	if err != nil {
		return err
	}

	var deleted int
	err = g.tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := g.repo.DeletePendingFrom(ctx, m.ID, today)
		if err != nil {
			return err
		}
		deleted = n

		// Lo terminal de hoy en adelante sobrevive; no se le pone un gemelo pending.
		kept, err := g.repo.ListByMedication(ctx, m.ID)
		if err != nil {
			return err
		}
		fresh = withoutTaken(fresh, kept)

		if len(fresh) == 0 {
			return nil
		}
		return g.repo.BulkCreate(ctx, fresh)
	})
	if err != nil {
		return err
	}

	g.metrics.Regenerated()
	g.metrics.DosesGenerated(len(fresh))
	g.log.Info("schedule regenerated", map[string]any{
		"medication_id": m.ID,
		"deleted":       deleted,
		"created":       len(fresh),
		"frequency":     changed.Frequency,
		"start_date":    changed.StartDate,
		"end_date":      changed.EndDate,
	})
	return nil
}

type slotKey struct {
	date string
	time schedule.TimeOfDay
}

// withoutTaken descarta de fresh los slots ya ocupados por alguna dosis de kept.
func withoutTaken(fresh, kept []DoseSchedule) []DoseSchedule {
	if len(kept) == 0 {
		return fresh
	}
	used := make(map[slotKey]bool, len(kept))
	for _, d := range kept {
		used[slotKey{dates.Format(d.ScheduledDate), d.ScheduledTime}] = true
	}
	out := fresh[:0]
	for _, d := range fresh {
		if !used[slotKey{dates.Format(d.ScheduledDate), d.ScheduledTime}] {
			out = append(out, d)
		}
	}
	return out
}
