package doses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-adherence/internal/domain/medications"
	"medication-adherence/internal/platform/apperrors"
	"medication-adherence/internal/platform/dates"
	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/platform/metrics"
	"medication-adherence/internal/ports/notify"
	"medication-adherence/internal/ports/txn"
)

// MedicationStore es lo que doses necesita de la persistencia de medicaciones.
type MedicationStore interface {
	GetByID(ctx context.Context, id string) (medications.Medication, error)
	DecrementStock(ctx context.Context, id string) (medications.Medication, error)
}

type Service struct {
	repo     Repository
	meds     MedicationStore
	tx       txn.Runner
	notifier notify.Dispatcher
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type ServiceOptions struct {
	Notifier notify.Dispatcher // nil = descartar eventos
	Logger   logger.Logger
	Metrics  *metrics.Metrics
	Now      func() time.Time // nil = time.Now
}

func NewService(repo Repository, meds MedicationStore, tx txn.Runner, opts ServiceOptions) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	n := opts.Notifier
	if n == nil {
		n = notify.Discard{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:     repo,
		meds:     meds,
		tx:       tx,
		notifier: n,
		log:      log.With(map[string]any{"module": "doses"}),
		metrics:  opts.Metrics,
		now:      now,
	}
}

func (s *Service) today() time.Time {
	return dates.Day(s.now().UTC())
}

func (s *Service) MarkTaken(ctx context.Context, doseID, userID string, notes *string) (DoseSchedule, error) {
	return s.mark(ctx, doseID, userID, StatusTaken, notes)
}

func (s *Service) MarkMissed(ctx context.Context, doseID, userID string, notes *string) (DoseSchedule, error) {
	return s.mark(ctx, doseID, userID, StatusMissed, notes)
}

func (s *Service) MarkSkipped(ctx context.Context, doseID, userID string, notes *string) (DoseSchedule, error) {
	return s.mark(ctx, doseID, userID, StatusSkipped, notes)
}

// mark aplica pending -> to. Status y stock van en el mismo tx; el CAS de
// UpdateOutcome hace que de dos intentos concurrentes solo gane el primero.
func (s *Service) mark(ctx context.Context, doseID, userID string, to Status, notes *string) (DoseSchedule, error) {
	if !to.Terminal() {
		return DoseSchedule{}, fmt.Errorf("doses: %q is not a terminal status", to)
	}

	var (
		dose DoseSchedule
		med  medications.Medication
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		d, m, err := s.owned(ctx, doseID, userID)
		if err != nil {
			return err
		}
		if d.Status != StatusPending {
			return apperrors.InvalidState("dose is already %s", d.Status)
		}

		now := s.now()
		d.Status = to
		d.UpdatedAt = now
		if to == StatusTaken {
			takenAt := now
			d.TakenAt = &takenAt
		}
		if notes != nil {
			d.Notes = strings.TrimSpace(*notes)
		}

		if err := s.repo.UpdateOutcome(ctx, d); err != nil {
			return err
		}

		if to == StatusTaken {
			m, err = s.meds.DecrementStock(ctx, m.ID)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		dose, med = d, m
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			s.metrics.MarkConflict()
		}
		return DoseSchedule{}, err
	}

	s.metrics.DoseMarked(string(to))
	s.log.Info("dose marked", map[string]any{
		"dose_id":       dose.ID,
		"medication_id": med.ID,
		"user_id":       userID,
		"status":        string(to),
		"stock":         med.StockQuantity,
	})

	s.publish(ctx, notify.Event{
		Type:         notify.EventType("dose." + string(to)),
		UserID:       userID,
		MedicationID: med.ID,
		DoseID:       dose.ID,
		OccurredAt:   dose.UpdatedAt,
		Data: map[string]any{
			"drug_name":      med.DrugName,
			"scheduled_date": dates.Format(dose.ScheduledDate),
			"scheduled_time": string(dose.ScheduledTime),
		},
	})

	if to == StatusTaken && med.NeedsRefill() {
		s.metrics.LowStock()
		s.publish(ctx, LowStockEvent(med, dose.UpdatedAt))
	}

	return dose, nil
}

// LowStockEvent arma el aviso de reposición de m.
func LowStockEvent(m medications.Medication, at time.Time) notify.Event {
	return notify.Event{
		Type:         notify.EventMedicationLowStock,
		UserID:       m.UserID,
		MedicationID: m.ID,
		Message: fmt.Sprintf("Low stock alert: Only %d doses remaining for %s. Consider refilling soon.",
			m.StockQuantity, m.DrugName),
		OccurredAt: at,
		Data: map[string]any{
			"stock_quantity":   m.StockQuantity,
			"refill_threshold": m.RefillThreshold,
		},
	}
}

// publish es best effort: el outcome ya está commiteado.
func (s *Service) publish(ctx context.Context, e notify.Event) {
	if err := s.notifier.Dispatch(ctx, e); err != nil {
		s.metrics.NotifyFailed()
		s.log.Warn("notification dispatch failed", map[string]any{
			"event": string(e.Type),
			"error": err,
		})
	}
}

// owned carga la dosis y su medicación verificando que sea de userID.
// Una dosis ajena se reporta igual que una inexistente.
func (s *Service) owned(ctx context.Context, doseID, userID string) (DoseSchedule, medications.Medication, error) {
	d, err := s.repo.GetByID(ctx, doseID)
	if err != nil {
		return DoseSchedule{}, medications.Medication{}, err
	}
	m, err := s.meds.GetByID(ctx, d.MedicationID)
	if err != nil {
		return DoseSchedule{}, medications.Medication{}, err
	}
	if m.UserID != userID {
		return DoseSchedule{}, medications.Medication{}, apperrors.Conceal(
			apperrors.Forbidden("dose %s belongs to another user", doseID),
			"dose not found",
		)
	}
	return d, m, nil
}

// MaxRangeDays acota los rangos de consulta (ambos extremos inclusive).
const MaxRangeDays = 366

// CheckRange normaliza [start, end] a fechas de calendario y rechaza rangos
// invertidos o de más de MaxRangeDays días.
func CheckRange(start, end time.Time) (time.Time, time.Time, error) {
	start, end = dates.Day(start), dates.Day(end)
	if end.Before(start) {
		return start, end, apperrors.Validation(apperrors.FieldError{Field: "end", Message: "must be on or after start"})
	}
	if dates.DaysBetween(start, end)+1 > MaxRangeDays {
		return start, end, apperrors.Validation(apperrors.FieldError{
			Field:   "end",
			Message: fmt.Sprintf("range must not exceed %d days", MaxRangeDays),
		})
	}
	return start, end, nil
}

// ListInRange devuelve las dosis del usuario en [start, end], todas sus medicaciones.
func (s *Service) ListInRange(ctx context.Context, userID string, start, end time.Time) ([]DoseSchedule, error) {
	start, end, err := CheckRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID, ListFilter{From: &start, To: &end})
}

// ListToday devuelve las dosis de hoy de las medicaciones activas.
func (s *Service) ListToday(ctx context.Context, userID string) ([]DoseSchedule, error) {
	today := s.today()
	return s.repo.ListByUser(ctx, userID, ListFilter{From: &today, To: &today, ActiveOnly: true})
}

func (s *Service) ListByMedication(ctx context.Context, medicationID, userID string) ([]DoseSchedule, error) {
	m, err := s.meds.GetByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, apperrors.Conceal(
			apperrors.Forbidden("medication %s belongs to another user", medicationID),
			"medication not found",
		)
	}
	return s.repo.ListByMedication(ctx, medicationID)
}
