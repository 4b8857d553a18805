package medications

import (
	"context"
	"strings"
	"time"

	"medication-adherence/internal/domain/schedule"
	"medication-adherence/internal/platform/apperrors"
	"medication-adherence/internal/platform/dates"
	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/ports/txn"

	"github.com/google/uuid"
)

// Scheduler materializa las dosis de una medicación.
// Lo implementa doses.Generator; la interfaz evita el ciclo medications <-> doses.
type Scheduler interface {
	Schedule(ctx context.Context, m Medication) (int, error)
	RegenerateFutureSchedule(ctx context.Context, m Medication, changed ChangedFields) error
}

type Service struct {
	repo      Repository
	tx        txn.Runner
	scheduler Scheduler
	log       logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, tx txn.Runner, scheduler Scheduler, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:      repo,
		tx:        tx,
		scheduler: scheduler,
		log:       log.With(map[string]any{"module": "medications"}),
		now:       time.Now,
	}
}

type CreateInput struct {
	DrugName    string
	DosageValue float64
	DosageUnit  string
	Frequency   string
	StartDate   time.Time
	EndDate     *time.Time

	Instructions string
	PrescribedBy string

	// nil = default
	StockQuantity   *int
	RefillThreshold *int
	IsActive        *bool
	Color           *string
}

// Created es la medicación recién creada y cuántas dosis se generaron para ella.
type Created struct {
	Medication     Medication
	ScheduledDoses int
}

// Create valida, persiste y genera el calendario en un solo tx:
// la medicación y sus dosis aparecen juntas o no aparecen.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Created, error) {
	if strings.TrimSpace(userID) == "" {
		return Created{}, apperrors.Forbidden("user required")
	}

	now := s.now()
	m := Medication{
		ID:              uuid.NewString(),
		UserID:          userID,
		DrugName:        strings.TrimSpace(in.DrugName),
		DosageValue:     in.DosageValue,
		DosageUnit:      DosageUnit(strings.TrimSpace(in.DosageUnit)),
		Frequency:       schedule.Frequency(strings.TrimSpace(in.Frequency)),
		StartDate:       dates.Day(in.StartDate),
		EndDate:         dayPtr(in.EndDate),
		Instructions:    strings.TrimSpace(in.Instructions),
		PrescribedBy:    strings.TrimSpace(in.PrescribedBy),
		StockQuantity:   0,
		RefillThreshold: DefaultRefillThreshold,
		IsActive:        true,
		Color:           DefaultColor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.StockQuantity != nil {
		m.StockQuantity = *in.StockQuantity
	}
	if in.RefillThreshold != nil {
		m.RefillThreshold = *in.RefillThreshold
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	if in.Color != nil {
		m.Color = strings.TrimSpace(*in.Color)
	}

	if err := Validate(m); err != nil {
		return Created{}, err
	}

	var scheduled int
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, m); err != nil {
			return err
		}
		n, err := s.scheduler.Schedule(ctx, m)
		if err != nil {
			return err
		}
		scheduled = n
		return nil
	})
	if err != nil {
		return Created{}, err
	}

	s.log.Info("medication created", map[string]any{
		"medication_id": m.ID,
		"user_id":       userID,
		"frequency":     string(m.Frequency),
		"doses":         scheduled,
	})
	return Created{Medication: m, ScheduledDoses: scheduled}, nil
}

// PatchDate distingue "no enviado" de "enviado null" (limpiar).
type PatchDate struct {
	Present bool
	Value   *time.Time
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	DrugName    *string
	DosageValue *float64
	DosageUnit  *string
	Frequency   *string
	StartDate   *time.Time
	EndDate     PatchDate

	Instructions *string
	PrescribedBy *string

	StockQuantity   *int
	RefillThreshold *int
	IsActive        *bool
	Color           *string
}

// Update aplica el PATCH bajo lock de la fila. Si cambió frequency, start_date
// o end_date regenera las dosis futuras dentro del mismo tx.
func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) (Medication, error) {
	var (
		updated Medication
		changed ChangedFields
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := checkOwner(current, userID); err != nil {
			return err
		}

		next := apply(current, in)
		if err := Validate(next); err != nil {
			return err
		}
		next.UpdatedAt = s.now()

		if err := s.repo.Update(ctx, next); err != nil {
			return err
		}

		changed = DiffSchedule(current, next)
		if changed.Any() {
			if err := s.scheduler.RegenerateFutureSchedule(ctx, next, changed); err != nil {
				return err
			}
		}

		updated = next
		return nil
	})
	if err != nil {
		return Medication{}, err
	}

	s.log.Info("medication updated", map[string]any{
		"medication_id": id,
		"user_id":       userID,
		"regenerated":   changed.Any(),
	})
	return updated, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (Medication, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}
	if err := checkOwner(m, userID); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, userID string, f ListFilter) ([]Medication, error) {
	return s.repo.ListByUser(ctx, userID, f)
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := checkOwner(m, userID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("medication deleted", map[string]any{"medication_id": id, "user_id": userID})
	return nil
}

// LowStock devuelve las medicaciones activas que necesitan reposición.
func (s *Service) LowStock(ctx context.Context, userID string) ([]Medication, error) {
	active := true
	items, err := s.repo.ListByUser(ctx, userID, ListFilter{Active: &active})
	if err != nil {
		return nil, err
	}

	out := make([]Medication, 0)
	for _, m := range items {
		if m.NeedsRefill() {
			out = append(out, m)
		}
	}
	return out, nil
}

// checkOwner oculta la medicación ajena como not-found.
func checkOwner(m Medication, userID string) error {
	if m.UserID == userID {
		return nil
	}
	return apperrors.Conceal(apperrors.Forbidden("medication %s belongs to another user", m.ID), "medication not found")
}

func apply(m Medication, in UpdateInput) Medication {
	if in.DrugName != nil {
		m.DrugName = strings.TrimSpace(*in.DrugName)
	}
	if in.DosageValue != nil {
		m.DosageValue = *in.DosageValue
	}
	if in.DosageUnit != nil {
		m.DosageUnit = DosageUnit(strings.TrimSpace(*in.DosageUnit))
	}
	if in.Frequency != nil {
		m.Frequency = schedule.Frequency(strings.TrimSpace(*in.Frequency))
	}
	if in.StartDate != nil {
		m.StartDate = dates.Day(*in.StartDate)
	}
	if in.EndDate.Present {
		m.EndDate = dayPtr(in.EndDate.Value)
	}
	if in.Instructions != nil {
		m.Instructions = strings.TrimSpace(*in.Instructions)
	}
	if in.PrescribedBy != nil {
		m.PrescribedBy = strings.TrimSpace(*in.PrescribedBy)
	}
	if in.StockQuantity != nil {
		m.StockQuantity = *in.StockQuantity
	}
	if in.RefillThreshold != nil {
		m.RefillThreshold = *in.RefillThreshold
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	if in.Color != nil {
		m.Color = strings.TrimSpace(*in.Color)
	}
	return m
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dates.Day(*t)
	return &d
}
