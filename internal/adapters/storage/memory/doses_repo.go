package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"medication-adherence/internal/domain/doses"
	"medication-adherence/internal/platform/apperrors"
)

type DoseRepo struct {
	s *Store
}

var _ doses.Repository = (*DoseRepo)(nil)

func (r *DoseRepo) BulkCreate(ctx context.Context, items []doses.DoseSchedule) error {
	defer r.s.write(ctx)()

	// validar todo antes de escribir: todo o nada
	seen := make(map[string]struct{}, len(items))
	for _, d := range items {
		if d.ID == "" {
			return errors.New("dose id required")
		}
		if _, ok := r.s.meds[d.MedicationID]; !ok {
			return apperrors.NotFound("medication not found")
		}
		if _, ok := r.s.doses[d.ID]; ok {
			return errors.New("dose already exists")
		}
		if _, ok := seen[d.ID]; ok {
			return errors.New("duplicate dose id in batch")
		}
		seen[d.ID] = struct{}{}
	}

	for _, d := range items {
		r.s.doses[d.ID] = d
	}
	return nil
}

func (r *DoseRepo) GetByID(ctx context.Context, id string) (doses.DoseSchedule, error) {
	defer r.s.read(ctx)()

	d, ok := r.s.doses[id]
	if !ok {
		return doses.DoseSchedule{}, apperrors.NotFound("dose not found")
	}
	return d, nil
}

func (r *DoseRepo) UpdateOutcome(ctx context.Context, d doses.DoseSchedule) error {
	defer r.s.write(ctx)()

	current, ok := r.s.doses[d.ID]
	if !ok {
		return apperrors.NotFound("dose not found")
	}
	if current.Status != doses.StatusPending {
		return apperrors.InvalidState("dose is already %s", current.Status)
	}

	current.Status = d.Status
	current.TakenAt = d.TakenAt
	current.Notes = d.Notes
	current.UpdatedAt = d.UpdatedAt
	r.s.doses[d.ID] = current
	return nil
}

func (r *DoseRepo) DeletePendingFrom(ctx context.Context, medicationID string, from time.Time) (int, error) {
	defer r.s.write(ctx)()

	n := 0
	for id, d := range r.s.doses {
		if d.MedicationID != medicationID || d.Status != doses.StatusPending {
			continue
		}
		if d.ScheduledDate.Before(from) {
			continue
		}
		delete(r.s.doses, id)
		n++
	}
	return n, nil
}

func (r *DoseRepo) ListByMedication(ctx context.Context, medicationID string) ([]doses.DoseSchedule, error) {
	defer r.s.read(ctx)()

	out := make([]doses.DoseSchedule, 0)
	for _, d := range r.s.doses {
		if d.MedicationID == medicationID {
			out = append(out, d)
		}
	}
	sortDoses(out)
	return out, nil
}

func (r *DoseRepo) ListByUser(ctx context.Context, userID string, f doses.ListFilter) ([]doses.DoseSchedule, error) {
	defer r.s.read(ctx)()

	out := make([]doses.DoseSchedule, 0)
	for _, d := range r.s.doses {
		m, ok := r.s.meds[d.MedicationID]
		if !ok || m.UserID != userID {
			continue
		}
		if f.ActiveOnly && !m.IsActive {
			continue
		}
		if f.From != nil && d.ScheduledDate.Before(*f.From) {
			continue
		}
		if f.To != nil && d.ScheduledDate.After(*f.To) {
			continue
		}
		out = append(out, d)
	}
	sortDoses(out)
	return out, nil
}

func sortDoses(items []doses.DoseSchedule) {
	sort.Slice(items, func(i, j int) bool {
		if doses.Less(items[i], items[j]) {
			return true
		}
		if doses.Less(items[j], items[i]) {
			return false
		}
		return items[i].MedicationID+items[i].ID < items[j].MedicationID+items[j].ID
	})
}
