package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"medication-adherence/internal/domain/medications"
	"medication-adherence/internal/platform/apperrors"
)

type MedicationRepo struct {
	s *Store
}

var _ medications.Repository = (*MedicationRepo)(nil)

func (r *MedicationRepo) Create(ctx context.Context, m medications.Medication) error {
	defer r.s.write(ctx)()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.s.meds[m.ID]; exists {
		return errors.New("medication already exists")
	}
	r.s.meds[m.ID] = m
	return nil
}

func (r *MedicationRepo) Update(ctx context.Context, m medications.Medication) error {
	defer r.s.write(ctx)()

	if _, exists := r.s.meds[m.ID]; !exists {
		return apperrors.NotFound("medication not found")
	}
	r.s.meds[m.ID] = m
	return nil
}

func (r *MedicationRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	defer r.s.read(ctx)()

	m, ok := r.s.meds[id]
	if !ok {
		return medications.Medication{}, apperrors.NotFound("medication not found")
	}
	return m, nil
}

// GetForUpdate: dentro de WithinTx el lock del store ya serializa.
func (r *MedicationRepo) GetForUpdate(ctx context.Context, id string) (medications.Medication, error) {
	return r.GetByID(ctx, id)
}

func (r *MedicationRepo) ListByUser(ctx context.Context, userID string, f medications.ListFilter) ([]medications.Medication, error) {
	defer r.s.read(ctx)()

	out := make([]medications.Medication, 0)
	for _, m := range r.s.meds {
		if m.UserID != userID {
			continue
		}
		if f.Active != nil && m.IsActive != *f.Active {
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MedicationRepo) Delete(ctx context.Context, id string) error {
	defer r.s.write(ctx)()

	if _, ok := r.s.meds[id]; !ok {
		return apperrors.NotFound("medication not found")
	}
	delete(r.s.meds, id)
	for did, d := range r.s.doses {
		if d.MedicationID == id {
			delete(r.s.doses, did)
		}
	}
	return nil
}

func (r *MedicationRepo) DecrementStock(ctx context.Context, id string) (medications.Medication, error) {
	defer r.s.write(ctx)()

	m, ok := r.s.meds[id]
	if !ok {
		return medications.Medication{}, apperrors.NotFound("medication not found")
	}
	if m.StockQuantity > 0 {
		m.StockQuantity--
		r.s.meds[id] = m
	}
	return m, nil
}
