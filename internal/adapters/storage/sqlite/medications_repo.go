package sqlite

import (
	"context"
	"errors"
	"fmt"

	"medication-adherence/internal/domain/medications"
	"medication-adherence/internal/platform/apperrors"

	"gorm.io/gorm"
)

type MedicationRepo struct {
	s *Store
}

var _ medications.Repository = (*MedicationRepo)(nil)

func (r *MedicationRepo) Create(ctx context.Context, m medications.Medication) error {
	row := toMedicationRow(m)
	if err := r.s.conn(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert medication: %w", err)
	}
	return nil
}

func (r *MedicationRepo) Update(ctx context.Context, m medications.Medication) error {
	row := toMedicationRow(m)
	res := r.s.conn(ctx).
		Model(&medicationRow{}).
		Where("id = ?", m.ID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("update medication: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("medication not found")
	}
	return nil
}

func (r *MedicationRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	var row medicationRow
	err := r.s.conn(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return medications.Medication{}, apperrors.NotFound("medication not found")
	}
	if err != nil {
		return medications.Medication{}, fmt.Errorf("get medication: %w", err)
	}
	return row.domain()
}

// GetForUpdate: SQLite no tiene FOR UPDATE; con una sola conexión el tx ya es exclusivo.
func (r *MedicationRepo) GetForUpdate(ctx context.Context, id string) (medications.Medication, error) {
	return r.GetByID(ctx, id)
}

func (r *MedicationRepo) ListByUser(ctx context.Context, userID string, f medications.ListFilter) ([]medications.Medication, error) {
	q := r.s.conn(ctx).Where("user_id = ?", userID)
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}

	var rows []medicationRow
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}

	out := make([]medications.Medication, 0, len(rows))
	for _, row := range rows {
		m, err := row.domain()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MedicationRepo) Delete(ctx context.Context, id string) error {
	return r.s.WithinTx(ctx, func(ctx context.Context) error {
		db := r.s.conn(ctx)
		if err := db.Where("medication_id = ?", id).Delete(&doseRow{}).Error; err != nil {
			return fmt.Errorf("delete doses: %w", err)
		}
		res := db.Where("id = ?", id).Delete(&medicationRow{})
		if res.Error != nil {
			return fmt.Errorf("delete medication: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("medication not found")
		}
		return nil
	})
}

func (r *MedicationRepo) DecrementStock(ctx context.Context, id string) (medications.Medication, error) {
	err := r.s.conn(ctx).
		Model(&medicationRow{}).
		Where("id = ? AND stock_quantity > 0", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - 1")).
		Error
	if err != nil {
		return medications.Medication{}, fmt.Errorf("decrement stock: %w", err)
	}
	return r.GetByID(ctx, id)
}
