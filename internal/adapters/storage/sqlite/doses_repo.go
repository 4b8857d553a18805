package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medication-adherence/internal/domain/doses"
	"medication-adherence/internal/platform/apperrors"
	"medication-adherence/internal/platform/dates"

	"gorm.io/gorm"
)

const bulkBatchSize = 500

type DoseRepo struct {
	s *Store
}

var _ doses.Repository = (*DoseRepo)(nil)

func (r *DoseRepo) BulkCreate(ctx context.Context, items []doses.DoseSchedule) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]doseRow, 0, len(items))
	for _, d := range items {
		rows = append(rows, toDoseRow(d))
	}

	return r.s.WithinTx(ctx, func(ctx context.Context) error {
		db := r.s.conn(ctx)

		// sin FK enforcement en SQLite: la medicación se valida acá
		ids := medicationIDs(rows)
		var n int64
		if err := db.Model(&medicationRow{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
			return fmt.Errorf("check medication: %w", err)
		}
		if int(n) != len(ids) {
			return apperrors.NotFound("medication not found")
		}

		if err := db.CreateInBatches(rows, bulkBatchSize).Error; err != nil {
			return fmt.Errorf("insert doses: %w", err)
		}
		return nil
	})
}

func (r *DoseRepo) GetByID(ctx context.Context, id string) (doses.DoseSchedule, error) {
	var row doseRow
	err := r.s.conn(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return doses.DoseSchedule{}, apperrors.NotFound("dose not found")
	}
	if err != nil {
		return doses.DoseSchedule{}, fmt.Errorf("get dose: %w", err)
	}
	return row.domain()
}

func (r *DoseRepo) UpdateOutcome(ctx context.Context, d doses.DoseSchedule) error {
	res := r.s.conn(ctx).
		Model(&doseRow{}).
		Where("id = ? AND status = ?", d.ID, string(doses.StatusPending)).
		Updates(map[string]any{
			"status":     string(d.Status),
			"taken_at":   d.TakenAt,
			"notes":      d.Notes,
			"updated_at": d.UpdatedAt.UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("update dose outcome: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	current, err := r.GetByID(ctx, d.ID)
	if err != nil {
		return err
	}
	return apperrors.InvalidState("dose is already %s", current.Status)
}

func (r *DoseRepo) DeletePendingFrom(ctx context.Context, medicationID string, from time.Time) (int, error) {
	res := r.s.conn(ctx).
		Where("medication_id = ? AND status = ? AND scheduled_date >= ?",
			medicationID, string(doses.StatusPending), dates.Format(from)).
		Delete(&doseRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete pending doses: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

func (r *DoseRepo) ListByMedication(ctx context.Context, medicationID string) ([]doses.DoseSchedule, error) {
	var rows []doseRow
	err := r.s.conn(ctx).
		Where("medication_id = ?", medicationID).
		Order("scheduled_date, scheduled_time, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list doses: %w", err)
	}
	return doseRowsToDomain(rows)
}

func (r *DoseRepo) ListByUser(ctx context.Context, userID string, f doses.ListFilter) ([]doses.DoseSchedule, error) {
	q := r.s.conn(ctx).
		Select("dose_schedules.*").
		Joins("JOIN medications ON medications.id = dose_schedules.medication_id").
		Where("medications.user_id = ?", userID)
	if f.ActiveOnly {
		q = q.Where("medications.is_active = ?", true)
	}
	if f.From != nil {
		q = q.Where("dose_schedules.scheduled_date >= ?", dates.Format(*f.From))
	}
	if f.To != nil {
		q = q.Where("dose_schedules.scheduled_date <= ?", dates.Format(*f.To))
	}

	var rows []doseRow
	err := q.Order("dose_schedules.scheduled_date, dose_schedules.scheduled_time, dose_schedules.medication_id, dose_schedules.id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list user doses: %w", err)
	}
	return doseRowsToDomain(rows)
}

func medicationIDs(rows []doseRow) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 1)
	for _, r := range rows {
		if _, ok := seen[r.MedicationID]; ok {
			continue
		}
		seen[r.MedicationID] = struct{}{}
		out = append(out, r.MedicationID)
	}
	return out
}
