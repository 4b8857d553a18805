package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-adherence/internal/domain/medications"
	"medication-adherence/internal/domain/schedule"
	"medication-adherence/internal/platform/apperrors"
	"medication-adherence/internal/platform/dates"
)

type MedicationRepo struct {
	s *Store
}

var _ medications.Repository = (*MedicationRepo)(nil)

const medicationColumns = `
	id, user_id,
	drug_name, dosage_value, dosage_unit, frequency,
	start_date, end_date,
	instructions, prescribed_by,
	stock_quantity, refill_threshold, is_active, color,
	created_at, updated_at`

func (r *MedicationRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.s.conn(ctx).ExecContext(ctx, `
		INSERT INTO medications (`+medicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		m.ID,
		m.UserID,
		m.DrugName,
		m.DosageValue,
		string(m.DosageUnit),
		string(m.Frequency),
		m.StartDate,
		toNullTime(m.EndDate),
		m.Instructions,
		m.PrescribedBy,
		m.StockQuantity,
		m.RefillThreshold,
		m.IsActive,
		m.Color,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert medication: %w", err)
	}
	return nil
}

func (r *MedicationRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.s.conn(ctx).ExecContext(ctx, `
		UPDATE medications
		SET
			drug_name = $2,
			dosage_value = $3,
			dosage_unit = $4,
			frequency = $5,
			start_date = $6,
			end_date = $7,
			instructions = $8,
			prescribed_by = $9,
			stock_quantity = $10,
			refill_threshold = $11,
			is_active = $12,
			color = $13,
			updated_at = $14
		WHERE id = $1
	`,
		m.ID,
		m.DrugName,
		m.DosageValue,
		string(m.DosageUnit),
		string(m.Frequency),
		m.StartDate,
		toNullTime(m.EndDate),
		m.Instructions,
		m.PrescribedBy,
		m.StockQuantity,
		m.RefillThreshold,
		m.IsActive,
		m.Color,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update medication: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperrors.NotFound("medication not found")
	}
	return nil
}

func (r *MedicationRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate toma el row lock hasta el fin del tx del ctx.
func (r *MedicationRepo) GetForUpdate(ctx context.Context, id string) (medications.Medication, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *MedicationRepo) get(ctx context.Context, id, suffix string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, apperrors.NotFound("medication not found")
	}

	row := r.s.conn(ctx).QueryRowContext(ctx,
		`SELECT `+medicationColumns+` FROM medications WHERE id = $1`+suffix, id)
	m, err := scanMedication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return medications.Medication{}, apperrors.NotFound("medication not found")
	}
	if err != nil {
		return medications.Medication{}, fmt.Errorf("get medication: %w", err)
	}
	return m, nil
}

func (r *MedicationRepo) ListByUser(ctx context.Context, userID string, f medications.ListFilter) ([]medications.Medication, error) {
	q := `SELECT ` + medicationColumns + ` FROM medications WHERE user_id = $1`
	args := []any{userID}
	if f.Active != nil {
		q += ` AND is_active = $2`
		args = append(args, *f.Active)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.s.conn(ctx).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medication: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete: dose_schedules cae por ON DELETE CASCADE.
func (r *MedicationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.s.conn(ctx).ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete medication: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperrors.NotFound("medication not found")
	}
	return nil
}

// DecrementStock es un solo UPDATE condicional: nunca baja de 0.
func (r *MedicationRepo) DecrementStock(ctx context.Context, id string) (medications.Medication, error) {
	_, err := r.s.conn(ctx).ExecContext(ctx, `
		UPDATE medications
		SET stock_quantity = stock_quantity - 1
		WHERE id = $1 AND stock_quantity > 0
	`, id)
	if err != nil {
		return medications.Medication{}, fmt.Errorf("decrement stock: %w", err)
	}
	return r.GetByID(ctx, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMedication(s scanner) (medications.Medication, error) {
	var (
		m         medications.Medication
		unit      string
		frequency string
		start     time.Time
		end       sql.NullTime
	)
	err := s.Scan(
		&m.ID,
		&m.UserID,
		&m.DrugName,
		&m.DosageValue,
		&unit,
		&frequency,
		&start,
		&end,
		&m.Instructions,
		&m.PrescribedBy,
		&m.StockQuantity,
		&m.RefillThreshold,
		&m.IsActive,
		&m.Color,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return medications.Medication{}, err
	}

	m.DosageUnit = medications.DosageUnit(unit)
	m.Frequency = schedule.Frequency(frequency)
	m.StartDate = dates.Day(start)
	if end.Valid {
		d := dates.Day(end.Time)
		m.EndDate = &d
	}
	return m, nil
}
