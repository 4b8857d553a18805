package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-adherence/internal/domain/doses"
	"medication-adherence/internal/domain/schedule"
	"medication-adherence/internal/platform/apperrors"
	"medication-adherence/internal/platform/dates"
)

// filas por INSERT multi-valor (9 params por fila, lejos del límite de 65535)
const bulkChunk = 500

type DoseRepo struct {
	s *Store
}

var _ doses.Repository = (*DoseRepo)(nil)

const doseColumns = `
	d.id, d.medication_id,
	d.scheduled_date, d.scheduled_time,
	d.status, d.taken_at, d.notes,
	d.created_at, d.updated_at`

// BulkCreate inserta en chunks dentro de un tx: todo o nada.
func (r *DoseRepo) BulkCreate(ctx context.Context, items []doses.DoseSchedule) error {
	if len(items) == 0 {
		return nil
	}

	return r.s.WithinTx(ctx, func(ctx context.Context) error {
		for start := 0; start < len(items); start += bulkChunk {
			end := min(start+bulkChunk, len(items))
			if err := r.insertChunk(ctx, items[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DoseRepo) insertChunk(ctx context.Context, items []doses.DoseSchedule) error {
	var (
		sb   strings.Builder
		args = make([]any, 0, len(items)*9)
	)
	sb.WriteString(`INSERT INTO dose_schedules (
		id, medication_id, scheduled_date, scheduled_time,
		status, taken_at, notes, created_at, updated_at
	) VALUES `)

	for i, d := range items {
		if i > 0 {
			sb.WriteString(",")
		}
		n := i * 9
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)", n+1, n+2, n+3, n+4, n+5, n+6, n+7, n+8, n+9)
		args = append(args,
			d.ID,
			d.MedicationID,
			d.ScheduledDate,
			string(d.ScheduledTime),
			string(d.Status),
			toNullTime(d.TakenAt),
			d.Notes,
			d.CreatedAt,
			d.UpdatedAt,
		)
	}

	if _, err := r.s.conn(ctx).ExecContext(ctx, sb.String(), args...); err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return apperrors.NotFound("medication not found")
		}
		return fmt.Errorf("insert doses: %w", err)
	}
	return nil
}

func (r *DoseRepo) GetByID(ctx context.Context, id string) (doses.DoseSchedule, error) {
	row := r.s.conn(ctx).QueryRowContext(ctx,
		`SELECT `+doseColumns+` FROM dose_schedules d WHERE d.id = $1`, id)
	d, err := scanDose(row)
	if errors.Is(err, sql.ErrNoRows) {
		return doses.DoseSchedule{}, apperrors.NotFound("dose not found")
	}
	if err != nil {
		return doses.DoseSchedule{}, fmt.Errorf("get dose: %w", err)
	}
	return d, nil
}

// UpdateOutcome es un compare-and-set sobre status = 'pending'.
func (r *DoseRepo) UpdateOutcome(ctx context.Context, d doses.DoseSchedule) error {
	res, err := r.s.conn(ctx).ExecContext(ctx, `
		UPDATE dose_schedules
		SET status = $2, taken_at = $3, notes = $4, updated_at = $5
		WHERE id = $1 AND status = 'pending'
	`,
		d.ID,
		string(d.Status),
		toNullTime(d.TakenAt),
		d.Notes,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update dose outcome: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}

	current, err := r.GetByID(ctx, d.ID)
	if err != nil {
		return err
	}
	return apperrors.InvalidState("dose is already %s", current.Status)
}

func (r *DoseRepo) DeletePendingFrom(ctx context.Context, medicationID string, from time.Time) (int, error) {
	res, err := r.s.conn(ctx).ExecContext(ctx, `
		DELETE FROM dose_schedules
		WHERE medication_id = $1 AND status = 'pending' AND scheduled_date >= $2
	`, medicationID, dates.Day(from))
	if err != nil {
		return 0, fmt.Errorf("delete pending doses: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *DoseRepo) ListByMedication(ctx context.Context, medicationID string) ([]doses.DoseSchedule, error) {
	return r.list(ctx, `
		SELECT `+doseColumns+`
		FROM dose_schedules d
		WHERE d.medication_id = $1
		ORDER BY d.scheduled_date, d.scheduled_time, d.id
	`, medicationID)
}

func (r *DoseRepo) ListByUser(ctx context.Context, userID string, f doses.ListFilter) ([]doses.DoseSchedule, error) {
	q := `
		SELECT ` + doseColumns + `
		FROM dose_schedules d
		JOIN medications m ON m.id = d.medication_id
		WHERE m.user_id = $1`
	args := []any{userID}

	if f.ActiveOnly {
		q += ` AND m.is_active`
	}
	if f.From != nil {
		args = append(args, dates.Day(*f.From))
		q += fmt.Sprintf(` AND d.scheduled_date >= $%d`, len(args))
	}
	if f.To != nil {
		args = append(args, dates.Day(*f.To))
		q += fmt.Sprintf(` AND d.scheduled_date <= $%d`, len(args))
	}
	q += ` ORDER BY d.scheduled_date, d.scheduled_time, d.medication_id, d.id`

	return r.list(ctx, q, args...)
}

func (r *DoseRepo) list(ctx context.Context, q string, args ...any) ([]doses.DoseSchedule, error) {
	rows, err := r.s.conn(ctx).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list doses: %w", err)
	}
	defer rows.Close()

	out := make([]doses.DoseSchedule, 0)
	for rows.Next() {
		d, err := scanDose(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dose: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDose(s scanner) (doses.DoseSchedule, error) {
	var (
		d       doses.DoseSchedule
		day     time.Time
		tod     string
		status  string
		takenAt sql.NullTime
	)
	err := s.Scan(
		&d.ID,
		&d.MedicationID,
		&day,
		&tod,
		&status,
		&takenAt,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return doses.DoseSchedule{}, err
	}

	d.ScheduledDate = dates.Day(day)
	d.ScheduledTime = schedule.TimeOfDay(tod)
	d.Status = doses.Status(status)
	if takenAt.Valid {
		t := takenAt.Time
		d.TakenAt = &t
	}
	return d, nil
}
