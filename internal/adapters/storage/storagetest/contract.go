// Package storagetest tiene la suite común que corre contra cada adapter de storage.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"medication-adherence/internal/domain/doses"
	"medication-adherence/internal/domain/medications"
	"medication-adherence/internal/domain/schedule"
	"medication-adherence/internal/platform/apperrors"
	"medication-adherence/internal/platform/dates"
	"medication-adherence/internal/ports/txn"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Backend es lo que cada adapter expone.
type Backend struct {
	Tx          txn.Runner
	Medications medications.Repository
	Doses       doses.Repository
}

// Run ejecuta la suite; newBackend debe devolver un store vacío por llamada.
func Run(t *testing.T, newBackend func(t *testing.T) Backend) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, b Backend)
	}{
		{"medication crud", testMedicationCRUD},
		{"list newest first with active filter", testListByUser},
		{"decrement stock never negative", testDecrementStock},
		{"delete cascades doses", testDeleteCascades},
		{"update outcome is compare-and-set", testUpdateOutcomeCAS},
		{"delete pending from date", testDeletePendingFrom},
		{"list doses by user", testListDosesByUser},
		{"tx rollback", testRollback},
		{"nested tx joins outer", testNestedTx},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newBackend(t))
		})
	}
}

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// Medication arma una medicación válida para userID.
func Medication(userID string, created time.Time) medications.Medication {
	end := dates.MustParse("2024-01-10")
	return medications.Medication{
		ID:              uuid.NewString(),
		UserID:          userID,
		DrugName:        "Metformin",
		DosageValue:     500,
		DosageUnit:      medications.UnitMg,
		Frequency:       schedule.TwiceDaily,
		StartDate:       dates.MustParse("2024-01-01"),
		EndDate:         &end,
		Instructions:    "with food",
		StockQuantity:   10,
		RefillThreshold: 7,
		IsActive:        true,
		Color:           medications.DefaultColor,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

// Dose arma una dosis pending.
func Dose(medicationID, date string, tod schedule.TimeOfDay) doses.DoseSchedule {
	return doses.DoseSchedule{
		ID:            uuid.NewString(),
		MedicationID:  medicationID,
		ScheduledDate: dates.MustParse(date),
		ScheduledTime: tod,
		Status:        doses.StatusPending,
		CreatedAt:     base,
		UpdatedAt:     base,
	}
}

func testMedicationCRUD(t *testing.T, b Backend) {
	ctx := context.Background()
	m := Medication("u1", base)
	require.NoError(t, b.Medications.Create(ctx, m))

	got, err := b.Medications.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.DrugName, got.DrugName)
	assert.Equal(t, m.DosageValue, got.DosageValue)
	assert.Equal(t, m.Frequency, got.Frequency)
	assert.True(t, m.StartDate.Equal(got.StartDate))
	require.NotNil(t, got.EndDate)
	assert.True(t, m.EndDate.Equal(*got.EndDate))
	assert.Equal(t, m.Instructions, got.Instructions)

	got.EndDate = nil
	got.DrugName = "Metformin XR"
	require.NoError(t, b.Medications.Update(ctx, got))

	again, err := b.Medications.GetForUpdate(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, again.EndDate)
	assert.Equal(t, "Metformin XR", again.DrugName)

	_, err = b.Medications.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	err = b.Medications.Update(ctx, Medication("u1", base))
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func testListByUser(t *testing.T, b Backend) {
	ctx := context.Background()
	older := Medication("u1", base)
	newer := Medication("u1", base.Add(time.Hour))
	inactive := Medication("u1", base.Add(2*time.Hour))
	inactive.IsActive = false
	other := Medication("u2", base)

	for _, m := range []medications.Medication{older, newer, inactive, other} {
		require.NoError(t, b.Medications.Create(ctx, m))
	}

	all, err := b.Medications.ListByUser(ctx, "u1", medications.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{inactive.ID, newer.ID, older.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	active := true
	onlyActive, err := b.Medications.ListByUser(ctx, "u1", medications.ListFilter{Active: &active})
	require.NoError(t, err)
	assert.Len(t, onlyActive, 2)

	none, err := b.Medications.ListByUser(ctx, "nobody", medications.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testDecrementStock(t *testing.T, b Backend) {
	ctx := context.Background()
	m := Medication("u1", base)
	m.StockQuantity = 1
	require.NoError(t, b.Medications.Create(ctx, m))

	got, err := b.Medications.DecrementStock(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)

	got, err = b.Medications.DecrementStock(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)

	_, err = b.Medications.DecrementStock(ctx, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func testDeleteCascades(t *testing.T, b Backend) {
	ctx := context.Background()
	m := Medication("u1", base)
	keep := Medication("u1", base)
	require.NoError(t, b.Medications.Create(ctx, m))
	require.NoError(t, b.Medications.Create(ctx, keep))
	require.NoError(t, b.Doses.BulkCreate(ctx, []doses.DoseSchedule{
		Dose(m.ID, "2024-01-01", "08:00"),
		Dose(m.ID, "2024-01-01", "20:00"),
		Dose(keep.ID, "2024-01-01", "08:00"),
	}))

	require.NoError(t, b.Medications.Delete(ctx, m.ID))

	left, err := b.Doses.ListByMedication(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	kept, err := b.Doses.ListByMedication(ctx, keep.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	assert.True(t, errors.Is(b.Medications.Delete(ctx, m.ID), apperrors.ErrNotFound))
}

func testUpdateOutcomeCAS(t *testing.T, b Backend) {
	ctx := context.Background()
	m := Medication("u1", base)
	require.NoError(t, b.Medications.Create(ctx, m))
	d := Dose(m.ID, "2024-01-02", "08:00")
	require.NoError(t, b.Doses.BulkCreate(ctx, []doses.DoseSchedule{d}))

	takenAt := base.Add(time.Minute)
	d.Status = doses.StatusTaken
	d.TakenAt = &takenAt
	d.Notes = "ok"
	d.UpdatedAt = takenAt
	require.NoError(t, b.Doses.UpdateOutcome(ctx, d))

	got, err := b.Doses.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, doses.StatusTaken, got.Status)
	assert.Equal(t, "ok", got.Notes)
	require.NotNil(t, got.TakenAt)
	assert.True(t, takenAt.Equal(*got.TakenAt))
	assert.Equal(t, schedule.TimeOfDay("08:00"), got.ScheduledTime)

	d.Status = doses.StatusMissed
	d.TakenAt = nil
	err = b.Doses.UpdateOutcome(ctx, d)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))

	got, err = b.Doses.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, doses.StatusTaken, got.Status)

	missing := Dose(m.ID, "2024-01-02", "08:00")
	missing.Status = doses.StatusTaken
	assert.True(t, errors.Is(b.Doses.UpdateOutcome(ctx, missing), apperrors.ErrNotFound))
}

func testDeletePendingFrom(t *testing.T, b Backend) {
	ctx := context.Background()
	m := Medication("u1", base)
	require.NoError(t, b.Medications.Create(ctx, m))

	past := Dose(m.ID, "2024-01-04", "08:00")
	today := Dose(m.ID, "2024-01-05", "08:00")
	future := Dose(m.ID, "2024-01-06", "08:00")
	futureTaken := Dose(m.ID, "2024-01-06", "20:00")
	require.NoError(t, b.Doses.BulkCreate(ctx, []doses.DoseSchedule{past, today, future, futureTaken}))

	futureTaken.Status = doses.StatusSkipped
	require.NoError(t, b.Doses.UpdateOutcome(ctx, futureTaken))

	n, err := b.Doses.DeletePendingFrom(ctx, m.ID, dates.MustParse("2024-01-05"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := b.Doses.ListByMedication(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, past.ID, left[0].ID)
	assert.Equal(t, futureTaken.ID, left[1].ID)
}

func testListDosesByUser(t *testing.T, b Backend) {
	ctx := context.Background()
	active := Medication("u1", base)
	inactive := Medication("u1", base)
	inactive.IsActive = false
	other := Medication("u2", base)
	for _, m := range []medications.Medication{active, inactive, other} {
		require.NoError(t, b.Medications.Create(ctx, m))
	}

	require.NoError(t, b.Doses.BulkCreate(ctx, []doses.DoseSchedule{
		Dose(active.ID, "2024-01-02", "20:00"),
		Dose(active.ID, "2024-01-02", "08:00"),
		Dose(active.ID, "2024-01-01", "08:00"),
		Dose(active.ID, "2024-01-05", "08:00"),
		Dose(inactive.ID, "2024-01-02", "12:00"),
		Dose(other.ID, "2024-01-02", "08:00"),
	}))

	from, to := dates.MustParse("2024-01-01"), dates.MustParse("2024-01-02")
	got, err := b.Doses.ListByUser(ctx, "u1", doses.ListFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 4)

	var order []string
	for _, d := range got {
		order = append(order, dates.Format(d.ScheduledDate)+" "+string(d.ScheduledTime))
	}
	assert.Equal(t, []string{"2024-01-01 08:00", "2024-01-02 08:00", "2024-01-02 12:00", "2024-01-02 20:00"}, order)

	onlyActive, err := b.Doses.ListByUser(ctx, "u1", doses.ListFilter{From: &to, To: &to, ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, onlyActive, 2)

	everything, err := b.Doses.ListByUser(ctx, "u1", doses.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, everything, 5)
}

func testRollback(t *testing.T, b Backend) {
	ctx := context.Background()
	m := Medication("u1", base)
	require.NoError(t, b.Medications.Create(ctx, m))
	d := Dose(m.ID, "2024-01-02", "08:00")
	require.NoError(t, b.Doses.BulkCreate(ctx, []doses.DoseSchedule{d}))

	boom := errors.New("boom")
	err := b.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := b.Doses.DeletePendingFrom(ctx, m.ID, dates.MustParse("2024-01-01")); err != nil {
			return err
		}
		if _, err := b.Medications.DecrementStock(ctx, m.ID); err != nil {
			return err
		}
		if err := b.Medications.Create(ctx, Medication("u1", base)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	left, err := b.Doses.ListByMedication(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, left, 1)

	got, err := b.Medications.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQuantity)

	all, err := b.Medications.ListByUser(ctx, "u1", medications.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testNestedTx(t *testing.T, b Backend) {
	ctx := context.Background()
	m := Medication("u1", base)

	boom := errors.New("boom")
	err := b.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := b.Medications.Create(ctx, m); err != nil {
			return err
		}
		inner := b.Tx.WithinTx(ctx, func(ctx context.Context) error {
			return b.Doses.BulkCreate(ctx, []doses.DoseSchedule{Dose(m.ID, "2024-01-02", "08:00")})
		})
		if inner != nil {
			return inner
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = b.Medications.GetByID(ctx, m.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
