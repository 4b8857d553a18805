package sqlite

import (
	"time"

	"medication-adherence/internal/domain/doses"
	"medication-adherence/internal/domain/medications"
	"medication-adherence/internal/domain/schedule"
	"medication-adherence/internal/platform/dates"
)

// Fechas de calendario como TEXT YYYY-MM-DD: ordenan y comparan como string.
type medicationRow struct {
	ID              string `gorm:"primaryKey"`
	UserID          string `gorm:"not null;index:idx_medications_user_active,priority:1"`
	DrugName        string `gorm:"not null"`
	DosageValue     float64
	DosageUnit      string
	Frequency       string
	StartDate       string `gorm:"not null"`
	EndDate         *string
	Instructions    string
	PrescribedBy    string
	StockQuantity   int
	RefillThreshold int
	IsActive        bool   `gorm:"index:idx_medications_user_active,priority:2"`
	Color           string
	CreatedAt       time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (medicationRow) TableName() string { return "medications" }

type doseRow struct {
	ID            string `gorm:"primaryKey"`
	MedicationID  string `gorm:"not null;index:idx_doses_medication_date,priority:1"`
	ScheduledDate string `gorm:"not null;index:idx_doses_medication_date,priority:2;index"`
	ScheduledTime string `gorm:"not null"`
	Status        string `gorm:"not null;default:pending"`
	TakenAt       *time.Time
	Notes         string
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

func (doseRow) TableName() string { return "dose_schedules" }

func toMedicationRow(m medications.Medication) medicationRow {
	var end *string
	if m.EndDate != nil {
		s := dates.Format(*m.EndDate)
		end = &s
	}
	return medicationRow{
		ID:              m.ID,
		UserID:          m.UserID,
		DrugName:        m.DrugName,
		DosageValue:     m.DosageValue,
		DosageUnit:      string(m.DosageUnit),
		Frequency:       string(m.Frequency),
		StartDate:       dates.Format(m.StartDate),
		EndDate:         end,
		Instructions:    m.Instructions,
		PrescribedBy:    m.PrescribedBy,
		StockQuantity:   m.StockQuantity,
		RefillThreshold: m.RefillThreshold,
		IsActive:        m.IsActive,
		Color:           m.Color,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

func (r medicationRow) domain() (medications.Medication, error) {
	start, err := dates.Parse(r.StartDate)
	if err != nil {
		return medications.Medication{}, err
	}
	var end *time.Time
	if r.EndDate != nil {
		t, err := dates.Parse(*r.EndDate)
		if err != nil {
			return medications.Medication{}, err
		}
		end = &t
	}
	return medications.Medication{
		ID:              r.ID,
		UserID:          r.UserID,
		DrugName:        r.DrugName,
		DosageValue:     r.DosageValue,
		DosageUnit:      medications.DosageUnit(r.DosageUnit),
		Frequency:       schedule.Frequency(r.Frequency),
		StartDate:       start,
		EndDate:         end,
		Instructions:    r.Instructions,
		PrescribedBy:    r.PrescribedBy,
		StockQuantity:   r.StockQuantity,
		RefillThreshold: r.RefillThreshold,
		IsActive:        r.IsActive,
		Color:           r.Color,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}, nil
}

func toDoseRow(d doses.DoseSchedule) doseRow {
	return doseRow{
		ID:            d.ID,
		MedicationID:  d.MedicationID,
		ScheduledDate: dates.Format(d.ScheduledDate),
		ScheduledTime: string(d.ScheduledTime),
		Status:        string(d.Status),
		TakenAt:       d.TakenAt,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

func (r doseRow) domain() (doses.DoseSchedule, error) {
	day, err := dates.Parse(r.ScheduledDate)
	if err != nil {
		return doses.DoseSchedule{}, err
	}
	return doses.DoseSchedule{
		ID:            r.ID,
		MedicationID:  r.MedicationID,
		ScheduledDate: day,
		ScheduledTime: schedule.TimeOfDay(r.ScheduledTime),
		Status:        doses.Status(r.Status),
		TakenAt:       r.TakenAt,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

func doseRowsToDomain(rows []doseRow) ([]doses.DoseSchedule, error) {
	out := make([]doses.DoseSchedule, 0, len(rows))
	for _, r := range rows {
		d, err := r.domain()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
