package medications

import (
	"time"

	"medication-adherence/internal/domain/schedule"
)

// DosageUnit define las unidades de dosis soportadas.
// @Enum mg, mcg, g, ml, tablet, capsule, drop, spray, patch, unit
type DosageUnit string

const (
	UnitMg      DosageUnit = "mg"
	UnitMcg     DosageUnit = "mcg"
	UnitG       DosageUnit = "g"
	UnitMl      DosageUnit = "ml"
	UnitTablet  DosageUnit = "tablet"
	UnitCapsule DosageUnit = "capsule"
	UnitDrop    DosageUnit = "drop"
	UnitSpray   DosageUnit = "spray"
	UnitPatch   DosageUnit = "patch"
	UnitUnit    DosageUnit = "unit"
)

func (u DosageUnit) Valid() bool {
	switch u {
	case UnitMg, UnitMcg, UnitG, UnitMl, UnitTablet, UnitCapsule, UnitDrop, UnitSpray, UnitPatch, UnitUnit:
		return true
	}
	return false
}

const (
	DefaultRefillThreshold = 7
	DefaultColor           = "#4A90E2"
)

// Medication es una prescripción de un usuario. Es dueña de sus DoseSchedule
// (borrarla borra sus dosis).
type Medication struct {
	ID     string
	UserID string

	DrugName    string
	DosageValue float64
	DosageUnit  DosageUnit
	Frequency   schedule.Frequency

	StartDate time.Time  // fecha de calendario
	EndDate   *time.Time // opcional, >= StartDate

	Instructions string
	PrescribedBy string

	StockQuantity   int
	RefillThreshold int
	IsActive        bool
	Color           string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NeedsRefill: stock en o por debajo del umbral.
func (m Medication) NeedsRefill() bool {
	return m.StockQuantity <= m.RefillThreshold
}

// Window es la ventana de generación de dosis.
func (m Medication) Window() schedule.Window {
	return schedule.Window{
		Start:     m.StartDate,
		End:       m.EndDate,
		Frequency: m.Frequency,
	}
}

// ChangedFields marca qué campos que afectan el calendario cambiaron en un update.
type ChangedFields struct {
	Frequency bool
	StartDate bool
	EndDate   bool
}

func (c ChangedFields) Any() bool {
	return c.Frequency || c.StartDate || c.EndDate
}

// DiffSchedule compara dos versiones de la misma medicación.
func DiffSchedule(before, after Medication) ChangedFields {
	return ChangedFields{
		Frequency: before.Frequency != after.Frequency,
		StartDate: !before.StartDate.Equal(after.StartDate),
		EndDate:   !sameDate(before.EndDate, after.EndDate),
	}
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
