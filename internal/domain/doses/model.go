package doses

import (
	"time"

	"medication-adherence/internal/domain/schedule"
)

// Status del ciclo de vida de una dosis. pending es el único estado no terminal.
// @Enum pending, taken, missed, skipped
type Status string

const (
	StatusPending Status = "pending"
	StatusTaken   Status = "taken"
	StatusMissed  Status = "missed"
	StatusSkipped Status = "skipped"
)

func (s Status) Terminal() bool {
	return s == StatusTaken || s == StatusMissed || s == StatusSkipped
}

func (s Status) Valid() bool {
	return s == StatusPending || s.Terminal()
}

// DoseSchedule es una ocurrencia concreta de una medicación.
type DoseSchedule struct {
	ID           string
	MedicationID string

	ScheduledDate time.Time // fecha de calendario
	ScheduledTime schedule.TimeOfDay

	Status  Status
	TakenAt *time.Time // solo si Status == taken
	Notes   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Less ordena por fecha y luego por hora.
func Less(a, b DoseSchedule) bool {
	if !a.ScheduledDate.Equal(b.ScheduledDate) {
		return a.ScheduledDate.Before(b.ScheduledDate)
	}
	return a.ScheduledTime < b.ScheduledTime
}
