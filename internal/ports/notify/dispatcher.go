package notify

import (
	"context"
	"time"
)

type EventType string

const (
	EventDoseTaken          EventType = "dose.taken"
	EventDoseMissed         EventType = "dose.missed"
	EventDoseSkipped        EventType = "dose.skipped"
	EventMedicationLowStock EventType = "medication.low_stock"
)

// Event es lo que el core publica; el envío (email/SMS/push) es externo.
type Event struct {
	Type         EventType      `json:"type"`
	UserID       string         `json:"user_id"`
	MedicationID string         `json:"medication_id,omitempty"`
	DoseID       string         `json:"dose_id,omitempty"`
	Message      string         `json:"message,omitempty"`
	OccurredAt   time.Time      `json:"occurred_at"`
	Data         map[string]any `json:"data,omitempty"`
}

// Dispatcher entrega eventos a un colaborador externo.
type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) error
}

// Discard ignora todos los eventos.
type Discard struct{}

func (Discard) Dispatch(context.Context, Event) error { return nil }
