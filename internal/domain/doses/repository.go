package doses

import (
	"context"
	"time"
)

type ListFilter struct {
	From *time.Time // inclusive
	To   *time.Time // inclusive

	// ActiveOnly limita a medicaciones activas.
	ActiveOnly bool
}

// Repository persiste dosis. Los métodos respetan el tx que venga en ctx.
type Repository interface {
	// BulkCreate inserta todo o nada.
	BulkCreate(ctx context.Context, items []DoseSchedule) error

	GetByID(ctx context.Context, id string) (DoseSchedule, error)

	// UpdateOutcome graba status/taken_at/notes solo si la fila sigue pending.
	// Si ya no lo está devuelve apperrors.ErrInvalidState.
	UpdateOutcome(ctx context.Context, d DoseSchedule) error

	// DeletePendingFrom borra las pending con fecha >= from y devuelve cuántas.
	DeletePendingFrom(ctx context.Context, medicationID string, from time.Time) (int, error)

	// Listados ordenados por fecha y hora.
	ListByMedication(ctx context.Context, medicationID string) ([]DoseSchedule, error)
	ListByUser(ctx context.Context, userID string, f ListFilter) ([]DoseSchedule, error)
}
