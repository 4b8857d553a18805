package logsink

import (
	"context"

	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/ports/notify"
)

// Dispatcher deja cada evento en el log. Es el default sin webhook configurado.
type Dispatcher struct {
	log logger.Logger
}

var _ notify.Dispatcher = (*Dispatcher)(nil)

func New(log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{log: log.With(map[string]any{"module": "notify"})}
}

func (d *Dispatcher) Dispatch(_ context.Context, e notify.Event) error {
	fields := map[string]any{
		"event":       string(e.Type),
		"user_id":     e.UserID,
		"occurred_at": e.OccurredAt,
	}
	if e.MedicationID != "" {
		fields["medication_id"] = e.MedicationID
	}
	if e.DoseID != "" {
		fields["dose_id"] = e.DoseID
	}
	if e.Message != "" {
		fields["message"] = e.Message
	}

	if e.Type == notify.EventMedicationLowStock {
		d.log.Warn("notification", fields)
		return nil
	}
	d.log.Info("notification", fields)
	return nil
}
