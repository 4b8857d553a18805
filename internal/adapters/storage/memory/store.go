package memory

import (
	"context"
	"sync"

	"medication-adherence/internal/domain/doses"
	"medication-adherence/internal/domain/medications"
)

// Store guarda medicaciones y dosis en memoria (dev/tests).
// Un WithinTx toma el lock de escritura durante toda la unidad de trabajo y
// restaura un snapshot si fn falla.
type Store struct {
	mu    sync.RWMutex
	meds  map[string]medications.Medication
	doses map[string]doses.DoseSchedule
}

func NewStore() *Store {
	return &Store{
		meds:  make(map[string]medications.Medication),
		doses: make(map[string]doses.DoseSchedule),
	}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(*Store)
	return v == s
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meds := make(map[string]medications.Medication, len(s.meds))
	for k, v := range s.meds {
		meds[k] = v
	}
	ds := make(map[string]doses.DoseSchedule, len(s.doses))
	for k, v := range s.doses {
		ds[k] = v
	}

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.meds, s.doses = meds, ds
		return err
	}
	return nil
}

// write/read toman el lock salvo que ya estemos dentro de WithinTx.
func (s *Store) write(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) read(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) Medications() *MedicationRepo { return &MedicationRepo{s: s} }

func (s *Store) Doses() *DoseRepo { return &DoseRepo{s: s} }
