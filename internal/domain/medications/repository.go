package medications

import "context"

type ListFilter struct {
	Active *bool // nil = todas
}

// Repository persiste medicaciones. Los métodos respetan el tx que venga en ctx.
type Repository interface {
	Create(ctx context.Context, m Medication) error
	Update(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)

	// GetForUpdate bloquea la fila hasta el fin del tx (single writer por medicación).
	GetForUpdate(ctx context.Context, id string) (Medication, error)

	// ListByUser ordena por created_at desc.
	ListByUser(ctx context.Context, userID string, f ListFilter) ([]Medication, error)

	// Delete borra la medicación y todas sus dosis.
	Delete(ctx context.Context, id string) error

	// DecrementStock hace stock = stock - 1 solo si stock > 0 y devuelve el estado resultante.
	DecrementStock(ctx context.Context, id string) (Medication, error)
}
