package txn

import "context"

// Runner ejecuta fn dentro de una unidad de trabajo atómica.
// Si fn devuelve error se hace rollback; llamadas anidadas se suman a la
// transacción externa (el tx viaja en ctx).
type Runner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RunnerFunc adapta una función a Runner.
type RunnerFunc func(ctx context.Context, fn func(ctx context.Context) error) error

func (f RunnerFunc) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// NoTx corre fn sin transacción. Solo para tests de servicios con repos fake.
var NoTx Runner = RunnerFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})
