package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindInvalidState Kind = "INVALID_STATE"
	KindValidation   Kind = "VALIDATION"
	KindForbidden    Kind = "FORBIDDEN"
	KindInternal     Kind = "INTERNAL"
)

// FieldError describe un atributo inválido.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Cause   error
}

// Error devuelve solo el mensaje: la causa no se expone al caller
// (ver Conceal).
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is compara por Kind contra los sentinels (Message vacío).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message != "" {
		return e == t
	}
	return e.Kind == t.Kind
}

var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrInvalidState = &Error{Kind: KindInvalidState}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrForbidden    = &Error{Kind: KindForbidden}
)

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// Conceal devuelve un NOT_FOUND con el mismo mensaje que un not-found real,
// manteniendo la causa (p.ej. FORBIDDEN) para logs y errors.Is.
func Conceal(cause error, message string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Cause: cause}
}

// KindOf devuelve el Kind del primer *Error de la cadena, o KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// FieldsOf devuelve los FieldError de un error de validación.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
