package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := NotFound("dose schedule %s not found", "d-1")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, "dose schedule d-1 not found", err.Error())
}

func TestIs_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("repo: %w", InvalidState("dose is already taken"))

	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestConceal_LooksLikeNotFound(t *testing.T) {
	plain := NotFound("dose schedule not found")
	hidden := Conceal(Forbidden("dose belongs to another user"), "dose schedule not found")

	assert.Equal(t, plain.Error(), hidden.Error())
	assert.Equal(t, KindNotFound, KindOf(hidden))
	assert.True(t, errors.Is(hidden, ErrNotFound))
	assert.True(t, errors.Is(hidden, ErrForbidden))
	assert.False(t, errors.Is(plain, ErrForbidden))
}

func TestValidation_ListsFields(t *testing.T) {
	err := Validation(
		FieldError{Field: "drug_name", Message: "is required"},
		FieldError{Field: "dosage_value", Message: "must be greater than 0"},
	)

	assert.Equal(t, "validation failed: drug_name: is required; dosage_value: must be greater than 0", err.Error())
	assert.Len(t, FieldsOf(err), 2)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Nil(t, FieldsOf(errors.New("boom")))
}
