package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medication-adherence/internal/platform/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusByKind(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperrors.NotFound("medication not found"), http.StatusNotFound},
		{"concealed forbidden", apperrors.Conceal(apperrors.Forbidden("other user"), "dose schedule not found"), http.StatusNotFound},
		{"bare forbidden", apperrors.Forbidden("other user"), http.StatusNotFound},
		{"invalid state", apperrors.InvalidState("dose is already taken"), http.StatusConflict},
		{"validation", apperrors.Validation(apperrors.FieldError{Field: "color", Message: "bad"}), http.StatusBadRequest},
		{"internal", errors.New("pq: connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestError_InternalDoesNotLeakCause(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("pq: password authentication failed"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body["message"])
}

func TestError_ValidationIncludesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apperrors.Validation(apperrors.FieldError{Field: "end_date", Message: "must not be before start_date"}))

	var body struct {
		Fields []apperrors.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "end_date", body.Fields[0].Field)
}
