package respond

import (
	"encoding/json"
	"net/http"

	"medication-adherence/internal/platform/apperrors"
)

// JSON escribe v con Content-Type application/json.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody es el cuerpo de toda respuesta de error.
type ErrorBody struct {
	Error   string                  `json:"error"`
	Message string                  `json:"message"`
	Fields  []apperrors.FieldError `json:"fields,omitempty"`
}

// Error traduce el Kind del error a status HTTP.
// FORBIDDEN se responde como 404 para no filtrar existencia.
func Error(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	switch kind {
	case apperrors.KindNotFound, apperrors.KindForbidden:
		JSON(w, http.StatusNotFound, ErrorBody{Error: string(apperrors.KindNotFound), Message: err.Error()})
	case apperrors.KindInvalidState:
		JSON(w, http.StatusConflict, ErrorBody{Error: string(kind), Message: err.Error()})
	case apperrors.KindValidation:
		JSON(w, http.StatusBadRequest, ErrorBody{Error: string(kind), Message: "validation failed", Fields: apperrors.FieldsOf(err)})
	default:
		JSON(w, http.StatusInternalServerError, ErrorBody{Error: string(apperrors.KindInternal), Message: "internal error"})
	}
}

// BadRequest para errores de parsing del request (json, query params).
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Error: "BAD_REQUEST", Message: msg})
}

func Unauthorized(w http.ResponseWriter) {
	JSON(w, http.StatusUnauthorized, ErrorBody{Error: "UNAUTHORIZED", Message: "unauthorized"})
}
