package medications

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"medication-adherence/internal/domain/schedule"
	"medication-adherence/internal/platform/apperrors"
	"medication-adherence/internal/platform/dates"
)

var colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// MinStartDate es la fecha de inicio más antigua aceptada. La fecha cero
// (start_date ausente) cae antes.
var MinStartDate = dates.MustParse("1900-01-01")

// Validate revisa todos los atributos y devuelve un único error de validación
// con cada campo inválido, o nil.
func Validate(m Medication) error {
	var fields []apperrors.FieldError
	add := func(field, msg string) {
		fields = append(fields, apperrors.FieldError{Field: field, Message: msg})
	}

	name := strings.TrimSpace(m.DrugName)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		add("drug_name", "Medication name is required")
	case n < 2 || n > 100:
		add("drug_name", "Medication name must be between 2 and 100 characters")
	}

	if !(m.DosageValue > 0) {
		add("dosage_value", "Dosage must be greater than 0")
	}
	if !m.DosageUnit.Valid() {
		add("dosage_unit", "unsupported dosage unit")
	}
	if !m.Frequency.Valid() {
		add("frequency", "unsupported frequency")
	}

	switch {
	case m.StartDate.Before(MinStartDate):
		add("start_date", "start date is required and must be on or after "+dates.Format(MinStartDate))
	case m.EndDate == nil:
	case m.EndDate.Before(m.StartDate):
		add("end_date", "End date must be after start date")
	case dates.DaysBetween(m.StartDate, *m.EndDate)+1 > schedule.MaxWindowDays:
		add("end_date", fmt.Sprintf("schedule window must not exceed %d days", schedule.MaxWindowDays))
	}

	if m.StockQuantity < 0 {
		add("stock_quantity", "must be >= 0")
	}
	if m.RefillThreshold < 0 {
		add("refill_threshold", "must be >= 0")
	}
	if !colorRe.MatchString(m.Color) {
		add("color", "must be a hex color like #4A90E2")
	}

	if len(fields) > 0 {
		return apperrors.Validation(fields...)
	}
	return nil
}
