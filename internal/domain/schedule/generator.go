package schedule

import (
	"time"

	"medication-adherence/internal/platform/dates"
)

// DefaultHorizonDays acota la generación cuando la medicación no tiene fecha de fin.
const DefaultHorizonDays = 90

// MaxWindowDays es el tramo más largo que se materializa de una sola vez.
const MaxWindowDays = 3660

// Window es la ventana de una prescripción. End nil = abierta.
type Window struct {
	Start     time.Time
	End       *time.Time
	Frequency Frequency
}

// Slot es una ocurrencia concreta (fecha de calendario + hora).
type Slot struct {
	Date time.Time
	Time TimeOfDay
}

// EffectiveEnd: End si viene, si no today + horizonDays.
// horizonDays <= 0 usa DefaultHorizonDays.
func EffectiveEnd(w Window, today time.Time, horizonDays int) time.Time {
	if w.End != nil {
		return dates.Day(*w.End)
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return dates.AddDays(today, horizonDays)
}

// Dates enumera las fechas de la ventana según frecuencia:
// weekly paso de 7 días, monthly paso fijo de 30 días (no mes calendario),
// el resto todos los días. Ambos extremos inclusive.
func Dates(f Frequency, start, end time.Time) []time.Time {
	step := stepDays(f)

	start, end = dates.Day(start), dates.Day(end)
	if end.Before(start) {
		return nil
	}

	out := make([]time.Time, 0, dates.DaysBetween(start, end)/step+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, step) {
		out = append(out, d)
	}
	return out
}

func stepDays(f Frequency) int {
	switch f {
	case Weekly:
		return 7
	case Monthly:
		return 30
	}
	return 1
}

// From recorta la ventana para que empiece en la primera fecha de su serie
// que cae en from o después. La serie no se corre: weekly sigue cayendo en
// el mismo día de la semana que Start.
func From(w Window, from time.Time) Window {
	start, from := dates.Day(w.Start), dates.Day(from)
	if !from.After(start) {
		return w
	}
	step := stepDays(w.Frequency)
	n := dates.DaysBetween(start, from)
	skip := (n + step - 1) / step * step
	w.Start = dates.AddDays(start, skip)
	return w
}

// Span cuenta los días de calendario que Expand recorrería, ambos extremos
// inclusive. 0 si la ventana está vacía.
func Span(w Window, today time.Time, horizonDays int) int {
	n := dates.DaysBetween(w.Start, EffectiveEnd(w, today, horizonDays)) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Expand cruza cada fecha con cada slot de la frecuencia, ordenado por fecha y
// luego por el orden del slot.
func Expand(w Window, today time.Time, horizonDays int) []Slot {
	end := EffectiveEnd(w, today, horizonDays)
	days := Dates(w.Frequency, w.Start, end)
	times := TimeSlots(w.Frequency)

	out := make([]Slot, 0, len(days)*len(times))
	for _, d := range days {
		for _, t := range times {
			out = append(out, Slot{Date: d, Time: t})
		}
	}
	return out
}
