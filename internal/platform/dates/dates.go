package dates

import (
	"strings"
	"time"
)

// Layout es el formato de fecha de calendario usado en API y storage.
const Layout = "2006-01-02"

// Day normaliza t a la fecha de calendario (00:00 UTC) conservando año/mes/día
// tal como se ven en la location de t.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse lee una fecha YYYY-MM-DD.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// MustParse es para tests y constantes.
func MustParse(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// AddDays suma días de calendario (no 24h*n, para no arrastrar DST).
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween devuelve b - a en días de calendario. Va por Unix y no por
// time.Duration, que satura a los ~292 años.
func DaysBetween(a, b time.Time) int {
	return int((Day(b).Unix() - Day(a).Unix()) / 86400)
}

// Range devuelve todas las fechas en [start, end], inclusive. Vacío si end < start.
func Range(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil
	}
	out := make([]time.Time, 0, DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
