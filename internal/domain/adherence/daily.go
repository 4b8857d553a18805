package adherence

import (
	"time"

	"medication-adherence/internal/domain/doses"
	"medication-adherence/internal/platform/dates"
)

// Day son las métricas de un día de calendario.
type Day struct {
	Date          time.Time
	TotalDoses    int
	TakenDoses    int
	MissedDoses   int
	AdherenceRate float64
}

// ComputeDaily devuelve un registro por cada día de [start, end], inclusive,
// con ceros en los días sin dosis. Dosis fuera del rango se ignoran.
func ComputeDaily(records []doses.DoseSchedule, start, end time.Time) []Day {
	days := dates.Range(start, end)
	out := make([]Day, len(days))
	index := make(map[time.Time]int, len(days))
	for i, d := range days {
		out[i] = Day{Date: d}
		index[d] = i
	}

	for _, r := range records {
		i, ok := index[dates.Day(r.ScheduledDate)]
		if !ok {
			continue
		}
		out[i].TotalDoses++
		switch r.Status {
		case doses.StatusTaken:
			out[i].TakenDoses++
		case doses.StatusMissed:
			out[i].MissedDoses++
		}
	}

	for i := range out {
		out[i].AdherenceRate = Rate(out[i].TakenDoses, out[i].TotalDoses)
	}
	return out
}
