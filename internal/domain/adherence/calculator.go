package adherence

import (
	"math"
	"sort"
	"time"

	"medication-adherence/internal/domain/doses"
	"medication-adherence/internal/platform/dates"
)

// Stats resume un historial de dosis.
type Stats struct {
	TotalDoses    int     `json:"total_doses"`
	TakenDoses    int     `json:"taken_doses"`
	MissedDoses   int     `json:"missed_doses"`
	AdherenceRate float64 `json:"adherence_rate"`
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
}

// Rate = taken/total*100 con 2 decimales; 0 si no hay dosis.
func Rate(taken, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(taken)/float64(total)*100*100) / 100
}

// ComputeStats es puro: today es la fecha de evaluación.
//
// Racha: recorriendo por fecha/hora, cada taken suma 1 si cae el mismo día o
// al día siguiente del último taken (si no, arranca en 1); cualquier otro
// status la pone en 0. Cada dosis tomada suma aparte, aunque sean del mismo día.
// La racha actual cuenta solo si el último taken es hoy o ayer.
func ComputeStats(records []doses.DoseSchedule, today time.Time) Stats {
	st := Stats{TotalDoses: len(records)}

	sorted := make([]doses.DoseSchedule, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return doses.Less(sorted[i], sorted[j]) })

	var (
		running   int
		lastTaken *time.Time
	)
	for _, d := range sorted {
		switch d.Status {
		case doses.StatusTaken:
			st.TakenDoses++
			day := dates.Day(d.ScheduledDate)
			if lastTaken == nil {
				running++
			} else if gap := dates.DaysBetween(*lastTaken, day); gap == 0 || gap == 1 {
				running++
			} else {
				running = 1
			}
			lastTaken = &day
			if running > st.LongestStreak {
				st.LongestStreak = running
			}
		case doses.StatusMissed:
			st.MissedDoses++
			running = 0
		default:
			running = 0
		}
	}

	if lastTaken != nil {
		if gap := dates.DaysBetween(*lastTaken, today); gap >= 0 && gap <= 1 {
			st.CurrentStreak = running
		}
	}

	st.AdherenceRate = Rate(st.TakenDoses, st.TotalDoses)
	return st
}
