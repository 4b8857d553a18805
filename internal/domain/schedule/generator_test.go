package schedule

import (
	"testing"
	"time"

	"medication-adherence/internal/platform/dates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func TestExpand_TwiceDailyThreeDays(t *testing.T) {
	w := Window{
		Start:     dates.MustParse("2024-01-01"),
		End:       ptr(dates.MustParse("2024-01-03")),
		Frequency: TwiceDaily,
	}

	got := Expand(w, dates.MustParse("2030-06-01"), 0)
	require.Len(t, got, 6)

	want := []Slot{
		{dates.MustParse("2024-01-01"), "08:00"},
		{dates.MustParse("2024-01-01"), "20:00"},
		{dates.MustParse("2024-01-02"), "08:00"},
		{dates.MustParse("2024-01-02"), "20:00"},
		{dates.MustParse("2024-01-03"), "08:00"},
		{dates.MustParse("2024-01-03"), "20:00"},
	}
	assert.Equal(t, want, got)
}

func TestExpand_WeeklyInclusiveBound(t *testing.T) {
	w := Window{
		Start:     dates.MustParse("2024-01-01"),
		End:       ptr(dates.MustParse("2024-01-22")),
		Frequency: Weekly,
	}

	got := Expand(w, dates.MustParse("2024-01-01"), 0)
	require.Len(t, got, 4)

	var days []string
	for _, s := range got {
		days = append(days, dates.Format(s.Date))
		assert.Equal(t, TimeOfDay("08:00"), s.Time)
	}
	assert.Equal(t, []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"}, days)
}

func TestExpand_MonthlyUsesThirtyDaySteps(t *testing.T) {
	w := Window{
		Start:     dates.MustParse("2024-01-31"),
		End:       ptr(dates.MustParse("2024-04-30")),
		Frequency: Monthly,
	}

	got := Expand(w, dates.MustParse("2024-01-01"), 0)

	var days []string
	for _, s := range got {
		days = append(days, dates.Format(s.Date))
	}
	assert.Equal(t, []string{"2024-01-31", "2024-03-01", "2024-03-31", "2024-04-30"}, days)
}

func TestExpand_OpenEndedUsesDefaultHorizon(t *testing.T) {
	today := dates.MustParse("2024-05-10")
	w := Window{Start: today, Frequency: OnceDaily}

	got := Expand(w, today, 0)

	require.Len(t, got, DefaultHorizonDays+1)
	assert.Equal(t, today, got[0].Date)
	assert.Equal(t, dates.AddDays(today, DefaultHorizonDays), got[len(got)-1].Date)
}

func TestExpand_CustomHorizon(t *testing.T) {
	today := dates.MustParse("2024-05-10")
	w := Window{Start: today, Frequency: FourTimesDaily}

	got := Expand(w, today, 2)

	assert.Len(t, got, 3*4)
}

func TestExpand_AsNeededMaterializesPlaceholder(t *testing.T) {
	w := Window{
		Start:     dates.MustParse("2024-02-01"),
		End:       ptr(dates.MustParse("2024-02-02")),
		Frequency: AsNeeded,
	}

	got := Expand(w, dates.MustParse("2024-02-01"), 0)

	assert.Equal(t, []Slot{
		{dates.MustParse("2024-02-01"), "08:00"},
		{dates.MustParse("2024-02-02"), "08:00"},
	}, got)
}

func TestExpand_EndBeforeStartIsEmpty(t *testing.T) {
	w := Window{
		Start:     dates.MustParse("2024-02-10"),
		End:       ptr(dates.MustParse("2024-02-01")),
		Frequency: OnceDaily,
	}

	assert.Empty(t, Expand(w, dates.MustParse("2024-02-01"), 0))
}

func TestExpand_StartAfterOpenHorizonIsEmpty(t *testing.T) {
	today := dates.MustParse("2024-01-01")
	w := Window{Start: dates.AddDays(today, 200), Frequency: OnceDaily}

	assert.Empty(t, Expand(w, today, 0))
}

func TestExpand_NormalizesTimeComponent(t *testing.T) {
	start := time.Date(2024, 3, 1, 17, 45, 0, 0, time.UTC)
	w := Window{Start: start, End: ptr(start), Frequency: OnceDaily}

	got := Expand(w, start, 0)

	require.Len(t, got, 1)
	assert.Equal(t, dates.MustParse("2024-03-01"), got[0].Date)
}

func TestFrom_KeepsSeriesAlignment(t *testing.T) {
	w := Window{
		Start:     dates.MustParse("2024-01-01"),
		End:       ptr(dates.MustParse("2024-03-01")),
		Frequency: Weekly,
	}

	got := From(w, dates.MustParse("2024-01-10"))
	assert.Equal(t, "2024-01-15", dates.Format(got.Start))
	assert.Equal(t, w.End, got.End)

	// cae justo en la serie
	got = From(w, dates.MustParse("2024-01-08"))
	assert.Equal(t, "2024-01-08", dates.Format(got.Start))

	// from antes de start no mueve nada
	got = From(w, dates.MustParse("2023-12-01"))
	assert.Equal(t, "2024-01-01", dates.Format(got.Start))
}

func TestFrom_MonthlyFixedStep(t *testing.T) {
	w := Window{Start: dates.MustParse("2024-01-01"), Frequency: Monthly}

	got := From(w, dates.MustParse("2024-02-15"))
	assert.Equal(t, "2024-03-01", dates.Format(got.Start)) // +60 días
}

func TestSpan(t *testing.T) {
	w := Window{
		Start:     dates.MustParse("2024-01-01"),
		End:       ptr(dates.MustParse("2024-01-03")),
		Frequency: OnceDaily,
	}
	assert.Equal(t, 3, Span(w, dates.MustParse("2030-01-01"), 0))

	open := Window{Start: dates.MustParse("2024-01-01"), Frequency: OnceDaily}
	assert.Equal(t, 101, Span(open, dates.MustParse("2024-01-11"), 90))

	far := Window{
		Start:     dates.MustParse("1000-01-01"),
		End:       ptr(dates.MustParse("9999-12-31")),
		Frequency: Every6Hours,
	}
	assert.Greater(t, Span(far, dates.MustParse("2024-01-01"), 0), MaxWindowDays)

	inverted := Window{
		Start:     dates.MustParse("2024-01-05"),
		End:       ptr(dates.MustParse("2024-01-01")),
		Frequency: OnceDaily,
	}
	assert.Equal(t, 0, Span(inverted, dates.MustParse("2024-01-01"), 0))
}
