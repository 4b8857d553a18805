package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSlots_KnownFrequencies(t *testing.T) {
	tests := map[Frequency][]TimeOfDay{
		OnceDaily:       {"08:00"},
		TwiceDaily:      {"08:00", "20:00"},
		ThreeTimesDaily: {"08:00", "14:00", "20:00"},
		FourTimesDaily:  {"08:00", "12:00", "16:00", "20:00"},
		Every6Hours:     {"06:00", "12:00", "18:00", "00:00"},
		Every8Hours:     {"08:00", "16:00", "00:00"},
		Every12Hours:    {"08:00", "20:00"},
		AsNeeded:        {"08:00"},
		Weekly:          {"08:00"},
		Monthly:         {"08:00"},
	}

	for f, want := range tests {
		t.Run(string(f), func(t *testing.T) {
			assert.True(t, f.Valid())
			assert.Equal(t, want, TimeSlots(f))
		})
	}
	assert.Len(t, Frequencies(), len(tests))
}

// Política deliberada: frecuencia desconocida => un slot por defecto, sin error.
func TestTimeSlots_UnknownFallsBackToDefaultSlot(t *testing.T) {
	f := Frequency("every_full_moon")

	assert.False(t, f.Valid())
	assert.Equal(t, []TimeOfDay{DefaultSlot}, TimeSlots(f))
	assert.Equal(t, []TimeOfDay{"08:00"}, TimeSlots(""))
}

func TestTimeSlots_ReturnsCopy(t *testing.T) {
	s := TimeSlots(TwiceDaily)
	s[0] = "23:59"

	assert.Equal(t, TimeOfDay("08:00"), TimeSlots(TwiceDaily)[0])
}
