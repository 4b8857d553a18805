package schedule

// Frequency es la cadencia de la prescripción.
type Frequency string

const (
	OnceDaily       Frequency = "once_daily"
	TwiceDaily      Frequency = "twice_daily"
	ThreeTimesDaily Frequency = "three_times_daily"
	FourTimesDaily  Frequency = "four_times_daily"
	Every6Hours     Frequency = "every_6_hours"
	Every8Hours     Frequency = "every_8_hours"
	Every12Hours    Frequency = "every_12_hours"
	AsNeeded        Frequency = "as_needed"
	Weekly          Frequency = "weekly"
	Monthly         Frequency = "monthly"
)

// TimeOfDay es una hora local HH:MM.
type TimeOfDay string

// DefaultSlot se usa para frecuencias sin mapeo (y para as_needed, como placeholder).
const DefaultSlot TimeOfDay = "08:00"

// El orden de cada lista es el orden de generación.
var timeSlots = map[Frequency][]TimeOfDay{
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

// Frequencies devuelve el set soportado, en orden fijo.
func Frequencies() []Frequency {
	return []Frequency{
		OnceDaily, TwiceDaily, ThreeTimesDaily, FourTimesDaily,
		Every6Hours, Every8Hours, Every12Hours,
		AsNeeded, Weekly, Monthly,
	}
}

// Valid indica si f está en el set soportado.
func (f Frequency) Valid() bool {
	_, ok := timeSlots[f]
	return ok
}

// TimeSlots nunca falla: una frecuencia desconocida cae en DefaultSlot.
// Devuelve una copia; el caller puede modificarla.
func TimeSlots(f Frequency) []TimeOfDay {
	slots, ok := timeSlots[f]
	if !ok {
		return []TimeOfDay{DefaultSlot}
	}
	out := make([]TimeOfDay, len(slots))
	copy(out, slots)
	return out
}
