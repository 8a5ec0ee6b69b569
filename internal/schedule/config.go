package schedule

import "time"

type Slot struct {
	Label    string
	Capacity int
}

// Config is the capacity table handed to the scheduler. Treat it as a value:
// the scheduler keeps its own copy.
type Config struct {
	Slots         []Slot
	DailyCapacity int
	Weekdays      []time.Weekday
	HorizonDays   int
	Location      *time.Location
}

func DefaultConfig() Config {
	return Config{
		Slots: []Slot{
			{Label: "7:30 AM", Capacity: 8},
			{Label: "8:30 AM", Capacity: 8},
			{Label: "9:30 AM", Capacity: 7},
			{Label: "10:30 AM", Capacity: 7},
		},
		DailyCapacity: 30,
		Weekdays:      []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday},
		HorizonDays:   30,
		Location:      time.Local,
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Slots = append([]Slot(nil), c.Slots...)
	out.Weekdays = append([]time.Weekday(nil), c.Weekdays...)
	if out.Location == nil {
		out.Location = time.Local
	}
	return out
}
