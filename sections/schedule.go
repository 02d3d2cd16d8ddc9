package sections

import "fmt"

// Defaults used when a schedule component is missing.
const (
	DefaultHour   = 6
	DefaultMinute = 0
	DefaultSecond = 0
)

// Schedule is a wall-clock time of day at second granularity.
type Schedule struct {
	Hour   int
	Minute int
	Second int
}

func (s Schedule) String() string {
	return fmt.Sprintf("%d:%02d:%02d", s.Hour, s.Minute, s.Second)
}

// Schedule reads the stored posting time, reducing every component into
// range. Missing components take their defaults.
func (s Settings) Schedule() Schedule {
	return Schedule{
		Hour:   component(s.Hour, 24, DefaultHour),
		Minute: component(s.Minute, 60, DefaultMinute),
		Second: component(s.Second, 60, DefaultSecond),
	}
}

func component(v *int, mod, def int) int {
	if v == nil {
		return def
	}
	return Mod(*v, mod)
}

// Mod reduces v into [0, m), also for negative v.
func Mod(v, m int) int {
	return ((v % m) + m) % m
}
