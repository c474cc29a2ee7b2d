package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Day is one of the seven fixed schedule keys. The numbering matches time.Weekday.
type Day int

const (
	Sunday Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [...]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// Days returns the full week, Sunday first.
func Days() []Day {
	return []Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

func (d Day) Valid() bool { return d >= Sunday && d <= Saturday }

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay resolves a day name case-insensitively.
func ParseDay(name string) (Day, error) {
	trimmed := strings.TrimSpace(name)
	for i, n := range dayNames {
		if strings.EqualFold(n, trimmed) {
			return Day(i), nil
		}
	}
	return 0, &NotFoundError{Day: name}
}

// DayOf returns the day of the week of t in t's location.
func DayOf(t time.Time) Day {
	return Day(t.Weekday())
}

// NotFoundError reports a day outside the seven-value enumeration.
type NotFoundError struct {
	Day string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schedule: unknown day %q", e.Day)
}
