package dates

import (
	"fmt"
	"time"
)

// CalendarDate is a concrete year/month/day triple extracted from text.
type CalendarDate struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// New builds a CalendarDate, rejecting triples that do not form a valid
// Gregorian date (month 13, day 32, the 31st of a 30-day month). Invalid
// triples are discarded, never normalized.
func New(year int, month time.Month, day int) (CalendarDate, bool) {
	if year < 1 || month < time.January || month > time.December || day < 1 {
		return CalendarDate{}, false
	}
	// time.Date rolls out-of-range days over into the next month; a
	// round-trip mismatch means the triple was not a real date.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return CalendarDate{}, false
	}
	return CalendarDate{Year: year, Month: month, Day: day}, true
}

// Time returns the date at midnight UTC.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// After reports whether d is strictly later than other. A date equal to the
// cutoff is not considered after it.
func (d CalendarDate) After(other CalendarDate) bool {
	return d.Time().After(other.Time())
}

// FormatES renders the date the way es-ES toLocaleDateString does: d/m/yyyy
// without zero padding.
func (d CalendarDate) FormatES() string {
	return fmt.Sprintf("%d/%d/%d", d.Day, int(d.Month), d.Year)
}

func (d CalendarDate) String() string {
	return d.Time().Format("2006-01-02")
}
