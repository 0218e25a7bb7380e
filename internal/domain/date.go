package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a date string is not a valid YYYY-MM-DD date
var ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

// Date is a plain calendar date with explicit year, month and day components.
// There is no timezone: two Dates compare as local calendar dates, which
// avoids the off-by-one errors that come from comparing instants across
// month boundaries.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD)
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf truncates t to its calendar date
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current local calendar date
func Today() Date {
	return DateOf(time.Now())
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Date
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns the date at midnight UTC, for storage
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddMonths returns the date shifted by the given number of months. When the
// target month is shorter than the current day the day clamps to the last
// day of that month (Jan 31 + 1 month = Feb 28/29), rather than rolling over.
func (d Date) AddMonths(months int) Date {
	totalMonths := (d.Year*12 + int(d.Month) - 1) + months
	year := totalMonths / 12
	month := time.Month(totalMonths%12 + 1)

	day := d.Day
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day}
}

// AddDays returns the date shifted by the given number of days
func (d Date) AddDays(days int) Date {
	return DateOf(d.Time().AddDate(0, 0, days))
}

// DaysUntil returns the number of whole days from d to other; negative when
// other is in the past relative to d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// Before reports whether d is strictly earlier than other
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is strictly later than other
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Equal reports whether d and other are the same calendar date
func (d Date) Equal(other Date) bool {
	return d == other
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
