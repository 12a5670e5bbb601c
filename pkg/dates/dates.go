// Package dates resolves symbolic date specifiers, expands date-templated
// paths, and iterates calendar-day ranges.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Symbolic date specifiers accepted by Resolve.
const (
	SpecToday    = "today"
	SpecTomorrow = "tomorrow"
)

var (
	// ErrInvalidDate indicates a specifier that is neither a known token
	// nor an ISO-8601 date.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidRange indicates a range whose start is after its end.
	ErrInvalidRange = errors.New("invalid date range")
)

// Date is a calendar date without a time component. The zero value is not a
// valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a time.Time to its calendar date in the time's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// ISO returns the date formatted as YYYY-MM-DD.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// String implements fmt.Stringer.
func (d Date) String() string { return d.ISO() }

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// After reports whether d is after other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// MarshalJSON encodes the date as an ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

// UnmarshalJSON decodes an ISO date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := Resolve(s, nil)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Resolve turns a date specifier into a concrete Date. The specifier is
// either "today", "tomorrow", or an ISO-8601 date (YYYY-MM-DD). The symbolic
// tokens are resolved against the clock at call time, so resolving again
// later may yield a different date. A nil clock means time.Now.
func Resolve(spec string, now func() time.Time) (Date, error) {
	if now == nil {
		now = time.Now
	}

	switch spec {
	case SpecToday:
		return DateOf(now()), nil
	case SpecTomorrow:
		return DateOf(now()).AddDays(1), nil
	}

	t, err := time.Parse("2006-01-02", spec)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, spec)
	}
	return DateOf(t), nil
}

// ExpandPath substitutes {year}, {month} and {day} placeholders in a path
// template. Year is four digits, month and day are zero-padded to two.
// Placeholders absent from the template are simply unused.
func ExpandPath(template string, d Date) string {
	r := strings.NewReplacer(
		"{year}", fmt.Sprintf("%04d", d.Year),
		"{month}", fmt.Sprintf("%02d", int(d.Month)),
		"{day}", fmt.Sprintf("%02d", d.Day),
	)
	return r.Replace(template)
}

// Range validates an inclusive from..to interval and returns a lazy sequence
// over its days in ascending order, one calendar day apart.
func Range(from, to Date) (func(yield func(Date) bool), error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from, to)
	}

	return func(yield func(Date) bool) {
		for d := from; !d.After(to); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}, nil
}
