// Package birthdate normalizes the free-form birth dates used as a secondary identity check.
package birthdate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical representation.
const Layout = "2006-01-02"

var (
	ErrInvalidFormat = errors.New("birth date must be DD/MM/YYYY, DD-MM-YYYY or YYYY-MM-DD")
	ErrInvalidDate   = errors.New("birth date is not a valid calendar date")
)

// Date is a calendar date without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Parse extracts day, month and year from s and checks that they form a real date.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(Layout) {
		return Date{}, ErrInvalidFormat
	}

	var day, month, year string
	switch {
	case s[4] == '-' && s[7] == '-':
		year, month, day = s[0:4], s[5:7], s[8:10]
	case s[2] == '/' && s[5] == '/', s[2] == '-' && s[5] == '-':
		day, month, year = s[0:2], s[3:5], s[6:10]
	default:
		return Date{}, ErrInvalidFormat
	}

	d, err := atoi(day)
	if err != nil {
		return Date{}, err
	}
	m, err := atoi(month)
	if err != nil {
		return Date{}, err
	}
	y, err := atoi(year)
	if err != nil {
		return Date{}, err
	}

	if m < 1 || m > 12 || d < 1 || d > 31 || y < 1 {
		return Date{}, ErrInvalidDate
	}

	// time.Date normalizes overflow (31 April becomes 1 May), so compare back.
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return Date{}, ErrInvalidDate
	}

	return Date{Year: y, Month: time.Month(m), Day: d}, nil
}

// Normalize returns the canonical YYYY-MM-DD form of s.
func Normalize(s string) (string, error) {
	d, err := Parse(s)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// FromTime takes the calendar components of t as they are, without converting zones.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// After reports whether d is later than the calendar day of t.
func (d Date) After(t time.Time) bool {
	return d.Time().After(FromTime(t).Time())
}

// Equal reports whether both dates name the same day.
func (d Date) Equal(other Date) bool {
	return d == other
}

func atoi(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidFormat
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return n, nil
}
