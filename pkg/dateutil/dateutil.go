package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format accepted in scenario files.
const DateLayout = "2006-01-02"

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// StartingAge is the age on the first withdrawal date. A zero withdrawal date means today.
func StartingAge(birthDate, firstWithdrawal time.Time) (int, error) {
	if firstWithdrawal.IsZero() {
		firstWithdrawal = time.Now().UTC()
	}
	if firstWithdrawal.Before(birthDate) {
		return 0, fmt.Errorf("first withdrawal %s precedes birth date %s",
			firstWithdrawal.Format(DateLayout), birthDate.Format(DateLayout))
	}
	return Age(birthDate, firstWithdrawal), nil
}
