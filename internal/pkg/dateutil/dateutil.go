// Package dateutil works with calendar days in canonical YYYY-MM-DD form.
//
// Days are compared as strings; the format sorts lexicographically in
// calendar order, so no time zone arithmetic is involved once a day has
// been produced by a Clock.
package dateutil

import (
	"fmt"
	"sort"
	"time"
)

// Layout is the canonical calendar day format.
const Layout = time.DateOnly

// Clock supplies the current calendar day.
type Clock interface {
	Today() string
}

// SystemClock reads the wall clock in the organization's time zone.
type SystemClock struct {
	Location *time.Location
}

// Today returns the current day in c.Location (local time when nil).
func (c SystemClock) Today() string {
	now := time.Now()
	if c.Location != nil {
		now = now.In(c.Location)
	}
	return now.Format(Layout)
}

// FixedClock always reports the same day.
type FixedClock string

// Today returns the fixed day.
func (f FixedClock) Today() string {
	return string(f)
}

// Parse reads a canonical day. Non-padded or otherwise non-canonical input is rejected.
func Parse(day string) (time.Time, error) {
	t, err := time.Parse(Layout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", day)
	}
	if t.Format(Layout) != day {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", day)
	}
	return t, nil
}

// Valid reports whether day is a canonical calendar day.
func Valid(day string) bool {
	_, err := Parse(day)
	return err == nil
}

// AddDays returns the day n calendar days after day.
func AddDays(day string, n int) (string, error) {
	t, err := Parse(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(Layout), nil
}

// DaysBetween returns the whole number of days from `from` to `to`.
func DaysBetween(from, to string) (int, error) {
	f, err := Parse(from)
	if err != nil {
		return 0, err
	}
	t, err := Parse(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// Month returns the zero-based month index (January = 0).
func Month(day string) (int, error) {
	t, err := Parse(day)
	if err != nil {
		return 0, err
	}
	return int(t.Month()) - 1, nil
}

// Year returns the calendar year of day.
func Year(day string) (int, error) {
	t, err := Parse(day)
	if err != nil {
		return 0, err
	}
	return t.Year(), nil
}

// Normalize removes duplicates and sorts days ascending.
func Normalize(days []string) []string {
	seen := make(map[string]struct{}, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// LoadLocation resolves an IANA zone name, falling back to local time for "" or "Local".
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
