// Package calendar counts settlement business days.
package calendar

import "time"

// Calendar decides which days settle.
type Calendar interface {
	IsBusinessDay(day time.Time) bool
}

// Weekdays treats Monday through Friday as business days. No holidays.
type Weekdays struct{}

func (Weekdays) IsBusinessDay(day time.Time) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// Date returns midnight UTC of the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day drops the clock part of t, keeping its calendar date, as UTC midnight.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return Date(y, m, d)
}

// BusinessDays counts business days in (from, to]. The result is negative
// when to is before from.
func BusinessDays(cal Calendar, from, to time.Time) int {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		return -BusinessDays(cal, to, from)
	}
	n := 0
	for d := from.AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		if cal.IsBusinessDay(d) {
			n++
		}
	}
	return n
}
