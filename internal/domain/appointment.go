package domain

import "time"

// Appointment is one bookable unit from the upstream CRM.
// StartAt carries the pool location; the upstream value has no zone.
type Appointment struct {
	ID        string
	ServiceID string
	StartAt   time.Time
	Location  string
	Title     string
}

// Date returns the calendar date of the appointment (midnight, same location)
func (a *Appointment) Date() time.Time {
	return DateOf(a.StartAt)
}

// Hour returns the hour of day the appointment starts in
func (a *Appointment) Hour() int {
	return a.StartAt.Hour()
}

// DateOf truncates t to midnight in its own location
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two times fall on the same calendar date
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
