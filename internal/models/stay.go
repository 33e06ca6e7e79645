package models

import "time"

const DateLayout = "2006-01-02"

// Stay is a half-open date interval [CheckIn, CheckOut): the night of
// check-out is not occupied, so a check-out and a new check-in on the same
// day never collide.
type Stay struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// Day truncates t to a calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date at midnight UTC.
func Today() time.Time {
	return Day(time.Now().UTC())
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func NewStay(checkIn, checkOut time.Time) Stay {
	return Stay{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
}

// Valid reports whether the interval covers at least one night.
func (s Stay) Valid() bool {
	return s.CheckOut.After(s.CheckIn)
}

// Nights is the number of occupied nights.
func (s Stay) Nights() int {
	return int(s.CheckOut.Sub(s.CheckIn).Hours() / 24)
}

// Overlaps reports whether two stays share at least one night.
func (s Stay) Overlaps(other Stay) bool {
	return s.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(s.CheckOut)
}

// ContainsDay reports whether the room is occupied on the given date.
func (s Stay) ContainsDay(day time.Time) bool {
	d := Day(day)
	return !d.Before(s.CheckIn) && d.Before(s.CheckOut)
}
