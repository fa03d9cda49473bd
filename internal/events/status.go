package events

import "time"

type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	StatusToday    Status = "TODAY"
	StatusPast     Status = "PAST"
)

// StatusAt classifies an event date relative to now, comparing calendar days in UTC
func StatusAt(eventDate, now time.Time) Status {
	ey, em, ed := eventDate.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	event := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)

	switch {
	case event.After(today):
		return StatusUpcoming
	case event.Equal(today):
		return StatusToday
	default:
		return StatusPast
	}
}
