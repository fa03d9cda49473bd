package testutil

import (
	"testing"
	"time"

	"livelens/internal/events"
	"livelens/internal/reviews"
	"livelens/internal/seats"
	"livelens/internal/venues"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func Float(v float64) *float64 { return &v }

func CreateVenue(t testing.TB, db *gorm.DB, name, city string, capacity int) *venues.Venue {
	t.Helper()
	v := &venues.Venue{Name: name, City: city, Capacity: capacity, Tags: datatypes.JSONSlice[string]{}}
	require.NoError(t, db.Create(v).Error)
	return v
}

func CreateEvent(t testing.TB, db *gorm.DB, venueID uuid.UUID, name, artist, genre string, date time.Time) *events.Event {
	t.Helper()
	e := &events.Event{VenueID: venueID, Name: name, Artist: artist, Genre: genre, EventDate: date}
	require.NoError(t, db.Create(e).Error)
	return e
}

func CreateSeat(t testing.TB, db *gorm.DB, venueID uuid.UUID, section, row, number string, distance *float64) *seats.Seat {
	t.Helper()
	s := &seats.Seat{ID: uuid.New(), VenueID: venueID, Section: section, Row: row, SeatNumber: number, DistanceToStage: distance}
	require.NoError(t, db.Create(s).Error)
	return s
}

// ReviewOf describes a review row written directly, bypassing submission
type ReviewOf struct {
	UserID               uuid.UUID
	Event                *events.Event
	Seat                 *seats.Seat
	Visual, Sound, Value int
	Overall              int
	PricePaid            *float64
	Text                 string
	CreatedAt            time.Time
}

func CreateReview(t testing.TB, db *gorm.DB, r ReviewOf) *reviews.Review {
	t.Helper()
	if r.UserID == uuid.Nil {
		r.UserID = uuid.New()
	}
	review := &reviews.Review{
		UserID:        r.UserID,
		EventID:       r.Event.ID,
		VenueID:       r.Event.VenueID,
		SeatID:        r.Seat.ID,
		RatingVisual:  r.Visual,
		RatingSound:   r.Sound,
		RatingValue:   r.Value,
		OverallRating: r.Overall,
		PricePaid:     r.PricePaid,
		Text:          r.Text,
		Images:        datatypes.JSONSlice[string]{},
		CreatedAt:     r.CreatedAt,
	}
	require.NoError(t, db.Create(review).Error)
	return review
}

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
