package database_test

import (
	"testing"

	"livelens/internal/events"
	"livelens/internal/ratings"
	"livelens/internal/reviews"
	"livelens/internal/seats"
	"livelens/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRejectsDanglingReferences(t *testing.T) {
	db := testutil.OpenDB(t)
	venue := testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)
	event := testutil.CreateEvent(t, db, venue.ID, "Opry", "Various", "Country", testutil.Date(2024, 6, 1))
	seat := testutil.CreateSeat(t, db, venue.ID, "Floor", "A", "1", nil)

	err := db.Create(&events.Event{VenueID: uuid.New(), Name: "Ghost", EventDate: testutil.Date(2024, 6, 2)}).Error
	assert.Error(t, err, "event with unknown venue")

	err = db.Create(&seats.Seat{ID: uuid.New(), VenueID: uuid.New(), Section: "Floor", Row: "A", SeatNumber: "1"}).Error
	assert.Error(t, err, "seat with unknown venue")

	review := func(mutate func(r *reviews.Review)) *reviews.Review {
		r := &reviews.Review{
			UserID:        uuid.New(),
			EventID:       event.ID,
			VenueID:       venue.ID,
			SeatID:        seat.ID,
			RatingVisual:  4,
			RatingSound:   4,
			RatingValue:   4,
			OverallRating: 4,
		}
		mutate(r)
		return r
	}
	assert.Error(t, db.Create(review(func(r *reviews.Review) { r.SeatID = uuid.New() })).Error, "review with unknown seat")
	assert.Error(t, db.Create(review(func(r *reviews.Review) { r.EventID = uuid.New() })).Error, "review with unknown event")
	assert.Error(t, db.Create(review(func(r *reviews.Review) { r.VenueID = uuid.New() })).Error, "review with unknown venue")

	err = db.Create(&ratings.SeatAggregate{SeatID: uuid.New(), AvgOverall: 3, ReviewCount: 1}).Error
	assert.Error(t, err, "aggregate of unknown seat")

	var n int64
	require.NoError(t, db.Model(&reviews.Review{}).Count(&n).Error)
	assert.Zero(t, n)

	require.NoError(t, db.Create(review(func(*reviews.Review) {})).Error)
	require.NoError(t, db.Create(&ratings.SeatAggregate{SeatID: seat.ID, AvgOverall: 4, ReviewCount: 1}).Error)
}

func TestMigrateEnforcesSeatKey(t *testing.T) {
	db := testutil.OpenDB(t)
	venue := testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)
	testutil.CreateSeat(t, db, venue.ID, "Floor", "A", "1", nil)

	err := db.Create(&seats.Seat{ID: uuid.New(), VenueID: venue.ID, Section: "Floor", Row: "A", SeatNumber: "1"}).Error
	assert.Error(t, err)
}
