package seats_test

import (
	"context"
	"sync"
	"testing"

	"livelens/internal/seats"
	"livelens/internal/shared/apperrors"
	"livelens/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCreatesOnceThenReuses(t *testing.T) {
	db := testutil.OpenDB(t)
	venue := testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)
	resolver := seats.NewResolver(db)
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, seats.Key{VenueID: venue.ID, Section: "Floor", Row: "A", SeatNumber: "12"})
	require.NoError(t, err)
	assert.True(t, first.Created)

	again, err := resolver.Resolve(ctx, seats.Key{VenueID: venue.ID, Section: "  Floor ", Row: "A ", SeatNumber: " 12"})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, first.SeatID, again.SeatID)

	var count int64
	require.NoError(t, db.Model(&seats.Seat{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored seats.Seat
	require.NoError(t, db.First(&stored, "id = ?", first.SeatID).Error)
	assert.Equal(t, "Floor", stored.Section)
	assert.Equal(t, "A", stored.Row)
	assert.Equal(t, "12", stored.SeatNumber)
	assert.Nil(t, stored.DistanceToStage)
}

func TestResolveDistinguishesKeys(t *testing.T) {
	db := testutil.OpenDB(t)
	venueA := testutil.CreateVenue(t, db, "A", "X", 1)
	venueB := testutil.CreateVenue(t, db, "B", "X", 1)
	resolver := seats.NewResolver(db)
	ctx := context.Background()

	keys := []seats.Key{
		{VenueID: venueA.ID, Section: "Floor", Row: "A", SeatNumber: "1"},
		{VenueID: venueA.ID, Section: "Floor", Row: "A", SeatNumber: "2"},
		{VenueID: venueA.ID, Section: "Floor", Row: "B", SeatNumber: "1"},
		{VenueID: venueA.ID, Section: "Balcony", Row: "A", SeatNumber: "1"},
		{VenueID: venueB.ID, Section: "Floor", Row: "A", SeatNumber: "1"},
	}
	ids := map[uuid.UUID]bool{}
	for _, k := range keys {
		res, err := resolver.Resolve(ctx, k)
		require.NoError(t, err)
		assert.True(t, res.Created)
		ids[res.SeatID] = true
	}
	assert.Len(t, ids, len(keys))
}

func TestResolveConcurrentCallersShareOneSeat(t *testing.T) {
	db := testutil.OpenDB(t)
	venue := testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)
	resolver := seats.NewResolver(db)
	key := seats.Key{VenueID: venue.ID, Section: "Floor", Row: "A", SeatNumber: "1"}

	const workers = 8
	results := make([]seats.Resolution, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = resolver.Resolve(context.Background(), key)
		}(i)
	}
	wg.Wait()

	created := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].SeatID, results[i].SeatID)
		if results[i].Created {
			created++
		}
	}
	assert.Equal(t, 1, created)
}

func TestResolveRejectsIncompleteKeys(t *testing.T) {
	db := testutil.OpenDB(t)
	resolver := seats.NewResolver(db)
	venueID := uuid.New()

	cases := []struct {
		key   seats.Key
		field string
	}{
		{seats.Key{Section: "Floor", Row: "A", SeatNumber: "1"}, "venue_id"},
		{seats.Key{VenueID: venueID, Section: "  ", Row: "A", SeatNumber: "1"}, "section"},
		{seats.Key{VenueID: venueID, Section: "Floor", Row: "", SeatNumber: "1"}, "row"},
		{seats.Key{VenueID: venueID, Section: "Floor", Row: "A", SeatNumber: "\t"}, "seat_number"},
	}
	for _, tc := range cases {
		_, err := resolver.Resolve(context.Background(), tc.key)
		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, tc.field, appErr.Field)
	}
}
