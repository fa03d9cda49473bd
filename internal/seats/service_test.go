package seats_test

import (
	"context"
	"testing"

	"livelens/internal/ratings"
	"livelens/internal/search"
	"livelens/internal/seats"
	"livelens/internal/shared/apperrors"
	"livelens/internal/shared/testutil"
	"livelens/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByIDIncludesAggregate(t *testing.T) {
	db := testutil.OpenDB(t)
	venue := testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)
	event := testutil.CreateEvent(t, db, venue.ID, "Opry", "Various", "Country", testutil.Date(2024, 6, 1))
	reviewed := testutil.CreateSeat(t, db, venue.ID, "Floor", "A", "1", testutil.Float(12))
	quiet := testutil.CreateSeat(t, db, venue.ID, "Floor", "A", "2", nil)
	testutil.CreateReview(t, db, testutil.ReviewOf{Event: event, Seat: reviewed, Visual: 4, Sound: 4, Value: 4, Overall: 4})

	aggregator := ratings.NewAggregator(db, logger.NewNop())
	_, err := aggregator.RecomputeSeat(context.Background(), reviewed.ID, ratings.TriggerSync)
	require.NoError(t, err)

	svc := seats.NewService(seats.NewRepository(db), aggregator, search.NewEngine(db))

	detail, err := svc.GetByID(context.Background(), reviewed.ID.String())
	require.NoError(t, err)
	require.NotNil(t, detail.Aggregate)
	assert.EqualValues(t, 1, detail.Aggregate.ReviewCount)
	assert.InDelta(t, 4.0, detail.Aggregate.AvgOverall, 0.001)

	detail, err = svc.GetByID(context.Background(), quiet.ID.String())
	require.NoError(t, err)
	assert.Nil(t, detail.Aggregate)

	_, err = svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.GetByID(context.Background(), "seat-1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestServiceWithoutStore(t *testing.T) {
	svc := seats.NewService(nil, ratings.NewAggregator(nil, logger.NewNop()), search.NewEngine(nil))

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)

	_, err = svc.Search(context.Background(), map[string][]string{"venue_id": {uuid.NewString()}})
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}
