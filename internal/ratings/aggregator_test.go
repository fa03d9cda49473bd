package ratings_test

import (
	"context"
	"testing"

	"livelens/internal/ratings"
	"livelens/internal/reviews"
	"livelens/internal/shared/apperrors"
	"livelens/internal/shared/testutil"
	"livelens/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeSeatAveragesEveryReview(t *testing.T) {
	db := testutil.OpenDB(t)
	venue := testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)
	event := testutil.CreateEvent(t, db, venue.ID, "Opry", "Various", "Country", testutil.Date(2024, 6, 1))
	seat := testutil.CreateSeat(t, db, venue.ID, "Floor", "A", "1", nil)

	testutil.CreateReview(t, db, testutil.ReviewOf{Event: event, Seat: seat, Visual: 5, Sound: 4, Value: 3, Overall: 4, PricePaid: testutil.Float(100)})
	testutil.CreateReview(t, db, testutil.ReviewOf{Event: event, Seat: seat, Visual: 3, Sound: 2, Value: 1, Overall: 2})

	aggregator := ratings.NewAggregator(db, logger.NewNop())
	agg, err := aggregator.RecomputeSeat(context.Background(), seat.ID, ratings.TriggerSync)
	require.NoError(t, err)
	require.NotNil(t, agg)

	assert.EqualValues(t, 2, agg.ReviewCount)
	assert.InDelta(t, 4.0, agg.AvgVisual, 0.001)
	assert.InDelta(t, 3.0, agg.AvgSound, 0.001)
	assert.InDelta(t, 2.0, agg.AvgValue, 0.001)
	assert.InDelta(t, 3.0, agg.AvgOverall, 0.001)
	// reviews without a price do not drag the average down
	require.NotNil(t, agg.AvgPricePaid)
	assert.InDelta(t, 100.0, *agg.AvgPricePaid, 0.001)

	stored, err := aggregator.Get(context.Background(), seat.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.EqualValues(t, 2, stored.ReviewCount)
	assert.InDelta(t, 3.0, stored.AvgOverall, 0.001)
}

func TestRecomputeSeatIsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	venue := testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)
	event := testutil.CreateEvent(t, db, venue.ID, "Opry", "Various", "Country", testutil.Date(2024, 6, 1))
	seat := testutil.CreateSeat(t, db, venue.ID, "Floor", "A", "1", nil)
	testutil.CreateReview(t, db, testutil.ReviewOf{Event: event, Seat: seat, Visual: 4, Sound: 4, Value: 5, Overall: 4})

	aggregator := ratings.NewAggregator(db, logger.NewNop())
	first, err := aggregator.RecomputeSeat(context.Background(), seat.ID, ratings.TriggerSync)
	require.NoError(t, err)
	second, err := aggregator.RecomputeSeat(context.Background(), seat.ID, ratings.TriggerBatch)
	require.NoError(t, err)

	assert.Equal(t, first.ReviewCount, second.ReviewCount)
	assert.Equal(t, first.AvgOverall, second.AvgOverall)
	assert.Nil(t, second.AvgPricePaid)

	var rows int64
	require.NoError(t, db.Model(&ratings.SeatAggregate{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestRecomputeSeatWithoutReviewsClearsAggregate(t *testing.T) {
	db := testutil.OpenDB(t)
	venue := testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)
	event := testutil.CreateEvent(t, db, venue.ID, "Opry", "Various", "Country", testutil.Date(2024, 6, 1))
	seat := testutil.CreateSeat(t, db, venue.ID, "Floor", "A", "1", nil)
	review := testutil.CreateReview(t, db, testutil.ReviewOf{Event: event, Seat: seat, Visual: 4, Sound: 4, Value: 4, Overall: 4})

	aggregator := ratings.NewAggregator(db, logger.NewNop())
	_, err := aggregator.RecomputeSeat(context.Background(), seat.ID, ratings.TriggerSync)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&reviews.Review{}, "id = ?", review.ID).Error)

	agg, err := aggregator.RecomputeSeat(context.Background(), seat.ID, ratings.TriggerBatch)
	require.NoError(t, err)
	assert.Nil(t, agg)

	stored, err := aggregator.Get(context.Background(), seat.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// a seat that never had reviews is a no-op
	agg, err = aggregator.RecomputeSeat(context.Background(), uuid.New(), ratings.TriggerBatch)
	require.NoError(t, err)
	assert.Nil(t, agg)
}

func TestRecomputeAllRepairsDrift(t *testing.T) {
	db := testutil.OpenDB(t)
	venue := testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)
	event := testutil.CreateEvent(t, db, venue.ID, "Opry", "Various", "Country", testutil.Date(2024, 6, 1))
	seatA := testutil.CreateSeat(t, db, venue.ID, "Floor", "A", "1", nil)
	seatB := testutil.CreateSeat(t, db, venue.ID, "Floor", "A", "2", nil)
	seatC := testutil.CreateSeat(t, db, venue.ID, "Floor", "A", "3", nil)

	testutil.CreateReview(t, db, testutil.ReviewOf{Event: event, Seat: seatA, Visual: 5, Sound: 5, Value: 5, Overall: 5})
	testutil.CreateReview(t, db, testutil.ReviewOf{Event: event, Seat: seatB, Visual: 1, Sound: 1, Value: 1, Overall: 1})

	// stale row for a seat whose reviews are gone
	require.NoError(t, db.Create(&ratings.SeatAggregate{SeatID: seatC.ID, AvgOverall: 3, ReviewCount: 7}).Error)

	aggregator := ratings.NewAggregator(db, logger.NewNop())
	processed, err := aggregator.RecomputeAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, processed)

	var aggs []ratings.SeatAggregate
	require.NoError(t, db.Order("avg_overall DESC").Find(&aggs).Error)
	require.Len(t, aggs, 2)
	assert.Equal(t, seatA.ID, aggs[0].SeatID)
	assert.Equal(t, seatB.ID, aggs[1].SeatID)

	job := ratings.NewBatchJob(aggregator, 0, logger.NewNop())
	assert.Equal(t, 2, job.RunOnce(context.Background()))
}

func TestAggregatorWithoutStore(t *testing.T) {
	aggregator := ratings.NewAggregator(nil, logger.NewNop())

	_, err := aggregator.RecomputeSeat(context.Background(), uuid.New(), ratings.TriggerSync)
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)

	_, err = aggregator.RecomputeAll(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}
