package reviews_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"livelens/internal/events"
	"livelens/internal/ratings"
	"livelens/internal/reviews"
	"livelens/internal/search"
	"livelens/internal/seats"
	"livelens/internal/shared/apperrors"
	"livelens/internal/shared/testutil"
	"livelens/internal/venues"
	"livelens/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ratings.ReviewSubmitted
	err    error
}

func (p *recordingPublisher) PublishReviewSubmitted(_ context.Context, evt ratings.ReviewSubmitted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	db           *gorm.DB
	svc          reviews.Service
	venue        *venues.Venue
	other        *venues.Venue
	event        *events.Event
	foreignEvent *events.Event
}

func newFixture(t *testing.T, publisher ratings.Publisher) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	f := &fixture{db: db}

	f.venue = testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)
	f.other = testutil.CreateVenue(t, db, "Red Rocks", "Morrison", 9525)
	f.event = testutil.CreateEvent(t, db, f.venue.ID, "Opry Night", "Various", "Country", testutil.Date(2024, 6, 15))
	f.foreignEvent = testutil.CreateEvent(t, db, f.other.ID, "Sunrise Set", "DJ", "Electronic", testutil.Date(2024, 7, 1))

	f.svc = reviews.NewService(reviews.Deps{
		DB:               db,
		Repo:             reviews.NewRepository(db),
		Venues:           venues.NewRepository(db),
		Events:           events.NewRepository(db),
		Resolver:         seats.NewResolver(db),
		Aggregator:       ratings.NewAggregator(db, logger.NewNop()),
		Publisher:        publisher,
		Engine:           search.NewEngine(db, search.WithLogger(logger.NewNop())),
		Logger:           logger.NewNop(),
		DeferAggregation: publisher != nil,
	})
	return f
}

func (f *fixture) request(visual, sound, value int) reviews.SubmitReviewRequest {
	return reviews.SubmitReviewRequest{
		EventID:      f.event.ID.String(),
		VenueID:      f.venue.ID.String(),
		Section:      "Floor",
		Row:          "A",
		SeatNumber:   "12",
		RatingVisual: visual,
		RatingSound:  sound,
		RatingValue:  value,
	}
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func requireField(t *testing.T, err error, kind error, field string) {
	t.Helper()
	require.ErrorIs(t, err, kind)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, field, appErr.Field)
}

func TestSubmitTwoReviewsOnOneSeat(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	price := 85.0
	req := f.request(5, 4, 4)
	req.PricePaid = &price
	req.Text = "  Perfect view of the stage  "
	req.Images = []string{"https://cdn.example/reviews/a.jpg"}

	first, err := f.svc.Submit(ctx, uuid.New(), req)
	require.NoError(t, err)
	assert.True(t, first.SeatCreated)
	assert.Equal(t, 4, first.OverallRating)

	second, err := f.svc.Submit(ctx, uuid.New(), f.request(2, 2, 3))
	require.NoError(t, err)
	assert.False(t, second.SeatCreated)
	assert.Equal(t, first.SeatID, second.SeatID)
	assert.Equal(t, 2, second.OverallRating)

	var stored reviews.Review
	require.NoError(t, f.db.First(&stored, "id = ?", first.ReviewID).Error)
	assert.Equal(t, "Perfect view of the stage", stored.Text)
	assert.Equal(t, []string{"https://cdn.example/reviews/a.jpg"}, []string(stored.Images))
	assert.Equal(t, f.venue.ID, stored.VenueID)

	agg, err := ratings.NewAggregator(f.db, logger.NewNop()).Get(ctx, first.SeatID)
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.EqualValues(t, 2, agg.ReviewCount)
	assert.InDelta(t, 3.0, agg.AvgOverall, 0.001)
	assert.InDelta(t, 3.5, agg.AvgVisual, 0.001)
	require.NotNil(t, agg.AvgPricePaid)
	assert.InDelta(t, 85.0, *agg.AvgPricePaid, 0.001)

	assert.EqualValues(t, 1, f.count(t, &seats.Seat{}))
}

func TestSubmitRejectsEventAtAnotherVenue(t *testing.T) {
	f := newFixture(t, nil)

	req := f.request(4, 4, 4)
	req.EventID = f.foreignEvent.ID.String()

	_, err := f.svc.Submit(context.Background(), uuid.New(), req)
	requireField(t, err, apperrors.ErrReferential, "event_id")

	assert.Zero(t, f.count(t, &reviews.Review{}))
	assert.Zero(t, f.count(t, &seats.Seat{}))
	assert.Zero(t, f.count(t, &ratings.SeatAggregate{}))
}

func TestSubmitRejectsUnknownReferences(t *testing.T) {
	f := newFixture(t, nil)

	req := f.request(4, 4, 4)
	req.VenueID = uuid.NewString()
	_, err := f.svc.Submit(context.Background(), uuid.New(), req)
	requireField(t, err, apperrors.ErrReferential, "venue_id")

	req = f.request(4, 4, 4)
	req.EventID = uuid.NewString()
	_, err = f.svc.Submit(context.Background(), uuid.New(), req)
	requireField(t, err, apperrors.ErrReferential, "event_id")

	assert.Zero(t, f.count(t, &reviews.Review{}))
}

func TestSubmitValidatesInput(t *testing.T) {
	f := newFixture(t, nil)

	cases := []struct {
		name   string
		mutate func(*reviews.SubmitReviewRequest)
		field  string
	}{
		{"rating above range", func(r *reviews.SubmitReviewRequest) { r.RatingVisual = 6 }, "rating_visual"},
		{"rating missing", func(r *reviews.SubmitReviewRequest) { r.RatingSound = 0 }, "rating_sound"},
		{"malformed event", func(r *reviews.SubmitReviewRequest) { r.EventID = "event-1" }, "event_id"},
		{"missing section", func(r *reviews.SubmitReviewRequest) { r.Section = "" }, "section"},
		{"blank row", func(r *reviews.SubmitReviewRequest) { r.Row = "   " }, "row"},
		{"negative price", func(r *reviews.SubmitReviewRequest) { p := -1.0; r.PricePaid = &p }, "price_paid"},
		{"too many images", func(r *reviews.SubmitReviewRequest) { r.Images = make([]string, 11) }, "images"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := f.request(4, 4, 4)
			tc.mutate(&req)
			_, err := f.svc.Submit(context.Background(), uuid.New(), req)
			requireField(t, err, apperrors.ErrInvalidInput, tc.field)
		})
	}

	assert.Zero(t, f.count(t, &reviews.Review{}))
}

func TestSubmitDeferredPublishesInsteadOfAggregating(t *testing.T) {
	publisher := &recordingPublisher{}
	f := newFixture(t, publisher)

	res, err := f.svc.Submit(context.Background(), uuid.New(), f.request(3, 4, 5))
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	evt := publisher.events[0]
	assert.Equal(t, res.ReviewID, evt.ReviewID)
	assert.Equal(t, res.SeatID, evt.SeatID)
	assert.Equal(t, f.venue.ID, evt.VenueID)
	assert.Equal(t, f.event.ID, evt.EventID)

	assert.Zero(t, f.count(t, &ratings.SeatAggregate{}))
}

func TestSubmitSurvivesPublishFailure(t *testing.T) {
	f := newFixture(t, &recordingPublisher{err: errors.New("broker down")})

	res, err := f.svc.Submit(context.Background(), uuid.New(), f.request(3, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, res.OverallRating)
	assert.EqualValues(t, 1, f.count(t, &reviews.Review{}))
}

func TestSubmitWithoutStore(t *testing.T) {
	svc := reviews.NewService(reviews.Deps{Logger: logger.NewNop()})
	_, err := svc.Submit(context.Background(), uuid.New(), reviews.SubmitReviewRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}

func TestSearchBySeat(t *testing.T) {
	f := newFixture(t, nil)
	res, err := f.svc.Submit(context.Background(), uuid.New(), f.request(4, 4, 4))
	require.NoError(t, err)
	_, err = f.svc.Submit(context.Background(), uuid.New(), reviews.SubmitReviewRequest{
		EventID: f.event.ID.String(), VenueID: f.venue.ID.String(),
		Section: "Balcony", Row: "C", SeatNumber: "1",
		RatingVisual: 1, RatingSound: 1, RatingValue: 1,
	})
	require.NoError(t, err)

	page, err := f.svc.Search(context.Background(), map[string][]string{"seat_id": {res.SeatID.String()}})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, res.ReviewID, page.Results[0].ID)
	assert.Equal(t, "12", page.Results[0].SeatNumber)
}
