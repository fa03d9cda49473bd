package events_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"livelens/internal/events"
	"livelens/internal/search"
	"livelens/internal/shared/apperrors"
	"livelens/internal/shared/testutil"
	"livelens/internal/venues"
	"livelens/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (events.Service, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	engine := search.NewEngine(db, search.WithLogger(logger.NewNop()))
	return events.NewService(db, events.NewRepository(db), venues.NewRepository(db), engine), db
}

func TestCreateEvent(t *testing.T) {
	svc, db := newService(t)
	venue := testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)
	ctx := context.Background()

	event, err := svc.Create(ctx, events.CreateEventRequest{
		VenueID:   venue.ID.String(),
		Name:      " Opry Night ",
		Artist:    "Various",
		Genre:     "Country",
		EventDate: "2031-03-14",
	})
	require.NoError(t, err)
	assert.Equal(t, "Opry Night", event.Name)

	got, err := svc.GetByID(ctx, event.ID.String())
	require.NoError(t, err)
	assert.Equal(t, venue.ID, got.VenueID)
	assert.Equal(t, events.StatusUpcoming, got.Status)
	assert.True(t, got.EventDate.Equal(time.Date(2031, 3, 14, 0, 0, 0, 0, time.UTC)))

	page, err := svc.Search(ctx, url.Values{"venue_id": {venue.ID.String()}})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, event.ID, page.Results[0].ID)
}

func TestCreateEventRejectsMissingVenue(t *testing.T) {
	svc, db := newService(t)

	_, err := svc.Create(context.Background(), events.CreateEventRequest{
		VenueID:   uuid.NewString(),
		Name:      "Ghost Show",
		EventDate: "2031-03-14",
	})
	require.ErrorIs(t, err, apperrors.ErrReferential)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "venue_id", appErr.Field)

	var n int64
	require.NoError(t, db.Model(&events.Event{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateEventInputErrors(t *testing.T) {
	svc, db := newService(t)
	venue := testutil.CreateVenue(t, db, "Ryman", "Nashville", 2362)

	_, err := svc.Create(context.Background(), events.CreateEventRequest{VenueID: "nope", Name: "x", EventDate: "2031-03-14"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Create(context.Background(), events.CreateEventRequest{VenueID: venue.ID.String(), Name: "x", EventDate: "14/03/2031"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	nilSvc := events.NewService(nil, nil, nil, search.NewEngine(nil))
	_, err = nilSvc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}
