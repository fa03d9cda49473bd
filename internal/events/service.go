package events

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"livelens/internal/search"
	"livelens/internal/shared/apperrors"
	"livelens/internal/venues"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Search(ctx context.Context, query url.Values) (*search.Page[SearchResult], error)
	GetByID(ctx context.Context, id string) (*EventResponse, error)
	Create(ctx context.Context, req CreateEventRequest) (*Event, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	venueRepo venues.Repository
	engine    *search.Engine
	now       func() time.Time
}

func NewService(db *gorm.DB, repo Repository, venueRepo venues.Repository, engine *search.Engine) Service {
	return &service{db: db, repo: repo, venueRepo: venueRepo, engine: engine, now: time.Now}
}

func (s *service) Search(ctx context.Context, query url.Values) (*search.Page[SearchResult], error) {
	return search.Run[SearchResult](ctx, s.engine, &search.Events, search.ParamsFromQuery(&search.Events, query))
}

func (s *service) GetByID(ctx context.Context, id string) (*EventResponse, error) {
	if s.db == nil {
		return nil, apperrors.NotConfigured("database")
	}
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.InvalidInput("id", "malformed identifier")
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("id", "event not found")
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &EventResponse{Event: *event, Status: StatusAt(event.EventDate, s.now())}, nil
}

// Create inserts an event after checking, in the same transaction, that its
// venue exists.
func (s *service) Create(ctx context.Context, req CreateEventRequest) (*Event, error) {
	if s.db == nil {
		return nil, apperrors.NotConfigured("database")
	}

	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, apperrors.InvalidInput("venue_id", "malformed identifier")
	}
	date, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, apperrors.InvalidInput("event_date", "must be a date formatted YYYY-MM-DD")
	}

	event := &Event{
		VenueID:   venueID,
		Name:      strings.TrimSpace(req.Name),
		Artist:    strings.TrimSpace(req.Artist),
		Genre:     strings.TrimSpace(req.Genre),
		EventDate: date,
		TicketURL: strings.TrimSpace(req.TicketURL),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.venueRepo.WithTx(tx).GetByID(ctx, venueID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Referential("venue_id", "venue not found")
			}
			return fmt.Errorf("failed to check venue: %w", err)
		}
		return s.repo.WithTx(tx).Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.engine.Invalidate(ctx, search.Events.Name)
	return event, nil
}
