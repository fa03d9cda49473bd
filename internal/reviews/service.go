package reviews

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"livelens/internal/events"
	"livelens/internal/ratings"
	"livelens/internal/search"
	"livelens/internal/seats"
	"livelens/internal/shared/apperrors"
	"livelens/internal/venues"
	"livelens/pkg/logger"
	"livelens/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, req SubmitReviewRequest) (*SubmitReviewResponse, error)
	Search(ctx context.Context, query url.Values) (*search.Page[SearchResult], error)
}

// Deps are the collaborators of the review service. Publisher is only used
// when DeferAggregation is set.
type Deps struct {
	DB               *gorm.DB
	Repo             Repository
	Venues           venues.Repository
	Events           events.Repository
	Resolver         *seats.Resolver
	Aggregator       *ratings.Aggregator
	Publisher        ratings.Publisher
	Engine           *search.Engine
	Logger           *logger.Logger
	DeferAggregation bool
}

type service struct {
	Deps
	validate *validator.Validate
}

func NewService(deps Deps) Service {
	if deps.Logger == nil {
		deps.Logger = logger.GetDefault()
	}
	return &service{Deps: deps, validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *service) Search(ctx context.Context, query url.Values) (*search.Page[SearchResult], error) {
	return search.Run[SearchResult](ctx, s.Engine, &search.Reviews, search.ParamsFromQuery(&search.Reviews, query))
}

// Submit validates and stores a review. Venue and event checks, seat
// resolution, the insert and (in sync mode) the aggregate refresh share one
// transaction; any failure leaves no trace.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, req SubmitReviewRequest) (*SubmitReviewResponse, error) {
	if s.DB == nil {
		return nil, apperrors.NotConfigured("database")
	}

	if err := s.validateRequest(req); err != nil {
		metrics.ReviewsSubmitted.WithLabelValues("invalid").Inc()
		return nil, err
	}

	overall, err := ratings.ComputeOverall(req.RatingVisual, req.RatingSound, req.RatingValue)
	if err != nil {
		metrics.ReviewsSubmitted.WithLabelValues("invalid").Inc()
		return nil, err
	}

	// Both ids were validated as UUIDs above.
	venueID := uuid.MustParse(req.VenueID)
	eventID := uuid.MustParse(req.EventID)

	review := &Review{
		UserID:        userID,
		EventID:       eventID,
		VenueID:       venueID,
		RatingVisual:  req.RatingVisual,
		RatingSound:   req.RatingSound,
		RatingValue:   req.RatingValue,
		OverallRating: overall,
		PricePaid:     req.PricePaid,
		Text:          strings.TrimSpace(req.Text),
		Images:        datatypes.JSONSlice[string](nonNil(req.Images)),
	}

	var resolution seats.Resolution
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(ctx, tx, venueID, eventID); err != nil {
			return err
		}

		res, err := s.Resolver.WithTx(tx).Resolve(ctx, seats.Key{
			VenueID:    venueID,
			Section:    req.Section,
			Row:        req.Row,
			SeatNumber: req.SeatNumber,
		})
		if err != nil {
			return err
		}
		resolution = res
		review.SeatID = res.SeatID

		if err := s.Repo.WithTx(tx).Create(ctx, review); err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		if !s.DeferAggregation {
			if _, err := s.Aggregator.WithTx(tx).RecomputeSeat(ctx, review.SeatID, ratings.TriggerSync); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.ReviewsSubmitted.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	metrics.ReviewsSubmitted.WithLabelValues("ok").Inc()
	if resolution.Created {
		metrics.SeatsCreated.Inc()
	}
	s.Logger.LogSeatResolved(ctx, resolution.SeatID.String(), venueID.String(), resolution.Created)
	s.Logger.LogReviewSubmitted(ctx, review.ID.String(), review.SeatID.String(), userID.String(), overall)

	if s.DeferAggregation && s.Publisher != nil {
		evt := ratings.ReviewSubmitted{
			ReviewID:   review.ID,
			SeatID:     review.SeatID,
			VenueID:    venueID,
			EventID:    eventID,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.Publisher.PublishReviewSubmitted(ctx, evt); err != nil {
			s.Logger.ErrorWithContext(ctx, "failed to publish review event", err, map[string]interface{}{
				"review_id": review.ID.String(),
				"seat_id":   review.SeatID.String(),
			})
		}
	}

	s.Engine.Invalidate(ctx, search.Reviews.Name, search.Seats.Name, search.Venues.Name)

	return &SubmitReviewResponse{
		ReviewID:      review.ID,
		SeatID:        review.SeatID,
		SeatCreated:   resolution.Created,
		OverallRating: overall,
	}, nil
}

func (s *service) checkReferences(ctx context.Context, tx *gorm.DB, venueID, eventID uuid.UUID) error {
	if _, err := s.Venues.WithTx(tx).GetByID(ctx, venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Referential("venue_id", "venue not found")
		}
		return fmt.Errorf("failed to load venue: %w", err)
	}

	event, err := s.Events.WithTx(tx).GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Referential("event_id", "event not found")
		}
		return fmt.Errorf("failed to load event: %w", err)
	}
	if event.VenueID != venueID {
		return apperrors.Referential("event_id", "event does not take place at this venue")
	}
	return nil
}

// validateRequest reports the first failing field by its JSON name
func (s *service) validateRequest(req SubmitReviewRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.InvalidInput("", err.Error())
	}

	fe := verrs[0]
	field := fe.Field()

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "uuid":
		msg = "malformed identifier"
	case "min", "gte":
		msg = "must be at least " + fe.Param()
	case "max":
		msg = "must be at most " + fe.Param()
	default:
		msg = "failed " + fe.Tag() + " validation"
	}
	return apperrors.InvalidInput(field, msg)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrReferential):
		return "referential"
	case errors.Is(err, apperrors.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}

func nonNil(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
