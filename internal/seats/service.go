package seats

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"livelens/internal/ratings"
	"livelens/internal/search"
	"livelens/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Search(ctx context.Context, query url.Values) (*search.Page[SearchResult], error)
	GetByID(ctx context.Context, id string) (*SeatDetail, error)
}

type service struct {
	repo       Repository
	aggregator *ratings.Aggregator
	engine     *search.Engine
}

func NewService(repo Repository, aggregator *ratings.Aggregator, engine *search.Engine) Service {
	return &service{repo: repo, aggregator: aggregator, engine: engine}
}

func (s *service) Search(ctx context.Context, query url.Values) (*search.Page[SearchResult], error) {
	return search.Run[SearchResult](ctx, s.engine, &search.Seats, search.ParamsFromQuery(&search.Seats, query))
}

func (s *service) GetByID(ctx context.Context, id string) (*SeatDetail, error) {
	if s.repo == nil {
		return nil, apperrors.NotConfigured("database")
	}
	seatID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.InvalidInput("id", "malformed identifier")
	}

	seat, err := s.repo.GetByID(ctx, seatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("id", "seat not found")
		}
		return nil, fmt.Errorf("failed to get seat: %w", err)
	}

	agg, err := s.aggregator.Get(ctx, seatID)
	if err != nil {
		return nil, err
	}

	return &SeatDetail{Seat: *seat, Aggregate: agg}, nil
}
