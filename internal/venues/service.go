package venues

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"livelens/internal/search"
	"livelens/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service interface {
	Search(ctx context.Context, query url.Values) (*search.Page[SearchResult], error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	Create(ctx context.Context, req CreateVenueRequest) (*Venue, error)
}

type service struct {
	repo   Repository
	engine *search.Engine
}

// NewService wires the venue service. repo may be nil when the store is not
// configured.
func NewService(repo Repository, engine *search.Engine) Service {
	return &service{repo: repo, engine: engine}
}

func (s *service) Search(ctx context.Context, query url.Values) (*search.Page[SearchResult], error) {
	return search.Run[SearchResult](ctx, s.engine, &search.Venues, search.ParamsFromQuery(&search.Venues, query))
}

func (s *service) GetByID(ctx context.Context, id string) (*Venue, error) {
	if s.repo == nil {
		return nil, apperrors.NotConfigured("database")
	}
	venueID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.InvalidInput("id", "malformed identifier")
	}

	venue, err := s.repo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("id", "venue not found")
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return venue, nil
}

func (s *service) Create(ctx context.Context, req CreateVenueRequest) (*Venue, error) {
	if s.repo == nil {
		return nil, apperrors.NotConfigured("database")
	}

	venue := &Venue{
		Name:     strings.TrimSpace(req.Name),
		City:     strings.TrimSpace(req.City),
		Capacity: req.Capacity,
		Tags:     datatypes.JSONSlice[string](normalizeTags(req.Tags)),
	}
	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	s.engine.Invalidate(ctx, search.Venues.Name)
	return venue, nil
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
