package reviews

import (
	"time"

	"livelens/internal/events"
	"livelens/internal/seats"
	"livelens/internal/venues"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Review is immutable once written. OverallRating is derived from the three
// sub-ratings at submission time.
type Review struct {
	ID            uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID                   `json:"user_id" gorm:"type:uuid;not null;index"`
	EventID       uuid.UUID                   `json:"event_id" gorm:"type:uuid;not null;index"`
	VenueID       uuid.UUID                   `json:"venue_id" gorm:"type:uuid;not null;index"`
	SeatID        uuid.UUID                   `json:"seat_id" gorm:"type:uuid;not null"`
	RatingVisual  int                         `json:"rating_visual" gorm:"not null;check:chk_reviews_rating_visual,rating_visual BETWEEN 1 AND 5"`
	RatingSound   int                         `json:"rating_sound" gorm:"not null;check:chk_reviews_rating_sound,rating_sound BETWEEN 1 AND 5"`
	RatingValue   int                         `json:"rating_value" gorm:"not null;check:chk_reviews_rating_value,rating_value BETWEEN 1 AND 5"`
	OverallRating int                         `json:"overall_rating" gorm:"not null;index"`
	PricePaid     *float64                    `json:"price_paid"`
	Text          string                      `json:"text" gorm:"type:text"`
	Images        datatypes.JSONSlice[string] `json:"images"`
	CreatedAt     time.Time                   `json:"created_at" gorm:"autoCreateTime"`

	Event *events.Event `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:RESTRICT;"`
	Venue *venues.Venue `json:"-" gorm:"foreignKey:VenueID;constraint:OnDelete:RESTRICT;"`
	Seat  *seats.Seat   `json:"-" gorm:"foreignKey:SeatID;constraint:OnDelete:RESTRICT;"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SearchResult is one row of a review search, joined with its seat and event
type SearchResult struct {
	ID            uuid.UUID                   `json:"id"`
	UserID        uuid.UUID                   `json:"user_id"`
	EventID       uuid.UUID                   `json:"event_id"`
	VenueID       uuid.UUID                   `json:"venue_id"`
	SeatID        uuid.UUID                   `json:"seat_id"`
	EventName     string                      `json:"event_name"`
	Section       string                      `json:"section"`
	SeatRow       string                      `json:"row"`
	SeatNumber    string                      `json:"seat_number"`
	RatingVisual  int                         `json:"rating_visual"`
	RatingSound   int                         `json:"rating_sound"`
	RatingValue   int                         `json:"rating_value"`
	OverallRating int                         `json:"overall_rating"`
	PricePaid     *float64                    `json:"price_paid"`
	Text          string                      `json:"text"`
	Images        datatypes.JSONSlice[string] `json:"images"`
	CreatedAt     time.Time                   `json:"created_at"`
}
