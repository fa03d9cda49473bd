package seats

import (
	"time"

	"livelens/internal/ratings"
	"livelens/internal/venues"

	"github.com/google/uuid"
)

// Seat is a physical seat of a venue. (venue_id, section, seat_row,
// seat_number) is unique; see idx_seats_seat_key.
type Seat struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	VenueID         uuid.UUID `json:"venue_id" gorm:"type:uuid;not null"`
	Section         string    `json:"section" gorm:"not null;size:100"`
	Row             string    `json:"row" gorm:"column:seat_row;not null;size:50"`
	SeatNumber      string    `json:"seat_number" gorm:"not null;size:50"`
	DistanceToStage *float64  `json:"distance_to_stage"`
	CreatedAt       time.Time `json:"created_at"`

	Venue *venues.Venue `json:"-" gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;"`

	// StoredAggregate backs the seat_aggregates foreign key. Read aggregates through ratings.Aggregator.
	StoredAggregate *ratings.SeatAggregate `json:"-" gorm:"foreignKey:SeatID;constraint:OnDelete:CASCADE;"`
}

// Key identifies a seat by its physical location
type Key struct {
	VenueID    uuid.UUID
	Section    string
	Row        string
	SeatNumber string
}

// Resolution is the outcome of resolving a Key
type Resolution struct {
	SeatID  uuid.UUID
	Created bool
}

// SeatDetail is a seat with its aggregate, nil when it has no reviews
type SeatDetail struct {
	Seat
	Aggregate *ratings.SeatAggregate `json:"aggregate"`
}

// SearchResult is one row of a seat search. Aggregate columns are NULL for
// seats nobody has reviewed yet.
type SearchResult struct {
	ID              uuid.UUID `json:"id"`
	VenueID         uuid.UUID `json:"venue_id"`
	Section         string    `json:"section"`
	SeatRow         string    `json:"row"`
	SeatNumber      string    `json:"seat_number"`
	DistanceToStage *float64  `json:"distance_to_stage"`
	AvgVisual       *float64  `json:"avg_visual"`
	AvgSound        *float64  `json:"avg_sound"`
	AvgValue        *float64  `json:"avg_value"`
	AvgOverall      *float64  `json:"avg_overall"`
	AvgPricePaid    *float64  `json:"avg_price_paid"`
	ReviewCount     int64     `json:"review_count"`
}
