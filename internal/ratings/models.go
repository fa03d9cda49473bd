package ratings

import (
	"time"

	"github.com/google/uuid"
)

// SeatAggregate is the derived summary of every review of one seat. A seat
// without reviews has no row.
type SeatAggregate struct {
	SeatID       uuid.UUID `json:"seat_id" gorm:"type:uuid;primaryKey"`
	AvgVisual    float64   `json:"avg_visual"`
	AvgSound     float64   `json:"avg_sound"`
	AvgValue     float64   `json:"avg_value"`
	AvgOverall   float64   `json:"avg_overall" gorm:"index"`
	AvgPricePaid *float64  `json:"avg_price_paid"`
	ReviewCount  int64     `json:"review_count" gorm:"not null;default:0"`
	LastUpdated  time.Time `json:"last_updated"`
}

// ReviewSubmitted is published after a review commits when aggregation is deferred
type ReviewSubmitted struct {
	ReviewID   uuid.UUID `json:"review_id"`
	SeatID     uuid.UUID `json:"seat_id"`
	VenueID    uuid.UUID `json:"venue_id"`
	EventID    uuid.UUID `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
