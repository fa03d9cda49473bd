package reviews

// SubmitReviewRequest locates the seat by venue, section, row and seat
// number. The seat is created on first reference.
type SubmitReviewRequest struct {
	EventID      string   `json:"event_id" validate:"required,uuid"`
	VenueID      string   `json:"venue_id" validate:"required,uuid"`
	Section      string   `json:"section" validate:"required,max=100"`
	Row          string   `json:"row" validate:"required,max=50"`
	SeatNumber   string   `json:"seat_number" validate:"required,max=50"`
	RatingVisual int      `json:"rating_visual" validate:"min=1,max=5"`
	RatingSound  int      `json:"rating_sound" validate:"min=1,max=5"`
	RatingValue  int      `json:"rating_value" validate:"min=1,max=5"`
	PricePaid    *float64 `json:"price_paid" validate:"omitempty,gte=0"`
	Text         string   `json:"text" validate:"max=5000"`
	Images       []string `json:"images" validate:"max=10,dive,min=1,max=1024"`
}
