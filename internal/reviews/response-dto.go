package reviews

import "github.com/google/uuid"

type SubmitReviewResponse struct {
	ReviewID      uuid.UUID `json:"review_id"`
	SeatID        uuid.UUID `json:"seat_id"`
	SeatCreated   bool      `json:"seat_created"`
	OverallRating int       `json:"overall_rating"`
}
