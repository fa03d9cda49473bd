package ratings

import (
	"livelens/internal/shared/apperrors"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ComputeOverall validates the three sub-ratings and returns their mean
// rounded half up. With three integers the mean never lands on .5, so the
// rounding direction only matters for documentation.
func ComputeOverall(visual, sound, value int) (int, error) {
	for _, r := range []struct {
		field string
		v     int
	}{
		{"rating_visual", visual},
		{"rating_sound", sound},
		{"rating_value", value},
	} {
		if r.v < MinRating || r.v > MaxRating {
			return 0, apperrors.InvalidInput(r.field, "must be between 1 and 5")
		}
	}

	// floor(sum/3 + 1/2) in integer arithmetic
	sum := visual + sound + value
	return (2*sum + 3) / 6, nil
}
