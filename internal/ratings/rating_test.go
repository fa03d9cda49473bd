package ratings

import (
	"testing"

	"livelens/internal/shared/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOverall(t *testing.T) {
	cases := []struct {
		visual, sound, value int
		want                 int
	}{
		{5, 4, 3, 4},
		{3, 3, 4, 3},
		{4, 5, 4, 4},
		{1, 1, 2, 1},
		{2, 2, 3, 2},
		{1, 1, 1, 1},
		{5, 5, 5, 5},
		{1, 2, 2, 2},
		{4, 4, 5, 4},
		{4, 5, 5, 5},
	}

	for _, tc := range cases {
		got, err := ComputeOverall(tc.visual, tc.sound, tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "ratings (%d,%d,%d)", tc.visual, tc.sound, tc.value)
	}
}

func TestComputeOverallMatchesRoundHalfUpForAllInputs(t *testing.T) {
	for v := 1; v <= 5; v++ {
		for s := 1; s <= 5; s++ {
			for val := 1; val <= 5; val++ {
				got, err := ComputeOverall(v, s, val)
				require.NoError(t, err)

				mean := float64(v+s+val) / 3
				want := int(mean + 0.5)
				assert.Equal(t, want, got)
				assert.GreaterOrEqual(t, got, MinRating)
				assert.LessOrEqual(t, got, MaxRating)
			}
		}
	}
}

func TestComputeOverallRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name                 string
		visual, sound, value int
		field                string
	}{
		{"visual zero", 0, 3, 3, "rating_visual"},
		{"sound six", 3, 6, 3, "rating_sound"},
		{"value negative", 3, 3, -1, "rating_value"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeOverall(tc.visual, tc.sound, tc.value)
			require.ErrorIs(t, err, apperrors.ErrInvalidInput)

			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, appErr.Field)
		})
	}
}
