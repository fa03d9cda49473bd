package seats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"livelens/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// upsertSeatSQL inserts the seat or, when the key already exists, touches the
// existing row so RETURNING yields its id. Concurrent callers with the same
// key serialise on the unique index and all receive one id.
const upsertSeatSQL = `INSERT INTO seats (id, venue_id, section, seat_row, seat_number, created_at)
VALUES (@id, @venue_id, @section, @seat_row, @seat_number, @created_at)
ON CONFLICT (venue_id, section, seat_row, seat_number)
DO UPDATE SET section = excluded.section
RETURNING id`

// Resolver maps a physical seat location to a seat id, creating the seat on
// first reference.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// WithTx returns a resolver running inside tx
func (r *Resolver) WithTx(tx *gorm.DB) *Resolver {
	return &Resolver{db: tx}
}

// Resolve returns the id of the seat at key. Section, row and seat number are
// trimmed and must be non-empty.
func (r *Resolver) Resolve(ctx context.Context, key Key) (Resolution, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return Resolution{}, err
	}

	proposed := uuid.New()
	args := map[string]interface{}{
		"id":          proposed,
		"venue_id":    key.VenueID,
		"section":     key.Section,
		"seat_row":    key.Row,
		"seat_number": key.SeatNumber,
		"created_at":  time.Now().UTC(),
	}

	var seatID uuid.UUID
	if err := r.db.WithContext(ctx).Raw(upsertSeatSQL, args).Row().Scan(&seatID); err != nil {
		return Resolution{}, fmt.Errorf("failed to resolve seat: %w", err)
	}

	return Resolution{SeatID: seatID, Created: seatID == proposed}, nil
}

func normalizeKey(key Key) (Key, error) {
	if key.VenueID == uuid.Nil {
		return Key{}, apperrors.InvalidInput("venue_id", "is required")
	}
	key.Section = strings.TrimSpace(key.Section)
	key.Row = strings.TrimSpace(key.Row)
	key.SeatNumber = strings.TrimSpace(key.SeatNumber)

	switch {
	case key.Section == "":
		return Key{}, apperrors.InvalidInput("section", "is required")
	case key.Row == "":
		return Key{}, apperrors.InvalidInput("row", "is required")
	case key.SeatNumber == "":
		return Key{}, apperrors.InvalidInput("seat_number", "is required")
	}
	return key, nil
}
