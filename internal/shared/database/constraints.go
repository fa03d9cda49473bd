package database

import (
	"fmt"

	"gorm.io/gorm"
)

// seatKeyIndex backs the ON CONFLICT target used by the seat resolver.
const seatKeyIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_seats_seat_key
	ON seats (venue_id, section, seat_row, seat_number)`

// MigrateConstraints adds the indexes the write path depends on. The
// statements are valid on both PostgreSQL and SQLite. Foreign keys and CHECK
// ranges come from the model tags during AutoMigrate.
func MigrateConstraints(db *gorm.DB) error {
	statements := []string{
		seatKeyIndex,
		`CREATE INDEX IF NOT EXISTS idx_reviews_seat_created ON reviews (seat_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_events_venue_date ON events (venue_id, event_date)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}
