package database

import (
	"fmt"

	"livelens/internal/events"
	"livelens/internal/ratings"
	"livelens/internal/reviews"
	"livelens/internal/seats"
	"livelens/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&venues.Venue{},
		&events.Event{},
		&seats.Seat{},
		&reviews.Review{},
		&ratings.SeatAggregate{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return MigrateConstraints(db)
}
