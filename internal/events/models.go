package events

import (
	"time"

	"livelens/internal/venues"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	VenueID   uuid.UUID `json:"venue_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Artist    string    `json:"artist" gorm:"size:255;index"`
	Genre     string    `json:"genre" gorm:"size:100"`
	EventDate time.Time `json:"event_date" gorm:"type:date;not null"`
	TicketURL string    `json:"ticket_url" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Venue *venues.Venue `json:"-" gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE;"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type EventResponse struct {
	Event
	Status Status `json:"status"`
}

// SearchResult is one row of an event search
type SearchResult struct {
	ID        uuid.UUID `json:"id"`
	VenueID   uuid.UUID `json:"venue_id"`
	Name      string    `json:"name"`
	Artist    string    `json:"artist"`
	Genre     string    `json:"genre"`
	EventDate time.Time `json:"event_date"`
	TicketURL string    `json:"ticket_url"`
}
