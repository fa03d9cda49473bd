package venues

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Venue struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string                      `gorm:"not null;index" json:"name"`
	City      string                      `gorm:"not null;index" json:"city"`
	Capacity  int                         `gorm:"not null;default:0" json:"capacity"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (v *Venue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// SearchResult is one row of a venue search, with the rating rollup of the
// venue's reviewed seats.
type SearchResult struct {
	ID          uuid.UUID                   `json:"id"`
	Name        string                      `json:"name"`
	City        string                      `json:"city"`
	Capacity    int                         `json:"capacity"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Rating      *float64                    `json:"rating"`
	ReviewCount int64                       `json:"review_count"`
}
