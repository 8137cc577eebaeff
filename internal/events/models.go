package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a scheduled happening at the venue. LayoutID points at the
// template layout the event uses until a snapshot is taken; nil falls back
// to the venue default.
type Event struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Description    string     `json:"description,omitempty"`
	StartsAt       time.Time  `gorm:"not null;index" json:"startsAt"`
	SeatingEnabled bool       `gorm:"default:true" json:"seatingEnabled"`
	LayoutID       *uuid.UUID `gorm:"type:uuid" json:"layoutId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
