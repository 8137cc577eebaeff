package requests

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SeatRequest is one guest reservation request. Guests are anonymous: the
// row carries contact details instead of a user id, and phone is the one
// mandatory channel for the venue to reach them.
type SeatRequest struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;index" json:"eventId"`

	CustomerName    string         `gorm:"not null" json:"customerName"`
	Email           string         `json:"email,omitempty"`
	Phone           string         `gorm:"not null" json:"phone"`
	SelectedSeats   datatypes.JSON `gorm:"type:jsonb;not null" json:"selectedSeats"`
	SpecialRequests string         `json:"specialRequests,omitempty"`

	Status    RequestStatus `gorm:"type:varchar(16);default:'PENDING';index" json:"status"`
	DecidedBy string        `json:"decidedBy,omitempty"`
	DecidedAt *time.Time    `json:"decidedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Seats decodes the selected seat ids.
func (r *SeatRequest) Seats() ([]string, error) {
	if len(r.SelectedSeats) == 0 {
		return nil, nil
	}
	var seats []string
	if err := json.Unmarshal(r.SelectedSeats, &seats); err != nil {
		return nil, fmt.Errorf("failed to decode selected seats: %w", err)
	}
	return seats, nil
}

// SetSeats encodes the selected seat ids.
func (r *SeatRequest) SetSeats(seats []string) error {
	data, err := json.Marshal(seats)
	if err != nil {
		return fmt.Errorf("failed to encode selected seats: %w", err)
	}
	r.SelectedSeats = datatypes.JSON(data)
	return nil
}
