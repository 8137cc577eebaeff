package requests

import "time"

// SeatRequestResponse is a request row with its seat list decoded. Keys are
// snake_case to match the submission payload this surface documents.
type SeatRequestResponse struct {
	ID              string        `json:"id"`
	EventID         string        `json:"event_id"`
	CustomerName    string        `json:"customer_name"`
	Contact         Contact       `json:"contact"`
	SelectedSeats   []string      `json:"selected_seats"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	Status          RequestStatus `json:"status"`
	DecidedBy       string        `json:"decided_by,omitempty"`
	DecidedAt       *time.Time    `json:"decided_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// HoldResponse describes a placed hold.
type HoldResponse struct {
	HoldID    string    `json:"hold_id"`
	EventID   string    `json:"event_id"`
	SeatIDs   []string  `json:"seat_ids"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AvailabilitySets are the three seat-id sets that drive seat status
// resolution for one event.
type AvailabilitySets struct {
	Reserved []string `json:"reserved"`
	Pending  []string `json:"pending"`
	Holds    []string `json:"holds"`
}

// ToResponse decodes the row into its API shape.
func (r *SeatRequest) ToResponse() (*SeatRequestResponse, error) {
	seats, err := r.Seats()
	if err != nil {
		return nil, err
	}
	if seats == nil {
		seats = []string{}
	}

	return &SeatRequestResponse{
		ID:              r.ID.String(),
		EventID:         r.EventID.String(),
		CustomerName:    r.CustomerName,
		Contact:         Contact{Email: r.Email, Phone: r.Phone},
		SelectedSeats:   seats,
		SpecialRequests: r.SpecialRequests,
		Status:          r.Status,
		DecidedBy:       r.DecidedBy,
		DecidedAt:       r.DecidedAt,
		CreatedAt:       r.CreatedAt,
	}, nil
}
