package requests

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Phone is required so the venue can always reach the guest; email is a
// nice-to-have. Loose format check: digits, spaces, separators, optional +.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-().]{5,19}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	}
}

// Contact carries the guest's reachable channels. Phone is the one channel
// the venue can always fall back to.
type Contact struct {
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"required,phone"`
}

// SubmitRequestRequest is the guest-facing submission payload.
type SubmitRequestRequest struct {
	EventID         string   `json:"event_id" binding:"required,uuid"`
	CustomerName    string   `json:"customer_name" binding:"required,min=1,max=120"`
	Contact         Contact  `json:"contact" binding:"required"`
	SelectedSeats   []string `json:"selected_seats" binding:"required,min=1,dive,required"`
	SpecialRequests string   `json:"special_requests" binding:"omitempty,max=1000"`

	// HoldID lets the guest's own hold not count against them during
	// conflict validation; it is released once the request lands.
	HoldID string `json:"hold_id" binding:"omitempty"`
}

// PlaceHoldRequest asks for a short-lived lock on seats while the guest
// fills in the form.
type PlaceHoldRequest struct {
	EventID string   `json:"event_id" binding:"required,uuid"`
	SeatIDs []string `json:"seat_ids" binding:"required,min=1,dive,required"`
}

// DecideRequestRequest carries the admin's decision note.
type DecideRequestRequest struct {
	Note string `json:"note" binding:"omitempty,max=500"`
}
