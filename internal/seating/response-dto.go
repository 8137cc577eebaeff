package seating

import (
	"stagedoor/internal/availability"
	"stagedoor/internal/geometry"
	"stagedoor/internal/layouts"
)

// EventSeatingResponse is the raw seating surface for an event: the layout
// document plus the three availability sets. Clients that run their own
// renderer resolve seat status from these.
type EventSeatingResponse struct {
	Seating        []geometry.LayoutElement `json:"seating"`
	ReservedSeats  []string                 `json:"reservedSeats"`
	PendingSeats   []string                 `json:"pendingSeats"`
	HoldSeats      []string                 `json:"holdSeats"`
	SeatingEnabled bool                     `json:"seatingEnabled"`
	StagePosition  geometry.Point           `json:"stagePosition"`
	StageSize      geometry.Size            `json:"stageSize"`
	CanvasSettings layouts.CanvasSettings   `json:"canvasSettings"`
}

// RenderedSeat is one seat with its status already resolved server-side.
type RenderedSeat struct {
	SeatID        string              `json:"seatId"`
	SeatNumber    int                 `json:"seatNumber"`
	Label         string              `json:"label"`
	Status        availability.Status `json:"status"`
	Interactable  bool                `json:"interactable"`
	DisableReason availability.Reason `json:"disableReason,omitempty"`
	Position      geometry.Point      `json:"position"`
}

// RenderedElement is one placed element projected into canvas pixels.
type RenderedElement struct {
	ID           string                `json:"id"`
	ElementType  geometry.ElementType  `json:"elementType"`
	TableShape   geometry.TableShape   `json:"tableShape,omitempty"`
	HeaderLabels geometry.HeaderLabels `json:"headerLabels"`
	Center       geometry.Point        `json:"center"`
	Width        float64               `json:"width"`
	Height       float64               `json:"height"`
	Rotation     float64               `json:"rotation"`
	Seats        []RenderedSeat        `json:"seats,omitempty"`
}

// SeatingViewResponse is the fully rendered projection of an event's seating
// surface, optionally fit to a client viewport.
type SeatingViewResponse struct {
	EventID        string                 `json:"eventId"`
	SeatingEnabled bool                   `json:"seatingEnabled"`
	Elements       []RenderedElement      `json:"elements"`
	SelectedSeats  []string               `json:"selectedSeats"`
	StagePosition  geometry.Point         `json:"stagePosition"`
	StageSize      geometry.Size          `json:"stageSize"`
	CanvasSettings layouts.CanvasSettings `json:"canvasSettings"`
	Scale          float64                `json:"scale"`
	Offset         geometry.Point         `json:"offset"`
}
