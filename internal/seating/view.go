package seating

import (
	"math"

	"stagedoor/internal/availability"
	"stagedoor/internal/geometry"
	"stagedoor/internal/layouts"
)

// ViewOptions controls how the rendered projection is built.
type ViewOptions struct {
	// Viewport, when set, fits the canvas into the given pixel box.
	Viewport *geometry.Size
	// Interactive includes per-seat interactable/disable-reason fields.
	Interactive bool
	// Selected are seat ids the requesting guest currently has picked.
	Selected []string
}

// Sets bundles the three availability snapshots for one event.
type Sets struct {
	Reserved []string `json:"reserved"`
	Pending  []string `json:"pending"`
	Holds    []string `json:"holds"`
}

// BuildSeatingView projects a layout document into canvas pixels with every
// seat's status resolved. Inactive and unplaced elements are skipped. All
// status decisions go through the availability resolver so this stays a pure
// projection with no policy of its own.
func BuildSeatingView(doc *layouts.Document, sets Sets, opts ViewOptions) []RenderedElement {
	reserved := availability.NewSeatSet(sets.Reserved...)
	pending := availability.NewSeatSet(sets.Pending...)
	holds := availability.NewSeatSet(sets.Holds...)
	selected := availability.NewSeatSet(opts.Selected...)

	rendered := make([]RenderedElement, 0, len(doc.Elements))
	for i := range doc.Elements {
		e := &doc.Elements[i]
		if !e.Active() || !e.Placed() {
			continue
		}

		center := geometry.Point{
			X: *e.PosX / 100 * doc.Canvas.Width,
			Y: *e.PosY / 100 * doc.Canvas.Height,
		}

		re := RenderedElement{
			ID:           e.ID,
			ElementType:  e.ElementType,
			HeaderLabels: geometry.HeaderLabelsFor(e),
			Center:       center,
			Width:        e.Width,
			Height:       e.Height,
			Rotation:     e.Rotation,
		}

		if geometry.IsSeatBearing(e) {
			re.TableShape = e.TableShape
			re.Seats = renderSeats(e, center, reserved, pending, holds, selected, opts.Interactive)
		}

		rendered = append(rendered, re)
	}
	return rendered
}

func renderSeats(e *geometry.LayoutElement, center geometry.Point, reserved, pending, holds, selected availability.SeatSet, interactive bool) []RenderedSeat {
	offsets := geometry.SeatOffsetsFor(e.TableShape, e.TotalSeats)
	seats := make([]RenderedSeat, 0, len(offsets))

	sin, cos := math.Sincos(e.Rotation * math.Pi / 180)

	for i, off := range offsets {
		seatNumber := i + 1
		seatID := geometry.SeatID(e.SectionName, e.RowLabel, seatNumber)

		// Offset fractions scale with the element footprint, then rotate
		// with the element around its center.
		dx := off.X * e.Width
		dy := off.Y * e.Height
		pos := geometry.Point{
			X: center.X + dx*cos - dy*sin,
			Y: center.Y + dx*sin + dy*cos,
		}

		status := availability.ResolveStatus(seatID, reserved, pending, holds, selected)
		seat := RenderedSeat{
			SeatID:     seatID,
			SeatNumber: seatNumber,
			Label:      geometry.SeatLabelFor(e, seatNumber),
			Status:     status,
			Position:   pos,
		}
		if interactive {
			seat.Interactable = availability.IsInteractable(status)
			seat.DisableReason = availability.DisableReasonFor(seatID, reserved, pending, holds)
		}
		seats = append(seats, seat)
	}
	return seats
}
