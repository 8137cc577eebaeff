package layouts

import (
	"fmt"
	"strconv"

	"stagedoor/internal/geometry"

	"github.com/google/uuid"
)

// Editor operations mutate a Document in memory. Nothing here touches
// storage: the controller decodes a row into a Document, applies operations,
// then persists the whole document in one write.

var (
	ErrElementNotFound   = fmt.Errorf("element not found")
	ErrInvalidSeatNumber = fmt.Errorf("seat number out of range")
	ErrInvalidSize       = fmt.Errorf("element size must be positive")
)

// NewElement creates an unplaced element with shape defaults applied. The
// caller places it on the canvas afterwards.
func NewElement(elementType geometry.ElementType, shape geometry.TableShape, sectionName, rowLabel string) geometry.LayoutElement {
	e := geometry.LayoutElement{
		ID:          uuid.New().String(),
		ElementType: elementType,
		SectionName: sectionName,
		RowLabel:    rowLabel,
	}
	if geometry.IsSeatBearing(&e) {
		e.TableShape = geometry.NormalizeShape(shape)
		e.TotalSeats = geometry.SeatCapacityFor(e.TableShape)
		fp := geometry.DefaultFootprint(e.TableShape)
		e.Width = fp.Width
		e.Height = fp.Height
	}
	return e
}

func findElement(doc *Document, id string) (*geometry.LayoutElement, error) {
	for i := range doc.Elements {
		if doc.Elements[i].ID == id {
			return &doc.Elements[i], nil
		}
	}
	return nil, ErrElementNotFound
}

// PlaceElement puts an element at a canvas percent position, snapping to the
// grid when one is set. Drag preview and drop both go through snapPercent so
// the visual ghost matches the committed position exactly.
func (doc *Document) PlaceElement(id string, pos geometry.Point, snap bool) error {
	e, err := findElement(doc, id)
	if err != nil {
		return err
	}

	x, y := doc.snapPercent(pos.X, pos.Y, snap)
	e.PosX = &x
	e.PosY = &y
	return nil
}

// MoveElement shifts a placed element by a screen-pixel delta. The delta is
// converted to percent through the reference canvas, then snapped the same
// way PlaceElement snaps.
func (doc *Document) MoveElement(id string, deltaX, deltaY float64, snap bool) error {
	e, err := findElement(doc, id)
	if err != nil {
		return err
	}
	if !e.Placed() {
		return fmt.Errorf("element %s is not placed", id)
	}

	px := *e.PosX
	py := *e.PosY
	if doc.Canvas.Width > 0 {
		px += deltaX / doc.Canvas.Width * 100
	}
	if doc.Canvas.Height > 0 {
		py += deltaY / doc.Canvas.Height * 100
	}

	x, y := doc.snapPercent(px, py, snap)
	e.PosX = &x
	e.PosY = &y
	return nil
}

// RotateElement turns an element by a step in degrees, keeping the stored
// angle in [0,360).
func (doc *Document) RotateElement(id string, step float64) error {
	e, err := findElement(doc, id)
	if err != nil {
		return err
	}
	e.Rotation = NormalizeRotation(e.Rotation + step)
	return nil
}

// ResizeElement sets an element's pixel footprint.
func (doc *Document) ResizeElement(id string, size geometry.Size) error {
	e, err := findElement(doc, id)
	if err != nil {
		return err
	}
	if size.Width <= 0 || size.Height <= 0 {
		return ErrInvalidSize
	}
	e.Width = size.Width
	e.Height = size.Height
	return nil
}

// RemoveElement deletes an element from the document.
func (doc *Document) RemoveElement(id string) error {
	for i := range doc.Elements {
		if doc.Elements[i].ID == id {
			doc.Elements = append(doc.Elements[:i], doc.Elements[i+1:]...)
			return nil
		}
	}
	return ErrElementNotFound
}

// SetSeatLabel sets or clears a per-seat label override. An empty label
// removes the override so the seat falls back to its generated label.
func (doc *Document) SetSeatLabel(id string, seatNumber int, label string) error {
	e, err := findElement(doc, id)
	if err != nil {
		return err
	}
	if seatNumber < 1 || seatNumber > e.TotalSeats {
		return ErrInvalidSeatNumber
	}

	key := strconv.Itoa(seatNumber)
	if label == "" {
		delete(e.SeatLabels, key)
		return nil
	}
	if e.SeatLabels == nil {
		e.SeatLabels = make(map[string]string)
	}
	e.SeatLabels[key] = label
	return nil
}

// ApplyShape changes a seat-bearing element's shape. The seat count follows
// the new shape's capacity and the footprint resets to the shape default, so
// geometry and seat identity stay consistent. Label overrides for seats that
// no longer exist are dropped.
func (doc *Document) ApplyShape(id string, shape geometry.TableShape) error {
	e, err := findElement(doc, id)
	if err != nil {
		return err
	}
	if !geometry.IsSeatBearing(e) {
		return fmt.Errorf("element %s does not carry seats", id)
	}

	e.TableShape = geometry.NormalizeShape(shape)
	e.TotalSeats = geometry.SeatCapacityFor(e.TableShape)
	fp := geometry.DefaultFootprint(e.TableShape)
	e.Width = fp.Width
	e.Height = fp.Height
	stripStaleLabels(e)
	return nil
}

// NormalizeForSave canonicalizes the whole document before it is written:
// clamps positions, normalizes rotations and shapes, and strips label
// overrides that no longer reference a real seat.
func (doc *Document) NormalizeForSave() {
	for i := range doc.Elements {
		e := &doc.Elements[i]

		if e.Placed() {
			x := ClampPercent(*e.PosX)
			y := ClampPercent(*e.PosY)
			e.PosX = &x
			e.PosY = &y
		}
		e.Rotation = NormalizeRotation(e.Rotation)

		if geometry.IsSeatBearing(e) {
			e.TableShape = geometry.NormalizeShape(e.TableShape)
			if e.TotalSeats <= 0 {
				e.TotalSeats = geometry.SeatCapacityFor(e.TableShape)
			}
		}
		stripStaleLabels(e)
	}

	doc.StagePosition.X = ClampPercent(doc.StagePosition.X)
	doc.StagePosition.Y = ClampPercent(doc.StagePosition.Y)
}

// stripStaleLabels removes seatLabels keys that are not valid seat numbers
// for the element's current seat count.
func stripStaleLabels(e *geometry.LayoutElement) {
	for key := range e.SeatLabels {
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > e.TotalSeats {
			delete(e.SeatLabels, key)
		}
	}
	if len(e.SeatLabels) == 0 {
		e.SeatLabels = nil
	}
}

// snapPercent snaps percent coordinates to the grid. The grid lives in
// percent space: gridSize 5 yields stops at 0, 5, 10, ... regardless of the
// reference canvas pixel size.
func (doc *Document) snapPercent(px, py float64, snap bool) (float64, float64) {
	if snap && doc.Canvas.GridSize > 0 {
		px = SnapToGrid(px, doc.Canvas.GridSize)
		py = SnapToGrid(py, doc.Canvas.GridSize)
	}
	return ClampPercent(px), ClampPercent(py)
}
