package geometry

// ElementType classifies what a layout element represents on the canvas.
type ElementType string

const (
	ElementTable  ElementType = "table"
	ElementChair  ElementType = "chair"
	ElementMarker ElementType = "marker"
	ElementArea   ElementType = "area"
)

// TableShape selects the seat-geometry template for a seat-bearing element.
// The shape is not cosmetic: it fixes the canonical seat count and the
// physical arrangement of seats around the element.
type TableShape string

const (
	ShapeTable2     TableShape = "table-2"
	ShapeTable4     TableShape = "table-4"
	ShapeTable6     TableShape = "table-6"
	ShapeTable8     TableShape = "table-8"
	ShapeRound6     TableShape = "round-6"
	ShapeRound8     TableShape = "round-8"
	ShapeBar6       TableShape = "bar-6"
	ShapeBooth4     TableShape = "booth-4"
	ShapeStanding10 TableShape = "standing-10"
	ShapeChair      TableShape = "chair"
)

// Point is a 2D coordinate. Units depend on context: percent of canvas for
// element positions, unit offsets (relative to the element footprint) for
// seat placement.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a pixel-space width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LayoutElement is one placed object on the seating canvas: a table, a lone
// chair, or a decorative marker/area. Positions are percentages of the canvas
// so layouts are resolution independent; nil PosX/PosY means the element has
// not been placed yet and is excluded from the physical render.
type LayoutElement struct {
	ID          string            `json:"id"`
	ElementType ElementType       `json:"elementType"`
	SectionName string            `json:"sectionName"`
	RowLabel    string            `json:"rowLabel"`
	TableShape  TableShape        `json:"tableShape"`
	TotalSeats  int               `json:"totalSeats"`
	PosX        *float64          `json:"posX"`
	PosY        *float64          `json:"posY"`
	Rotation    float64           `json:"rotation"`
	Width       float64           `json:"width"`
	Height      float64           `json:"height"`
	SeatLabels  map[string]string `json:"seatLabels,omitempty"`
	IsActive    *bool             `json:"isActive,omitempty"`
}

// Active reports whether the element is part of the live seating surface.
// Absence of the flag means active; only an explicit false deactivates.
func (e *LayoutElement) Active() bool {
	return e.IsActive == nil || *e.IsActive
}

// Placed reports whether the element has canvas coordinates.
func (e *LayoutElement) Placed() bool {
	return e.PosX != nil && e.PosY != nil
}

// IsSeatBearing reports whether the element carries seats. Markers and areas
// are decorative and never produce seat ids.
func IsSeatBearing(e *LayoutElement) bool {
	return e.ElementType == ElementTable || e.ElementType == ElementChair
}

// HeaderLabels are the grouping labels shown above an element in guest-facing
// summaries.
type HeaderLabels struct {
	SectionLabel string `json:"sectionLabel"`
	RowLabel     string `json:"rowLabel"`
}
