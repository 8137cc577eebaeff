package geometry

import "math"

// shapeSpec is the canonical template behind a TableShape: how many seats it
// carries and the default pixel footprint of the element body.
type shapeSpec struct {
	seats  int
	width  float64
	height float64
}

var shapeSpecs = map[TableShape]shapeSpec{
	ShapeTable2:     {seats: 2, width: 80, height: 50},
	ShapeTable4:     {seats: 4, width: 110, height: 60},
	ShapeTable6:     {seats: 6, width: 150, height: 60},
	ShapeTable8:     {seats: 8, width: 190, height: 60},
	ShapeRound6:     {seats: 6, width: 100, height: 100},
	ShapeRound8:     {seats: 8, width: 120, height: 120},
	ShapeBar6:       {seats: 6, width: 180, height: 40},
	ShapeBooth4:     {seats: 4, width: 100, height: 80},
	ShapeStanding10: {seats: 10, width: 160, height: 120},
	ShapeChair:      {seats: 1, width: 32, height: 32},
}

// fallbackShape is used whenever a document carries a shape this build does
// not know. A degraded-but-usable render beats a hard error here: the data
// feeds a visual editor.
const fallbackShape = ShapeTable6

// KnownShape reports whether the shape has a registered template.
func KnownShape(shape TableShape) bool {
	_, ok := shapeSpecs[shape]
	return ok
}

// NormalizeShape maps unknown shapes to the generic rectangular 6-seat
// template so persisted documents stay canonical.
func NormalizeShape(shape TableShape) TableShape {
	if KnownShape(shape) {
		return shape
	}
	return fallbackShape
}

// SeatCapacityFor returns the canonical seat count for a shape. The editor
// uses this when the user changes shape so totalSeats stays consistent with
// the visual geometry.
func SeatCapacityFor(shape TableShape) int {
	return shapeSpecs[NormalizeShape(shape)].seats
}

// DefaultFootprint returns the default pixel footprint for a shape. Markers
// and areas size themselves explicitly and do not use this.
func DefaultFootprint(shape TableShape) Size {
	spec := shapeSpecs[NormalizeShape(shape)]
	return Size{Width: spec.width, Height: spec.height}
}

// SeatOffsetsFor returns one unit offset per seat, in seat-number order,
// relative to the element's center. Offsets are fractions of the element
// footprint: (0,0) is the center, (±0.5, ±0.5) the corners, values beyond
// ±0.5 sit just outside the body (chairs pulled up to a table edge).
//
// Rectangular tables split seats evenly front/back, round tables space them
// by angle, bars seat a single row, booths wrap three sides, standing areas
// fill a grid.
func SeatOffsetsFor(shape TableShape, totalSeats int) []Point {
	if totalSeats <= 0 {
		return nil
	}
	switch NormalizeShape(shape) {
	case ShapeRound6, ShapeRound8:
		return roundOffsets(totalSeats)
	case ShapeBar6:
		return rowOffsets(totalSeats, 0.8)
	case ShapeBooth4:
		return boothOffsets(totalSeats)
	case ShapeStanding10:
		return gridOffsets(totalSeats)
	case ShapeChair:
		return centerOffsets(totalSeats)
	default:
		return frontBackOffsets(totalSeats)
	}
}

// frontBackOffsets seats ceil(n/2) along the top edge and the rest along the
// bottom, numbering left-to-right top first.
func frontBackOffsets(n int) []Point {
	front := (n + 1) / 2
	back := n - front
	offsets := make([]Point, 0, n)
	for i := 0; i < front; i++ {
		offsets = append(offsets, Point{X: spread(i, front), Y: -0.8})
	}
	for i := 0; i < back; i++ {
		offsets = append(offsets, Point{X: spread(i, back), Y: 0.8})
	}
	return offsets
}

// roundOffsets spaces seats evenly by angle, seat 1 at twelve o'clock.
func roundOffsets(n int) []Point {
	const radius = 0.8
	offsets := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		offsets = append(offsets, Point{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		})
	}
	return offsets
}

// rowOffsets seats a single row along one edge.
func rowOffsets(n int, y float64) []Point {
	offsets := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		offsets = append(offsets, Point{X: spread(i, n), Y: y})
	}
	return offsets
}

// boothOffsets wraps one seat on each end and the remainder along the top.
func boothOffsets(n int) []Point {
	if n == 1 {
		return centerOffsets(n)
	}
	if n == 2 {
		return []Point{{X: -0.8, Y: 0}, {X: 0.8, Y: 0}}
	}
	top := n - 2
	offsets := make([]Point, 0, n)
	offsets = append(offsets, Point{X: -0.8, Y: 0})
	for i := 0; i < top; i++ {
		offsets = append(offsets, Point{X: spread(i, top), Y: -0.8})
	}
	offsets = append(offsets, Point{X: 0.8, Y: 0})
	return offsets
}

// gridOffsets fills the element body with a near-square grid, row by row.
func gridOffsets(n int) []Point {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	offsets := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		row := i / cols
		col := i % cols
		// The last row may be short; spread whatever it holds.
		inRow := cols
		if row == rows-1 {
			inRow = n - row*cols
		}
		offsets = append(offsets, Point{
			X: spread(col, inRow),
			Y: spread(row, rows) * 0.9,
		})
	}
	return offsets
}

func centerOffsets(n int) []Point {
	offsets := make([]Point, n)
	return offsets
}

// spread distributes index i of count items evenly across [-0.4, 0.4].
func spread(i, count int) float64 {
	if count <= 1 {
		return 0
	}
	return ((float64(i)+0.5)/float64(count) - 0.5) * 0.8
}
