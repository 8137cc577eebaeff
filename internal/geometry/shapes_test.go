package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatCapacityFor(t *testing.T) {
	assert.Equal(t, 2, SeatCapacityFor(ShapeTable2))
	assert.Equal(t, 8, SeatCapacityFor(ShapeRound8))
	assert.Equal(t, 6, SeatCapacityFor(ShapeBar6))
	assert.Equal(t, 4, SeatCapacityFor(ShapeBooth4))
	assert.Equal(t, 10, SeatCapacityFor(ShapeStanding10))
	assert.Equal(t, 1, SeatCapacityFor(ShapeChair))
}

func TestUnknownShapeFallsBack(t *testing.T) {
	assert.Equal(t, ShapeTable6, NormalizeShape(TableShape("hexagon-12")))
	assert.Equal(t, 6, SeatCapacityFor(TableShape("hexagon-12")))

	fp := DefaultFootprint(TableShape(""))
	assert.Equal(t, DefaultFootprint(ShapeTable6), fp)
}

func TestSeatOffsetsCountMatches(t *testing.T) {
	for _, shape := range []TableShape{
		ShapeTable2, ShapeTable4, ShapeTable6, ShapeTable8,
		ShapeRound6, ShapeRound8, ShapeBar6, ShapeBooth4,
		ShapeStanding10, ShapeChair,
	} {
		n := SeatCapacityFor(shape)
		assert.Len(t, SeatOffsetsFor(shape, n), n, "shape %s", shape)
	}

	assert.Nil(t, SeatOffsetsFor(ShapeTable6, 0))
	assert.Nil(t, SeatOffsetsFor(ShapeTable6, -1))
}

func TestRectangularSeatsSplitFrontBack(t *testing.T) {
	offsets := SeatOffsetsFor(ShapeTable6, 6)
	require.Len(t, offsets, 6)

	front, back := 0, 0
	for _, o := range offsets {
		if o.Y < 0 {
			front++
		} else {
			back++
		}
	}
	assert.Equal(t, 3, front)
	assert.Equal(t, 3, back)

	// Odd counts put the extra seat up front.
	offsets = SeatOffsetsFor(ShapeTable6, 5)
	front = 0
	for _, o := range offsets {
		if o.Y < 0 {
			front++
		}
	}
	assert.Equal(t, 3, front)
}

func TestRoundSeatsEvenlySpacedByAngle(t *testing.T) {
	offsets := SeatOffsetsFor(ShapeRound8, 8)
	require.Len(t, offsets, 8)

	// All seats sit on the same radius and consecutive seats subtend the
	// same angle.
	radius := math.Hypot(offsets[0].X, offsets[0].Y)
	for i, o := range offsets {
		assert.InDelta(t, radius, math.Hypot(o.X, o.Y), 1e-9, "seat %d", i+1)
	}

	step := 2 * math.Pi / 8
	for i := 1; i < len(offsets); i++ {
		prev := math.Atan2(offsets[i-1].Y, offsets[i-1].X)
		cur := math.Atan2(offsets[i].Y, offsets[i].X)
		diff := math.Mod(cur-prev+2*math.Pi, 2*math.Pi)
		assert.InDelta(t, step, diff, 1e-9)
	}
}

func TestBarSeatsSingleRow(t *testing.T) {
	offsets := SeatOffsetsFor(ShapeBar6, 6)
	require.Len(t, offsets, 6)
	for i, o := range offsets {
		assert.Equal(t, offsets[0].Y, o.Y, "seat %d", i+1)
	}
	// Left to right in seat-number order.
	for i := 1; i < len(offsets); i++ {
		assert.Greater(t, offsets[i].X, offsets[i-1].X)
	}
}

func TestChairSeatCentered(t *testing.T) {
	offsets := SeatOffsetsFor(ShapeChair, 1)
	require.Len(t, offsets, 1)
	assert.Equal(t, Point{}, offsets[0])
}
