package seating

import (
	"math"
	"testing"

	"stagedoor/internal/availability"
	"stagedoor/internal/geometry"
	"stagedoor/internal/layouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placedElement(id, section, row string, shape geometry.TableShape, seats int, x, y float64) geometry.LayoutElement {
	return geometry.LayoutElement{
		ID:          id,
		ElementType: geometry.ElementTable,
		SectionName: section,
		RowLabel:    row,
		TableShape:  shape,
		TotalSeats:  seats,
		PosX:        &x,
		PosY:        &y,
		Width:       150,
		Height:      60,
	}
}

func viewDoc(elements ...geometry.LayoutElement) *layouts.Document {
	return &layouts.Document{
		Elements: elements,
		Canvas:   layouts.CanvasSettings{Width: 1200, Height: 800},
	}
}

func TestBuildSeatingViewSkipsInactiveAndUnplaced(t *testing.T) {
	inactive := placedElement("t1", "Main Floor", "A", geometry.ShapeTable6, 6, 50, 50)
	off := false
	inactive.IsActive = &off

	unplaced := placedElement("t2", "Main Floor", "B", geometry.ShapeTable6, 6, 0, 0)
	unplaced.PosX = nil
	unplaced.PosY = nil

	visible := placedElement("t3", "Main Floor", "C", geometry.ShapeTable6, 6, 50, 50)

	rendered := BuildSeatingView(viewDoc(inactive, unplaced, visible), Sets{}, ViewOptions{})
	require.Len(t, rendered, 1)
	assert.Equal(t, "t3", rendered[0].ID)
}

func TestBuildSeatingViewProjectsToCanvasPixels(t *testing.T) {
	e := placedElement("t1", "Main Floor", "A", geometry.ShapeTable6, 6, 50, 25)

	rendered := BuildSeatingView(viewDoc(e), Sets{}, ViewOptions{})
	require.Len(t, rendered, 1)
	assert.InDelta(t, 600, rendered[0].Center.X, 1e-9)
	assert.InDelta(t, 200, rendered[0].Center.Y, 1e-9)
	assert.Len(t, rendered[0].Seats, 6)
}

func TestBuildSeatingViewSeatIdentityAndLabels(t *testing.T) {
	e := placedElement("t1", "Main Floor", "A", geometry.ShapeTable6, 6, 50, 50)

	rendered := BuildSeatingView(viewDoc(e), Sets{}, ViewOptions{})
	require.Len(t, rendered, 1)

	seats := rendered[0].Seats
	require.Len(t, seats, 6)
	assert.Equal(t, "Main Floor-A-1", seats[0].SeatID)
	assert.Equal(t, "AA", seats[0].Label)
	assert.Equal(t, "Main Floor-A-6", seats[5].SeatID)
	assert.Equal(t, "AF", seats[5].Label)
}

func TestBuildSeatingViewResolvesStatusPriority(t *testing.T) {
	e := placedElement("t1", "Main Floor", "A", geometry.ShapeTable6, 6, 50, 50)

	sets := Sets{
		Reserved: []string{"Main Floor-A-1"},
		Pending:  []string{"Main Floor-A-2"},
		Holds:    []string{"Main Floor-A-3"},
	}
	opts := ViewOptions{
		Interactive: true,
		Selected:    []string{"Main Floor-A-1", "Main Floor-A-4"},
	}

	rendered := BuildSeatingView(viewDoc(e), sets, opts)
	seats := rendered[0].Seats

	// Reserved wins over the stale local selection.
	assert.Equal(t, availability.StatusReserved, seats[0].Status)
	assert.False(t, seats[0].Interactable)
	assert.Equal(t, availability.ReasonReserved, seats[0].DisableReason)

	assert.Equal(t, availability.StatusPending, seats[1].Status)
	assert.Equal(t, availability.StatusHold, seats[2].Status)
	assert.Equal(t, availability.ReasonHold, seats[2].DisableReason)

	assert.Equal(t, availability.StatusSelected, seats[3].Status)
	assert.True(t, seats[3].Interactable)
	assert.Equal(t, availability.ReasonNone, seats[3].DisableReason)

	assert.Equal(t, availability.StatusAvailable, seats[4].Status)
	assert.True(t, seats[4].Interactable)
}

func TestBuildSeatingViewRotatesSeatsWithElement(t *testing.T) {
	e := placedElement("t1", "Main Floor", "A", geometry.ShapeBar6, 2, 50, 50)
	e.Rotation = 90

	rendered := BuildSeatingView(viewDoc(e), Sets{}, ViewOptions{})
	seats := rendered[0].Seats
	require.Len(t, seats, 2)

	// A bar seats its row along the X axis; rotated 90° the seats line up
	// vertically instead: same X, different Y.
	assert.InDelta(t, seats[0].Position.X, seats[1].Position.X, 1e-6)
	assert.Greater(t, math.Abs(seats[0].Position.Y-seats[1].Position.Y), 1.0)
}

func TestBuildSeatingViewMarkersCarryNoSeats(t *testing.T) {
	x, y := 10.0, 10.0
	marker := geometry.LayoutElement{
		ID:          "m1",
		ElementType: geometry.ElementMarker,
		PosX:        &x,
		PosY:        &y,
		Width:       100,
		Height:      40,
	}

	rendered := BuildSeatingView(viewDoc(marker), Sets{}, ViewOptions{})
	require.Len(t, rendered, 1)
	assert.Empty(t, rendered[0].Seats)
}
