package layouts

import (
	"testing"

	"stagedoor/internal/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editorDoc(elements ...geometry.LayoutElement) *Document {
	return &Document{
		Elements: elements,
		Canvas:   CanvasSettings{Width: 1200, Height: 800, GridSize: 5},
	}
}

func placedTable(id string) geometry.LayoutElement {
	e := NewElement(geometry.ElementTable, geometry.ShapeTable6, "Main Floor", "A")
	e.ID = id
	x, y := 50.0, 50.0
	e.PosX = &x
	e.PosY = &y
	return e
}

func TestPlaceElementSnapsToPercentGrid(t *testing.T) {
	doc := editorDoc(placedTable("t1"))

	// Grid size 5: a drop at 42.3% snaps to 40%.
	err := doc.PlaceElement("t1", geometry.Point{X: 42.3, Y: 42.3}, true)
	require.NoError(t, err)
	assert.InDelta(t, 40, *doc.Elements[0].PosX, 1e-9)
	assert.InDelta(t, 40, *doc.Elements[0].PosY, 1e-9)

	// 42.5 is equidistant; round() pushes it up to 45.
	err = doc.PlaceElement("t1", geometry.Point{X: 42.5, Y: 43.0}, true)
	require.NoError(t, err)
	assert.InDelta(t, 45, *doc.Elements[0].PosX, 1e-9)
	assert.InDelta(t, 45, *doc.Elements[0].PosY, 1e-9)
}

func TestMoveElementSnapsAfterDeltaConversion(t *testing.T) {
	doc := editorDoc(placedTable("t1"))

	// 50% - 93px/1200px = 42.25%, snapping to 40% on the percent grid.
	err := doc.MoveElement("t1", -93, 0, true)
	require.NoError(t, err)
	assert.InDelta(t, 40, *doc.Elements[0].PosX, 1e-9)
	assert.InDelta(t, 50, *doc.Elements[0].PosY, 1e-9)
}

func TestPlaceElementWithoutSnap(t *testing.T) {
	doc := editorDoc(placedTable("t1"))

	err := doc.PlaceElement("t1", geometry.Point{X: 42.3, Y: 77.7}, false)
	require.NoError(t, err)
	assert.Equal(t, 42.3, *doc.Elements[0].PosX)
	assert.Equal(t, 77.7, *doc.Elements[0].PosY)
}

func TestMoveElementConvertsPixelDelta(t *testing.T) {
	doc := editorDoc(placedTable("t1"))

	// +120px on a 1200px canvas is +10%.
	err := doc.MoveElement("t1", 120, -80, false)
	require.NoError(t, err)
	assert.InDelta(t, 60, *doc.Elements[0].PosX, 1e-9)
	assert.InDelta(t, 40, *doc.Elements[0].PosY, 1e-9)
}

func TestMoveElementClampsAtEdges(t *testing.T) {
	doc := editorDoc(placedTable("t1"))

	err := doc.MoveElement("t1", 100000, -100000, false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, *doc.Elements[0].PosX)
	assert.Equal(t, 0.0, *doc.Elements[0].PosY)
}

func TestMoveUnplacedElementFails(t *testing.T) {
	e := NewElement(geometry.ElementTable, geometry.ShapeTable6, "Main Floor", "A")
	e.ID = "t1"
	doc := editorDoc(e)

	err := doc.MoveElement("t1", 10, 10, false)
	assert.Error(t, err)
}

func TestRotateElementNormalizes(t *testing.T) {
	doc := editorDoc(placedTable("t1"))

	require.NoError(t, doc.RotateElement("t1", 15))
	assert.Equal(t, 15.0, doc.Elements[0].Rotation)

	require.NoError(t, doc.RotateElement("t1", -30))
	assert.Equal(t, 345.0, doc.Elements[0].Rotation)

	for i := 0; i < 24; i++ {
		require.NoError(t, doc.RotateElement("t1", 15))
	}
	assert.Equal(t, 345.0, doc.Elements[0].Rotation)
}

func TestResizeElement(t *testing.T) {
	doc := editorDoc(placedTable("t1"))

	require.NoError(t, doc.ResizeElement("t1", geometry.Size{Width: 200, Height: 90}))
	assert.Equal(t, 200.0, doc.Elements[0].Width)

	assert.ErrorIs(t, doc.ResizeElement("t1", geometry.Size{Width: 0, Height: 90}), ErrInvalidSize)
}

func TestRemoveElement(t *testing.T) {
	doc := editorDoc(placedTable("t1"), placedTable("t2"))

	require.NoError(t, doc.RemoveElement("t1"))
	require.Len(t, doc.Elements, 1)
	assert.Equal(t, "t2", doc.Elements[0].ID)

	assert.ErrorIs(t, doc.RemoveElement("t1"), ErrElementNotFound)
}

func TestSetSeatLabel(t *testing.T) {
	doc := editorDoc(placedTable("t1"))

	require.NoError(t, doc.SetSeatLabel("t1", 3, "VIP-3"))
	assert.Equal(t, "VIP-3", doc.Elements[0].SeatLabels["3"])

	// Empty label clears the override
	require.NoError(t, doc.SetSeatLabel("t1", 3, ""))
	_, ok := doc.Elements[0].SeatLabels["3"]
	assert.False(t, ok)

	// Out of range for a 6-seat table
	assert.ErrorIs(t, doc.SetSeatLabel("t1", 7, "X"), ErrInvalidSeatNumber)
	assert.ErrorIs(t, doc.SetSeatLabel("t1", 0, "X"), ErrInvalidSeatNumber)
}

func TestApplyShapeResyncsSeatsAndLabels(t *testing.T) {
	doc := editorDoc(placedTable("t1"))
	require.NoError(t, doc.SetSeatLabel("t1", 6, "Window"))
	require.NoError(t, doc.SetSeatLabel("t1", 2, "Aisle"))

	// Shrinking to a 2-seat table drops the seat-6 override.
	require.NoError(t, doc.ApplyShape("t1", geometry.ShapeTable2))
	e := doc.Elements[0]
	assert.Equal(t, geometry.ShapeTable2, e.TableShape)
	assert.Equal(t, 2, e.TotalSeats)
	assert.Equal(t, geometry.DefaultFootprint(geometry.ShapeTable2).Width, e.Width)
	assert.Equal(t, "Aisle", e.SeatLabels["2"])
	_, ok := e.SeatLabels["6"]
	assert.False(t, ok)
}

func TestApplyShapeUnknownFallsBack(t *testing.T) {
	doc := editorDoc(placedTable("t1"))

	require.NoError(t, doc.ApplyShape("t1", geometry.TableShape("dodecagon")))
	assert.Equal(t, geometry.ShapeTable6, doc.Elements[0].TableShape)
	assert.Equal(t, 6, doc.Elements[0].TotalSeats)
}

func TestApplyShapeRejectsMarkers(t *testing.T) {
	m := NewElement(geometry.ElementMarker, "", "", "")
	m.ID = "m1"
	doc := editorDoc(m)

	assert.Error(t, doc.ApplyShape("m1", geometry.ShapeTable4))
}

func TestNormalizeForSaveCanonicalizes(t *testing.T) {
	e := placedTable("t1")
	x, y := 130.0, -20.0
	e.PosX = &x
	e.PosY = &y
	e.Rotation = 450
	e.TableShape = geometry.TableShape("mystery")
	e.SeatLabels = map[string]string{
		"2":   "Keep",
		"99":  "Gone",
		"abc": "Gone too",
	}

	doc := editorDoc(e)
	doc.StagePosition = geometry.Point{X: 105, Y: -5}
	doc.NormalizeForSave()

	got := doc.Elements[0]
	assert.Equal(t, 100.0, *got.PosX)
	assert.Equal(t, 0.0, *got.PosY)
	assert.Equal(t, 90.0, got.Rotation)
	assert.Equal(t, geometry.ShapeTable6, got.TableShape)
	assert.Equal(t, map[string]string{"2": "Keep"}, got.SeatLabels)
	assert.Equal(t, geometry.Point{X: 100, Y: 0}, doc.StagePosition)
}

func TestNormalizeForSaveIsIdempotent(t *testing.T) {
	doc := editorDoc(placedTable("t1"))
	require.NoError(t, doc.SetSeatLabel("t1", 1, "Front"))

	doc.NormalizeForSave()
	first := doc.Elements[0]

	doc.NormalizeForSave()
	assert.Equal(t, first, doc.Elements[0])
}

func TestDocumentRoundTripThroughRow(t *testing.T) {
	doc := editorDoc(placedTable("t1"))
	doc.StagePosition = geometry.Point{X: 50, Y: 5}
	doc.StageSize = geometry.Size{Width: 300, Height: 80}
	require.NoError(t, doc.SetSeatLabel("t1", 4, "Corner"))
	doc.NormalizeForSave()

	var row SeatingLayout
	require.NoError(t, row.Encode(doc))

	back, err := row.Decode()
	require.NoError(t, err)
	assert.Equal(t, doc.Elements, back.Elements)
	assert.Equal(t, doc.StagePosition, back.StagePosition)
	assert.Equal(t, doc.StageSize, back.StageSize)
	assert.Equal(t, doc.Canvas, back.Canvas)
}
