package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func mainFloorTable() *LayoutElement {
	return &LayoutElement{
		ID:          "el-1",
		ElementType: ElementTable,
		SectionName: "Main Floor",
		RowLabel:    "A",
		TableShape:  ShapeTable6,
		TotalSeats:  6,
		PosX:        floatPtr(50),
		PosY:        floatPtr(50),
	}
}

func TestSeatIDsForDerivation(t *testing.T) {
	el := mainFloorTable()

	ids := SeatIDsFor(el)
	require.Len(t, ids, el.TotalSeats)
	assert.Equal(t, "Main Floor-A-1", ids[0])
	assert.Equal(t, "Main Floor-A-6", ids[5])
}

func TestSeatIDsForNonSeatBearing(t *testing.T) {
	marker := &LayoutElement{ID: "m-1", ElementType: ElementMarker, TotalSeats: 0}
	assert.Empty(t, SeatIDsFor(marker))

	// A marker with a bogus seat count still yields nothing.
	marker.TotalSeats = 4
	assert.Empty(t, SeatIDsFor(marker))

	table := mainFloorTable()
	table.TotalSeats = 0
	assert.Empty(t, SeatIDsFor(table))
}

func TestSeatLabelDefaults(t *testing.T) {
	el := mainFloorTable()

	assert.Equal(t, "AA", SeatLabelFor(el, 1))
	assert.Equal(t, "AF", SeatLabelFor(el, 6))
}

func TestSeatLabelLetterBoundaries(t *testing.T) {
	el := mainFloorTable()
	el.RowLabel = "Bar"
	el.TotalSeats = 30

	assert.Equal(t, "BarZ", SeatLabelFor(el, 26))
	assert.Equal(t, "BarAA", SeatLabelFor(el, 27))
	assert.Equal(t, "BarBB", SeatLabelFor(el, 28))
}

func TestSeatLabelOverridePrecedence(t *testing.T) {
	el := mainFloorTable()
	el.SeatLabels = map[string]string{"2": "VIP Window"}

	assert.Equal(t, "VIP Window", SeatLabelFor(el, 2))
	assert.Equal(t, "AA", SeatLabelFor(el, 1), "other seats keep the derived default")

	// An empty override means "use the default", not "blank label".
	el.SeatLabels["3"] = ""
	assert.Equal(t, "AC", SeatLabelFor(el, 3))
}

func TestSingleSeatUsesBareRowLabel(t *testing.T) {
	chair := &LayoutElement{
		ID:          "c-1",
		ElementType: ElementChair,
		SectionName: "Balcony",
		RowLabel:    "Solo",
		TableShape:  ShapeChair,
		TotalSeats:  1,
	}

	assert.Equal(t, "Solo", SeatLabelFor(chair, 1))
}

func TestHeaderLabelsCollapseForSingleSeat(t *testing.T) {
	chair := &LayoutElement{
		ID:          "c-1",
		ElementType: ElementChair,
		SectionName: "Balcony",
		RowLabel:    "B",
		TotalSeats:  1,
		SeatLabels:  map[string]string{"1": "Piano Bench"},
	}

	labels := HeaderLabelsFor(chair)
	assert.Equal(t, "Balcony", labels.SectionLabel)
	assert.Equal(t, "Piano Bench", labels.RowLabel, "lone chair shows its seat label")

	table := mainFloorTable()
	labels = HeaderLabelsFor(table)
	assert.Equal(t, "A", labels.RowLabel)
}

func TestParseSeatIDRoundTrip(t *testing.T) {
	section, row, n, err := ParseSeatID("Main Floor-A-4")
	require.NoError(t, err)
	assert.Equal(t, "Main Floor", section)
	assert.Equal(t, "A", row)
	assert.Equal(t, 4, n)

	// Section names with dashes anchor on the trailing components.
	section, row, n, err = ParseSeatID("Main-Bar-B-12")
	require.NoError(t, err)
	assert.Equal(t, "Main-Bar", section)
	assert.Equal(t, "B", row)
	assert.Equal(t, 12, n)

	_, _, _, err = ParseSeatID("not a seat id")
	assert.Error(t, err)
}
