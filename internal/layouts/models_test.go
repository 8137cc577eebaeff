package layouts

import (
	"encoding/json"
	"testing"

	"stagedoor/internal/geometry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutDocumentRoundTrip(t *testing.T) {
	x, y := 40.0, 60.0
	doc := &Document{
		Elements: []geometry.LayoutElement{{
			ID:          "t1",
			ElementType: geometry.ElementTable,
			SectionName: "Main Floor",
			RowLabel:    "A",
			TableShape:  geometry.ShapeTable6,
			TotalSeats:  6,
			PosX:        &x,
			PosY:        &y,
		}},
		StagePosition: geometry.Point{X: 50, Y: 5},
		StageSize:     geometry.Size{Width: 300, Height: 80},
		Canvas:        CanvasSettings{Width: 1200, Height: 800, GridSize: 5},
	}

	var layout SeatingLayout
	require.NoError(t, layout.Encode(doc))

	decoded, err := layout.Decode()
	require.NoError(t, err)
	assert.Equal(t, doc.Elements, decoded.Elements)
	assert.Equal(t, doc.StagePosition, decoded.StagePosition)
	assert.Equal(t, doc.Canvas, decoded.Canvas)
}

// Layout bodies travel snake_case: external consumers address the element
// list as layout_data alongside stage_position, stage_size, canvas_settings.
func TestLayoutResponseWireKeys(t *testing.T) {
	layout := &SeatingLayout{ID: uuid.New(), Name: "Main Hall", IsDefault: true}
	require.NoError(t, layout.Encode(&Document{
		StagePosition: geometry.Point{X: 50, Y: 5},
		Canvas:        CanvasSettings{Width: 1200, Height: 800},
	}))

	resp, err := layout.ToResponse()
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	for _, key := range []string{"layout_data", "stage_position", "stage_size", "canvas_settings", "is_default"} {
		assert.Contains(t, keys, key)
	}
	assert.NotContains(t, keys, "elements")
}

func TestSaveLayoutRequestParsesSnakeCase(t *testing.T) {
	body := `{
		"name": "Main Hall",
		"layout_data": [{"id": "t1", "elementType": "table", "tableShape": "table-6", "totalSeats": 6}],
		"stage_position": {"x": 50, "y": 5},
		"stage_size": {"width": 300, "height": 80},
		"canvas_settings": {"width": 1200, "height": 800}
	}`

	var req SaveLayoutRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Len(t, req.Elements, 1)
	assert.Equal(t, "t1", req.Elements[0].ID)
	assert.Equal(t, 50.0, req.StagePosition.X)
	assert.Equal(t, 1200.0, req.CanvasSettings.Width)
}
