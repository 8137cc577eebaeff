package layouts

import (
	"encoding/json"
	"fmt"
	"time"

	"stagedoor/internal/geometry"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SeatingLayout is one persisted layout document. Template layouts have no
// owning event; an event-owned row is a snapshot copied from a template and
// edits to the template never touch it.
type SeatingLayout struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string     `gorm:"uniqueIndex;not null" json:"name"`
	Description string     `json:"description"`
	IsDefault   bool       `gorm:"default:false;index" json:"isDefault"`
	EventID     *uuid.UUID `gorm:"type:uuid;index" json:"eventId,omitempty"`

	LayoutData     datatypes.JSON `gorm:"type:jsonb" json:"layoutData"`
	StagePosition  datatypes.JSON `gorm:"type:jsonb" json:"stagePosition"`
	StageSize      datatypes.JSON `gorm:"type:jsonb" json:"stageSize"`
	CanvasSettings datatypes.JSON `gorm:"type:jsonb" json:"canvasSettings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanvasSettings are the editor canvas parameters stored with each layout.
// Width/height are pixels of the reference canvas; element positions are
// percentages of it.
type CanvasSettings struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	GridSize float64 `json:"gridSize"`
	ShowGrid bool    `json:"showGrid"`
}

// Document is the in-memory form of a layout: what the editor operations
// mutate and what gets marshalled back into the row's JSON columns on save.
type Document struct {
	Elements      []geometry.LayoutElement `json:"elements"`
	StagePosition geometry.Point           `json:"stagePosition"`
	StageSize     geometry.Size            `json:"stageSize"`
	Canvas        CanvasSettings           `json:"canvasSettings"`
}

// Elements decodes the layout_data column.
func (l *SeatingLayout) Elements() ([]geometry.LayoutElement, error) {
	if len(l.LayoutData) == 0 {
		return nil, nil
	}
	var elements []geometry.LayoutElement
	if err := json.Unmarshal(l.LayoutData, &elements); err != nil {
		return nil, fmt.Errorf("failed to decode layout data: %w", err)
	}
	return elements, nil
}

// Decode unpacks all JSON columns into a Document.
func (l *SeatingLayout) Decode() (*Document, error) {
	elements, err := l.Elements()
	if err != nil {
		return nil, err
	}

	doc := &Document{Elements: elements}

	if len(l.StagePosition) > 0 {
		if err := json.Unmarshal(l.StagePosition, &doc.StagePosition); err != nil {
			return nil, fmt.Errorf("failed to decode stage position: %w", err)
		}
	}
	if len(l.StageSize) > 0 {
		if err := json.Unmarshal(l.StageSize, &doc.StageSize); err != nil {
			return nil, fmt.Errorf("failed to decode stage size: %w", err)
		}
	}
	if len(l.CanvasSettings) > 0 {
		if err := json.Unmarshal(l.CanvasSettings, &doc.Canvas); err != nil {
			return nil, fmt.Errorf("failed to decode canvas settings: %w", err)
		}
	}

	return doc, nil
}

// Encode packs a Document back into the row's JSON columns.
func (l *SeatingLayout) Encode(doc *Document) error {
	elements := doc.Elements
	if elements == nil {
		elements = []geometry.LayoutElement{}
	}

	data, err := json.Marshal(elements)
	if err != nil {
		return fmt.Errorf("failed to encode layout data: %w", err)
	}
	stagePos, err := json.Marshal(doc.StagePosition)
	if err != nil {
		return fmt.Errorf("failed to encode stage position: %w", err)
	}
	stageSize, err := json.Marshal(doc.StageSize)
	if err != nil {
		return fmt.Errorf("failed to encode stage size: %w", err)
	}
	canvas, err := json.Marshal(doc.Canvas)
	if err != nil {
		return fmt.Errorf("failed to encode canvas settings: %w", err)
	}

	l.LayoutData = datatypes.JSON(data)
	l.StagePosition = datatypes.JSON(stagePos)
	l.StageSize = datatypes.JSON(stageSize)
	l.CanvasSettings = datatypes.JSON(canvas)
	return nil
}
